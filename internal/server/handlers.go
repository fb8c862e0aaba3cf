package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/yuvalshat/project_butler/internal/agent"
	"github.com/yuvalshat/project_butler/internal/gcal"
)

// Routed prefixes: the first word of a message selects an agent. Everything
// else goes to the chat agent unrouted.
const (
	prefixCalendar = "cl"
	prefixTasks    = "th"
)

// MessageRequest is the body of POST /api/message
type MessageRequest struct {
	Message string `json:"message"`
}

// MessageResponse carries the conversation entries a turn appended
type MessageResponse struct {
	Responses any `json:"responses"`
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status": "healthy",
		"gcal":   "disconnected",
	}
	if s.gcalClient != nil && s.gcalClient.IsAuthenticated() {
		status["gcal"] = "connected"
	}
	respondJSON(w, http.StatusOK, status)
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	// One turn at a time: context carry-over assumes the previous turn has
	// fully appended its reply before the next one starts.
	if !s.session.TryBegin() {
		respondError(w, http.StatusConflict, "a turn is already in progress")
		return
	}
	defer s.session.End()

	prefix, body := splitPrefix(message)

	var responses []agent.Response
	switch prefix {
	case prefixCalendar:
		carryOver := s.session.LastReply()
		turn, err := s.calendarAgent.ProcessMessage(r.Context(), body, carryOver)
		if err != nil {
			// Session-level interrupt: the echo is kept but no conversational
			// reply is appended; the caller must re-authenticate.
			if gcal.IsAuthError(err) {
				s.session.Append(turn...)
				respondJSON(w, http.StatusUnauthorized, map[string]string{
					"error":    "auth_expired",
					"auth_url": s.authURL(),
				})
				return
			}
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		responses = turn

	case prefixTasks:
		responses = s.tasksAgent.ProcessMessage(r.Context(), body, s.session.LastReply())

	default:
		responses = s.chatAgent.ProcessMessage(r.Context(), message)
	}

	appended := s.session.Append(responses...)
	respondJSON(w, http.StatusOK, MessageResponse{Responses: appended})
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.session.Entries())
}

func (s *Server) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	s.session.Clear()
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// splitPrefix extracts a routed agent prefix from the first word of the
// message and returns the remainder.
func splitPrefix(message string) (prefix, body string) {
	first, rest, _ := strings.Cut(message, " ")
	switch first {
	case prefixCalendar, prefixTasks:
		return first, strings.TrimSpace(rest)
	}
	return "", message
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
