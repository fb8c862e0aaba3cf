package server

import (
	"fmt"
	"net/http"
)

func (s *Server) authURL() string {
	if s.gcalClient == nil {
		return ""
	}
	return s.gcalClient.GetAuthURL()
}

func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	authenticated := s.gcalClient != nil && s.gcalClient.IsAuthenticated()
	respondJSON(w, http.StatusOK, map[string]bool{"authenticated": authenticated})
}

func (s *Server) handleAuthURL(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil {
		respondError(w, http.StatusServiceUnavailable, "google client not configured")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": s.gcalClient.GetAuthURL()})
}

func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil {
		respondError(w, http.StatusServiceUnavailable, "google client not configured")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	if err := s.gcalClient.ExchangeCode(r.Context(), code); err != nil {
		fmt.Printf("Warning: OAuth code exchange failed: %v\n", err)
		respondError(w, http.StatusInternalServerError, "failed to complete authentication")
		return
	}

	fmt.Println("Google authentication completed")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><h2>Authentication successful</h2><p>You can close this window.</p></body></html>")
}
