// Package conversation holds the session's append-only message trace and the
// single-in-flight-turn gate.
package conversation

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/yuvalshat/project_butler/internal/agent"
)

// Entry is one appended element of the conversation trace.
type Entry struct {
	ID        string `json:"id"`
	agent.Response
}

// Session is the client-held conversation state: an append-only list of
// entries plus a loading gate. Access is effectively single-writer since
// turns are serialized, but the mutex keeps concurrent HTTP reads safe.
// Nothing is persisted beyond the session.
type Session struct {
	mu       sync.Mutex
	entries  []Entry
	inFlight bool
}

// NewSession creates an empty conversation session.
func NewSession() *Session {
	return &Session{}
}

// TryBegin claims the in-flight slot for a new turn. It returns false when a
// turn is already running; turns are not designed to interleave.
func (s *Session) TryBegin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

// End releases the in-flight slot.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// Append adds responses to the trace in order and returns the stored entries.
func (s *Session) Append(responses ...agent.Response) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	appended := make([]Entry, 0, len(responses))
	for _, response := range responses {
		entry := Entry{
			ID:       uuid.NewString(),
			Response: response,
		}
		s.entries = append(s.entries, entry)
		appended = append(appended, entry)
	}
	return appended
}

// Entries returns a copy of the full trace.
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// Clear drops the trace.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// LastReply returns the most recent system reply, used as carry-over context
// for the next interpretation call. Echoed user input and error replies are
// skipped; exactly one reply is retained.
func (s *Session) LastReply() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.entries) - 1; i >= 0; i-- {
		entry := s.entries[i]
		if entry.IsError || strings.HasPrefix(entry.Message, "You: ") {
			continue
		}
		return entry.Message
	}
	return ""
}
