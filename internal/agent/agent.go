// Package agent holds the types shared by the conversational agents.
package agent

import "time"

// Response is one unit of the conversation trace. Every processed turn emits
// an echo of the user input followed by the system reply.
type Response struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"is_error"`
}

// Echo builds the user-input echo entry that opens every turn.
func Echo(message string, at time.Time) Response {
	return Response{
		Message:   "You: " + message,
		Timestamp: at,
	}
}
