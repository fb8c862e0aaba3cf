// Package chat implements the general-purpose conversational agent: a direct
// passthrough to the language model with session-scoped history.
package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/yuvalshat/project_butler/internal/agent"
	"github.com/yuvalshat/project_butler/internal/llm"
	"github.com/yuvalshat/project_butler/internal/timeutil"
)

const systemInstruction = "You are a helpful assistant. Be concise and friendly in your responses."

// Completer sends a conversation to the language model.
type Completer interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

// Agent holds the conversation history for the session. Nothing is persisted.
type Agent struct {
	llm   Completer
	clock timeutil.Clock

	mu      sync.Mutex
	history []llm.Message
}

// NewAgent creates a chat agent with a fresh history.
func NewAgent(completer Completer, clock timeutil.Clock) *Agent {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &Agent{
		llm:   completer,
		clock: clock,
		history: []llm.Message{
			{Role: "system", Content: systemInstruction},
		},
	}
}

// ProcessMessage appends the user turn, asks the model, records the reply and
// returns the two conversation entries for the trace.
func (a *Agent) ProcessMessage(ctx context.Context, message string) []agent.Response {
	echo := agent.Echo(message, a.clock.Now())

	a.mu.Lock()
	a.history = append(a.history, llm.Message{Role: "user", Content: message})
	history := make([]llm.Message, len(a.history))
	copy(history, a.history)
	a.mu.Unlock()

	reply, err := a.llm.Chat(ctx, history)
	if err != nil {
		return []agent.Response{echo, {
			Message:   fmt.Sprintf("I couldn't process your request. %v", err),
			Timestamp: a.clock.Now(),
			IsError:   true,
		}}
	}
	if reply == "" {
		reply = "I don't know how to respond to that."
	}

	a.mu.Lock()
	a.history = append(a.history, llm.Message{Role: "assistant", Content: reply})
	a.mu.Unlock()

	return []agent.Response{echo, {
		Message:   reply,
		Timestamp: a.clock.Now(),
	}}
}
