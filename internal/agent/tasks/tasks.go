// Package tasks implements the task-manager agent: a single-call extraction
// that turns a free-text request into a Things URL scheme link.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yuvalshat/project_butler/internal/agent"
	"github.com/yuvalshat/project_butler/internal/timeutil"
)

// Extractor turns system instructions plus a user message into raw task JSON.
type Extractor interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// Task is the structured result of interpreting a todo request.
type Task struct {
	Type      string `json:"type"` // "add" or "search"
	Query     string `json:"query,omitempty"`
	Title     string `json:"title,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Checklist string `json:"checklist,omitempty"` // comma-separated items
	When      string `json:"when,omitempty"`
}

// Agent extracts a task and builds the corresponding things:/// link.
type Agent struct {
	extractor Extractor
	clock     timeutil.Clock
}

// NewAgent creates a tasks agent.
func NewAgent(extractor Extractor, clock timeutil.Clock) *Agent {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &Agent{extractor: extractor, clock: clock}
}

// ProcessMessage runs one task extraction turn. The reply carries the link on
// its own line so the client can open it.
func (a *Agent) ProcessMessage(ctx context.Context, message, carryOver string) []agent.Response {
	echo := agent.Echo(message, a.clock.Now())

	task, err := a.extract(ctx, message, carryOver)
	if err != nil {
		fmt.Printf("Warning: task extraction failed: %v\n", err)
		return []agent.Response{echo, {
			Message:   "Sorry, I don't understand your request. Please try again.",
			Timestamp: a.clock.Now(),
			IsError:   true,
		}}
	}

	var text string
	switch task.Type {
	case "add":
		text = fmt.Sprintf("I've added a task to your Things list. %s", task.Title)
	case "search":
		text = fmt.Sprintf("I've created a search query for you. %s", task.Title)
	default:
		return []agent.Response{echo, {
			Message:   "Sorry, I don't understand your request. Please try again.",
			Timestamp: a.clock.Now(),
			IsError:   true,
		}}
	}

	if link := BuildThingsLink(task); link != "" {
		text += "\n" + link
	}

	return []agent.Response{echo, {
		Message:   text,
		Timestamp: a.clock.Now(),
	}}
}

func (a *Agent) extract(ctx context.Context, message, carryOver string) (*Task, error) {
	system := BuildSystemPrompt(carryOver, a.clock.Now())

	raw, err := a.extractor.CompleteJSON(ctx, system, message)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}

	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		return nil, fmt.Errorf("failed to parse task JSON: %w", err)
	}

	return &task, nil
}
