package tasks

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	response string
	err      error
	lastUser string
}

func (f *fakeExtractor) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	f.lastUser = user
	return f.response, f.err
}

func TestProcessMessage_AddTask(t *testing.T) {
	extractor := &fakeExtractor{response: `{"type": "add", "title": "Buy groceries", "when": "today"}`}
	a := NewAgent(extractor, nil)

	responses := a.ProcessMessage(context.Background(), "remind me to buy groceries today", "")

	require.Len(t, responses, 2)
	assert.Equal(t, "You: remind me to buy groceries today", responses[0].Message)
	assert.Contains(t, responses[1].Message, "I've added a task to your Things list. Buy groceries")
	assert.Contains(t, responses[1].Message, "things:///add?title=Buy%20groceries")
	assert.False(t, responses[1].IsError)
}

func TestProcessMessage_SearchTask(t *testing.T) {
	extractor := &fakeExtractor{response: `{"type": "search", "query": "groceries", "title": "groceries"}`}
	a := NewAgent(extractor, nil)

	responses := a.ProcessMessage(context.Background(), "find my grocery tasks", "")

	require.Len(t, responses, 2)
	assert.Contains(t, responses[1].Message, "I've created a search query for you.")
	assert.Contains(t, responses[1].Message, "things:///search?query=groceries")
}

func TestProcessMessage_ExtractionFailure(t *testing.T) {
	extractor := &fakeExtractor{err: fmt.Errorf("upstream 502")}
	a := NewAgent(extractor, nil)

	responses := a.ProcessMessage(context.Background(), "do a thing", "")

	require.Len(t, responses, 2)
	assert.Equal(t, "Sorry, I don't understand your request. Please try again.", responses[1].Message)
	assert.True(t, responses[1].IsError)
}

func TestProcessMessage_UnknownTaskType(t *testing.T) {
	extractor := &fakeExtractor{response: `{"type": "remind"}`}
	a := NewAgent(extractor, nil)

	responses := a.ProcessMessage(context.Background(), "do a thing", "")

	assert.Equal(t, "Sorry, I don't understand your request. Please try again.", responses[1].Message)
	assert.True(t, responses[1].IsError)
}

func TestProcessMessage_MalformedJSON(t *testing.T) {
	extractor := &fakeExtractor{response: "not json"}
	a := NewAgent(extractor, nil)

	responses := a.ProcessMessage(context.Background(), "do a thing", "")

	assert.True(t, responses[1].IsError)
}
