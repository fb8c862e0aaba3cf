package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildThingsLink_Add(t *testing.T) {
	link := BuildThingsLink(&Task{
		Type:  "add",
		Title: "Buy groceries",
		Notes: "For the weekend",
		When:  "today",
	})

	assert.Equal(t,
		"things:///add?title=Buy%20groceries&notes=For%20the%20weekend&checklist-items=&when=today",
		link)
}

func TestBuildThingsLink_AddWithChecklist(t *testing.T) {
	link := BuildThingsLink(&Task{
		Type:      "add",
		Title:     "Pack bags",
		Checklist: "passport, travel adapter,headphones",
	})

	assert.Contains(t, link, "checklist-items=passport%0Atravel%20adapter%0Aheadphones")
}

func TestBuildThingsLink_Search(t *testing.T) {
	link := BuildThingsLink(&Task{Type: "search", Query: "project notes"})

	assert.Equal(t, "things:///search?query=project%20notes", link)
}

func TestBuildThingsLink_UnknownType(t *testing.T) {
	assert.Empty(t, BuildThingsLink(&Task{Type: "remind"}))
}
