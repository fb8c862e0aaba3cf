package tasks

import (
	"fmt"
	"strings"
	"time"
)

// BuildSystemPrompt composes the instruction text for task extraction.
func BuildSystemPrompt(extraContext string, today time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a todo list assistant that interprets natural language requests for adding and searching todos.
You will be given a message from the user and you need to extract the structured data from the message.
Today's date is %s.

# Expected Output Format (JSON)
{
  "type": "add|search" (add if the user wants to add a new todo, search if the user wants to find one),
  "query": "string", (only for search: the search query)
  "title": "string", (only for add: title for the todo)
  "notes": "string", (only for add: notes for the todo)
  "checklist": "string", (only for add: checklist for the todo, separate each item with a comma)
  "when": "string" (only for add: when the todo is due)
}

# Guidelines
- Extract specific dates, times, and durations when provided with precision
- Always use ISO 8601 format (YYYY-MM-DDTHH:MM:SS) with the correct timezone for when the todo is due
- For todos without explicit times, assign reasonable defaults based on urgency and importance
- Summarize notes for the todo in 1-2 sentences
- Expand the checklist into a structured plan when the task warrants one
`, today.Format("2006-01-02"))

	if extraContext != "" {
		b.WriteString("\nAdditional Context:\n- Use this context to expand the notes and checklist if it relates to the request.\n")
		b.WriteString(extraContext)
		b.WriteString("\n")
	}

	return b.String()
}
