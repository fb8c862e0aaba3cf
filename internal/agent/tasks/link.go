package tasks

import "strings"

// BuildThingsLink renders a task as a Things URL scheme link. Spaces are
// encoded as %20 and checklist items joined with %0A, which is what the
// Things app expects on its add/search endpoints.
func BuildThingsLink(task *Task) string {
	switch task.Type {
	case "add":
		var checklist string
		if task.Checklist != "" {
			items := strings.Split(task.Checklist, ",")
			encoded := make([]string, 0, len(items))
			for _, item := range items {
				encoded = append(encoded, encodeSpaces(strings.TrimSpace(item)))
			}
			checklist = strings.Join(encoded, "%0A")
		}
		return "things:///add?title=" + encodeSpaces(task.Title) +
			"&notes=" + encodeSpaces(task.Notes) +
			"&checklist-items=" + checklist +
			"&when=" + encodeSpaces(task.When)

	case "search":
		return "things:///search?query=" + encodeSpaces(task.Query)
	}

	return ""
}

func encodeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "%20")
}
