package calendar

import (
	"strings"
	"time"

	"github.com/yuvalshat/project_butler/internal/gcal"
)

const contextHeader = `# My Calendar Events
- Here are my existing calendar events that you should consider when scheduling.
- When suggesting times for new events, avoid conflicts with these existing events.
- Some facts about me: I don't like to be contacted before 8:00 or after 13:00.
- For meetings, I prefer to have them before 17:00.
- I don't like to have meetings on Friday after 17:00.`

// BuildCalendarContext turns upcoming events into a natural-language digest
// with scheduling-preference hints. It is a pure function of its input: the
// same event list always yields the same string, and an empty list yields an
// empty string so the prompt renders without a calendar section.
func BuildCalendarContext(events []gcal.Event) string {
	if len(events) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(contextHeader)
	b.WriteString("\n\n")

	for _, event := range events {
		b.WriteString("- ")
		b.WriteString(event.Summary)
		b.WriteString(": ")
		b.WriteString(formatEventSpan(event))
		if len(event.Attendees) > 0 {
			names := make([]string, 0, len(event.Attendees))
			for _, attendee := range event.Attendees {
				if attendee.DisplayName != "" {
					names = append(names, attendee.DisplayName)
				} else {
					names = append(names, attendee.Email)
				}
			}
			b.WriteString(" with ")
			b.WriteString(strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatEventSpan(event gcal.Event) string {
	start, startOK := parseEventTime(event.Start)
	end, endOK := parseEventTime(event.End)

	var date, startTime, endTime string
	if startOK {
		date = start.Format("1/2/2006")
		startTime = start.Format("3:04:05 PM")
	}
	if endOK {
		endTime = end.Format("3:04:05 PM")
	}

	return date + " from " + startTime + " to " + endTime
}

// parseEventTime prefers the precise dateTime, falls back to the all-day
// date, and reports failure instead of raising on malformed events.
func parseEventTime(t gcal.EventTime) (time.Time, bool) {
	if t.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return parsed, true
		}
	}
	if t.Date != "" {
		if parsed, err := time.Parse("2006-01-02", t.Date); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
