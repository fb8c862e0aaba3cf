package calendar

import (
	"fmt"
	"time"

	"github.com/yuvalshat/project_butler/internal/timeutil"
)

// ReplyKind enumerates the closed set of reply variants the agent produces.
type ReplyKind string

const (
	ReplyScheduled            ReplyKind = "scheduled"
	ReplyScheduledForAttendee ReplyKind = "scheduled_with_attendee"
	ReplyInvalid              ReplyKind = "invalid"
	ReplyNeedMoreInfo         ReplyKind = "need_more_info"
	ReplyContactNoEvent       ReplyKind = "contact_found_no_event"
	ReplyError                ReplyKind = "error"
)

// Reply is a tagged reply variant with its typed payload, rendered to text
// only at the boundary. This keeps reply generation testable independent of
// string formatting.
type Reply struct {
	Kind ReplyKind

	// ReplyScheduled / ReplyScheduledForAttendee
	EventType     string
	Person        string
	Date          string
	StartTime     string
	EndTime       string
	AttendeeEmail string // empty when no email was resolved

	// ReplyInvalid
	OriginalMessage string
	Reason          string

	// ReplyContactNoEvent
	ContactEmail string

	// ReplyError
	Err string
}

// Render converts the reply variant to its user-facing text.
func (r Reply) Render() string {
	switch r.Kind {
	case ReplyScheduled:
		return fmt.Sprintf("I've scheduled %s for %s from %s to %s.",
			r.EventType, r.Date, r.StartTime, r.EndTime)

	case ReplyScheduledForAttendee:
		emailStatus := " I couldn't find their email in your contacts."
		if r.AttendeeEmail != "" {
			emailStatus = fmt.Sprintf(" An invitation has been sent to %s.", r.AttendeeEmail)
		}
		return fmt.Sprintf("I've scheduled %s with %s for %s from %s to %s.%s",
			r.EventType, r.Person, r.Date, r.StartTime, r.EndTime, emailStatus)

	case ReplyInvalid:
		return fmt.Sprintf("I understand you said: %q, but I'm not sure how to handle that as an event. %s",
			r.OriginalMessage, r.Reason)

	case ReplyNeedMoreInfo:
		withPerson := ""
		if r.Person != "" {
			withPerson = " with " + r.Person
		}
		return fmt.Sprintf("I understood that you want to schedule %s%s, but I need more information to proceed.",
			r.EventType, withPerson)

	case ReplyContactNoEvent:
		found := "I couldn't find their email in your contacts."
		if r.ContactEmail != "" {
			found = fmt.Sprintf("I found their email: %s.", r.ContactEmail)
		}
		return fmt.Sprintf("I understood that you want to schedule %s with %s, but I need more information to proceed. %s",
			r.EventType, r.Person, found)

	case ReplyError:
		return fmt.Sprintf("I couldn't process your request. %s", r.Err)
	}

	return ""
}

// IsError reports whether this reply marks a failed turn in the trace.
func (r Reply) IsError() bool {
	return r.Kind == ReplyError
}

// formatSchedule renders an intent's start/end as a local date and time pair
// for reply text. Unparseable values fall back to the raw strings so the
// reply is still produced.
func formatSchedule(details *EventDetails) (date, startTime, endTime string) {
	start, ok := parseIntentTime(details.Start)
	if !ok {
		return details.Start.DateTime, details.Start.DateTime, details.End.DateTime
	}
	date = start.Format("1/2/2006")
	startTime = start.Format("3:04:05 PM")

	if end, ok := parseIntentTime(details.End); ok {
		endTime = end.Format("3:04:05 PM")
	} else {
		endTime = details.End.DateTime
	}
	return date, startTime, endTime
}

func parseIntentTime(t *IntentTime) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	parsed, _, err := timeutil.ParseDateTime(t.DateTime, t.TimeZone)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
