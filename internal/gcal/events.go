package gcal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

const (
	// LookaheadWindow is the fixed horizon for the scheduling context.
	LookaheadWindow = 7 * 24 * time.Hour

	maxListResults = 30
)

// EventTime mirrors the Calendar API start/end shape: a precise datetime with
// timezone, or an all-day date.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// Attendee is a calendar event participant.
type Attendee struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// Event is a read-only upcoming event used for scheduling context.
type Event struct {
	ID        string     `json:"id"`
	Summary   string     `json:"summary"`
	Start     EventTime  `json:"start"`
	End       EventTime  `json:"end"`
	Attendees []Attendee `json:"attendees,omitempty"`
}

// EventInput describes a calendar event to create. Start and End must both
// carry an explicit DateTime and TimeZone.
type EventInput struct {
	Summary       string
	Description   string
	Start         EventTime
	End           EventTime
	AttendeeEmail string
}

// CreatedEvent is the upstream record of a committed event.
type CreatedEvent struct {
	ID       string
	Summary  string
	HTMLLink string
}

// EventError reports an upstream rejection when committing an event,
// carrying the upstream HTTP status when available.
type EventError struct {
	StatusCode int
	Err        error
}

func (e *EventError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to create event (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to create event: %v", e.Err)
}

func (e *EventError) Unwrap() error {
	return e.Err
}

// ListUpcomingEvents returns up to 30 events on the primary calendar starting
// within the lookahead window, ordered by start time, with recurring events
// expanded to single instances. Events are returned in the wire shape they
// arrived in; they are context material, never mutated.
func (c *Client) ListUpcomingEvents(ctx context.Context) ([]Event, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized: %w", ErrAuthExpired)
	}

	now := time.Now()
	result, err := c.service.Events.List("primary").
		Context(ctx).
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.Add(LookaheadWindow).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxListResults).
		Do()
	if err != nil {
		if IsAuthError(err) {
			return nil, fmt.Errorf("failed to list events: %w", ErrAuthExpired)
		}
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		if item == nil || item.Status == "cancelled" {
			continue
		}

		event := Event{
			ID:      item.Id,
			Summary: item.Summary,
			Start:   convertEventTime(item.Start),
			End:     convertEventTime(item.End),
		}
		for _, attendee := range item.Attendees {
			if attendee != nil && attendee.Email != "" {
				event.Attendees = append(event.Attendees, Attendee{
					Email:       attendee.Email,
					DisplayName: attendee.DisplayName,
				})
			}
		}
		events = append(events, event)
	}

	return events, nil
}

func convertEventTime(t *calendar.EventDateTime) EventTime {
	if t == nil {
		return EventTime{}
	}
	return EventTime{
		DateTime: t.DateTime,
		Date:     t.Date,
		TimeZone: t.TimeZone,
	}
}

// CreateEvent commits an event on the primary calendar. When an attendee is
// present it is attached as an invitee and update notifications are sent to
// all participants; otherwise no notifications go out. Reminders use calendar
// defaults.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (*CreatedEvent, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized: %w", ErrAuthExpired)
	}
	if input.Start.DateTime == "" || input.End.DateTime == "" {
		return nil, &EventError{Err: fmt.Errorf("start and end datetimes are required")}
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.DateTime,
			TimeZone: input.Start.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.DateTime,
			TimeZone: input.End.TimeZone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault:      true,
			ForceSendFields: []string{"UseDefault"},
		},
	}

	sendUpdates := "none"
	if input.AttendeeEmail != "" {
		event.Attendees = []*calendar.EventAttendee{{Email: input.AttendeeEmail}}
		sendUpdates = "all"
	}

	created, err := c.service.Events.Insert("primary", event).
		Context(ctx).
		SendUpdates(sendUpdates).
		Do()
	if err != nil {
		if IsAuthError(err) {
			return nil, fmt.Errorf("failed to create event: %w", ErrAuthExpired)
		}
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			return nil, &EventError{StatusCode: gErr.Code, Err: err}
		}
		return nil, &EventError{Err: err}
	}

	return &CreatedEvent{
		ID:       created.Id,
		Summary:  created.Summary,
		HTMLLink: created.HtmlLink,
	}, nil
}
