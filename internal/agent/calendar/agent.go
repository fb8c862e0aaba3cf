// Package calendar implements the scheduling agent: it interprets a free-text
// message against the user's upcoming calendar, resolves a named person to an
// email address, and commits the event.
package calendar

import (
	"context"
	"fmt"

	"github.com/yuvalshat/project_butler/internal/agent"
	"github.com/yuvalshat/project_butler/internal/contacts"
	"github.com/yuvalshat/project_butler/internal/gcal"
	"github.com/yuvalshat/project_butler/internal/notify"
	"github.com/yuvalshat/project_butler/internal/timeutil"
)

// Interpreter turns system instructions plus a user message into the raw
// intent JSON.
type Interpreter interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// CalendarStore lists upcoming events and commits new ones.
type CalendarStore interface {
	ListUpcomingEvents(ctx context.Context) ([]gcal.Event, error)
	CreateEvent(ctx context.Context, input gcal.EventInput) (*gcal.CreatedEvent, error)
}

// ContactDirectory resolves a person name to a best-effort contact match.
type ContactDirectory interface {
	SearchContact(ctx context.Context, query string) (*contacts.Contact, error)
}

// Config holds the collaborators and settings for the scheduling agent.
type Config struct {
	Interpreter Interpreter
	Calendar    CalendarStore
	Contacts    ContactDirectory
	Notify      *notify.Service
	Timezone    string
	Clock       timeutil.Clock
}

// Agent sequences one scheduling turn: fetch context, interpret, resolve the
// attendee, commit, reply.
type Agent struct {
	interpreter Interpreter
	calendar    CalendarStore
	contacts    ContactDirectory
	notify      *notify.Service
	timezone    string
	clock       timeutil.Clock
}

// NewAgent creates the scheduling agent.
func NewAgent(cfg Config) *Agent {
	clock := cfg.Clock
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &Agent{
		interpreter: cfg.Interpreter,
		calendar:    cfg.Calendar,
		contacts:    cfg.Contacts,
		notify:      cfg.Notify,
		timezone:    cfg.Timezone,
		clock:       clock,
	}
}

// ProcessMessage runs a single turn and returns the conversation entries it
// produced: the echoed input and, unless the turn aborts on an expired
// session, the reply. A returned error always satisfies
// gcal.IsAuthError and means the caller must re-authenticate; every other
// failure is folded into the reply text.
func (a *Agent) ProcessMessage(ctx context.Context, message, carryOver string) ([]agent.Response, error) {
	echo := agent.Echo(message, a.clock.Now())

	responses, err := a.runTurn(ctx, message, carryOver)
	if err != nil {
		return []agent.Response{echo}, err
	}
	return append([]agent.Response{echo}, responses...), nil
}

func (a *Agent) runTurn(ctx context.Context, message, carryOver string) ([]agent.Response, error) {
	reply, err := a.parseAndSchedule(ctx, message, carryOver)
	if err != nil {
		return nil, err
	}

	return []agent.Response{{
		Message:   reply.Render(),
		Timestamp: a.clock.Now(),
		IsError:   reply.IsError(),
	}}, nil
}

func (a *Agent) parseAndSchedule(ctx context.Context, message, carryOver string) (Reply, error) {
	events, err := a.calendar.ListUpcomingEvents(ctx)
	if err != nil {
		if gcal.IsAuthError(err) {
			return Reply{}, fmt.Errorf("fetching calendar events: %w", gcal.ErrAuthExpired)
		}
		// Degrade gracefully: interpret with no calendar context.
		fmt.Printf("Warning: failed to fetch calendar events: %v\n", err)
		events = nil
	}

	system := BuildSystemPrompt(BuildCalendarContext(events), carryOver, a.clock.Now(), a.timezone)

	raw, err := a.interpreter.CompleteJSON(ctx, system, message)
	if err != nil {
		return Reply{Kind: ReplyError, Err: fmt.Sprintf("%v", err)}, nil
	}

	intent, err := ParseIntent(raw)
	if err != nil {
		return Reply{Kind: ReplyError, Err: fmt.Sprintf("%v", err)}, nil
	}

	if !intent.IsValid {
		return Reply{
			Kind:            ReplyInvalid,
			OriginalMessage: message,
			Reason:          intent.ReasonInvalid,
		}, nil
	}

	// Contact resolution happens whenever a person is named, whether or not
	// the event details are complete.
	var match *contacts.Contact
	if intent.Person != "" {
		match, err = a.contacts.SearchContact(ctx, intent.Person)
		if err != nil {
			// A failed lookup is not "no such contact", but both proceed
			// without an attendee.
			fmt.Printf("Warning: contact lookup failed for %q: %v\n", intent.Person, err)
			match = nil
		}
	}

	if intent.Complete() {
		return a.commitEvent(ctx, intent, match)
	}

	if intent.Person != "" {
		reply := Reply{
			Kind:      ReplyContactNoEvent,
			EventType: intent.EventType,
			Person:    intent.Person,
		}
		if match != nil {
			reply.ContactEmail = match.Email
		}
		return reply, nil
	}

	return Reply{Kind: ReplyNeedMoreInfo, EventType: intent.EventType}, nil
}

func (a *Agent) commitEvent(ctx context.Context, intent *Intent, match *contacts.Contact) (Reply, error) {
	input := gcal.EventInput{
		Summary:     intent.EventDetails.Summary,
		Description: intent.Description,
		Start: gcal.EventTime{
			DateTime: intent.EventDetails.Start.DateTime,
			TimeZone: intent.EventDetails.Start.TimeZone,
		},
		End: gcal.EventTime{
			DateTime: intent.EventDetails.End.DateTime,
			TimeZone: intent.EventDetails.End.TimeZone,
		},
	}
	if match != nil {
		input.AttendeeEmail = match.Email
	}

	created, err := a.calendar.CreateEvent(ctx, input)
	if err != nil {
		if gcal.IsAuthError(err) {
			return Reply{}, fmt.Errorf("creating calendar event: %w", gcal.ErrAuthExpired)
		}
		return Reply{Kind: ReplyError, Err: fmt.Sprintf("%v", err)}, nil
	}

	date, startTime, endTime := formatSchedule(intent.EventDetails)

	// Confirmation email is fire-and-forget, never fails the turn.
	if a.notify != nil {
		go a.notify.NotifyEventScheduled(context.Background(), created.Summary, date, startTime, endTime)
	}

	if intent.Person != "" {
		reply := Reply{
			Kind:      ReplyScheduledForAttendee,
			EventType: intent.EventType,
			Person:    intent.Person,
			Date:      date,
			StartTime: startTime,
			EndTime:   endTime,
		}
		if match != nil {
			reply.AttendeeEmail = match.Email
		}
		return reply, nil
	}

	return Reply{
		Kind:      ReplyScheduled,
		EventType: intent.EventType,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}
