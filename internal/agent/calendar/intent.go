package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Interpretation failures share a common sentinel so the orchestrator can
// treat empty, malformed and wrong-shape responses as a single non-retryable
// failure while keeping the subtype visible in logs.
var (
	ErrInterpretation = errors.New("interpretation failed")

	ErrEmptyResponse     = fmt.Errorf("%w: empty response from interpreter", ErrInterpretation)
	ErrMalformedResponse = fmt.Errorf("%w: interpreter response is not valid JSON", ErrInterpretation)
	ErrInvalidShape      = fmt.Errorf("%w: interpreter response has invalid shape", ErrInterpretation)
)

// IntentTime is a precise moment with an explicit timezone.
type IntentTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone,omitempty"`
}

// EventDetails carries the extractable event data of an intent. Start and End
// must be present together for the intent to be committable.
type EventDetails struct {
	Summary string      `json:"summary"`
	Start   *IntentTime `json:"start,omitempty"`
	End     *IntentTime `json:"end,omitempty"`
}

// Intent is the structured result of interpreting one user message.
type Intent struct {
	EventType     string        `json:"eventType"`
	Description   string        `json:"description,omitempty"`
	Person        string        `json:"person,omitempty"`
	EventDetails  *EventDetails `json:"eventDetails,omitempty"`
	IsValid       bool          `json:"isValid"`
	ReasonInvalid string        `json:"reasonInvalid,omitempty"`
}

// Complete reports whether the intent carries enough detail to commit an
// event: both start and end present with datetimes.
func (i *Intent) Complete() bool {
	return i.EventDetails != nil &&
		i.EventDetails.Start != nil && i.EventDetails.Start.DateTime != "" &&
		i.EventDetails.End != nil && i.EventDetails.End.DateTime != ""
}

// rawIntent mirrors Intent with a pointer isValid so a missing field is
// distinguishable from false.
type rawIntent struct {
	EventType     string        `json:"eventType"`
	Description   string        `json:"description"`
	Person        string        `json:"person"`
	EventDetails  *EventDetails `json:"eventDetails"`
	IsValid       *bool         `json:"isValid"`
	ReasonInvalid string        `json:"reasonInvalid"`
}

// ParseIntent decodes and validates the interpreter's raw output. Fields that
// violate the schema fail with ErrInvalidShape rather than silently coercing.
func ParseIntent(raw string) (*Intent, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyResponse
	}

	var parsed rawIntent
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: field %q is not a %s", ErrInvalidShape, typeErr.Field, typeErr.Type)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if parsed.IsValid == nil {
		return nil, fmt.Errorf("%w: missing required field \"isValid\"", ErrInvalidShape)
	}

	intent := &Intent{
		EventType:     parsed.EventType,
		Description:   parsed.Description,
		Person:        parsed.Person,
		EventDetails:  parsed.EventDetails,
		IsValid:       *parsed.IsValid,
		ReasonInvalid: parsed.ReasonInvalid,
	}

	// An invalid intent never carries event details, whatever the model put there.
	if !intent.IsValid {
		intent.EventDetails = nil
	}

	return intent, nil
}
