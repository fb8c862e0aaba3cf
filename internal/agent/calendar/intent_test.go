package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent_Valid(t *testing.T) {
	intent, err := ParseIntent(`{
		"eventType": "dinner",
		"description": "Dinner with Alice",
		"person": "Alice",
		"eventDetails": {
			"summary": "Dinner with Alice",
			"start": {"dateTime": "2025-03-11T18:00:00", "timeZone": "Europe/London"},
			"end": {"dateTime": "2025-03-11T20:00:00", "timeZone": "Europe/London"}
		},
		"isValid": true
	}`)

	require.NoError(t, err)
	assert.Equal(t, "dinner", intent.EventType)
	assert.Equal(t, "Alice", intent.Person)
	assert.True(t, intent.IsValid)
	require.NotNil(t, intent.EventDetails)
	assert.Equal(t, "2025-03-11T18:00:00", intent.EventDetails.Start.DateTime)
	assert.Equal(t, "Europe/London", intent.EventDetails.End.TimeZone)
	assert.True(t, intent.Complete())
}

func TestParseIntent_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		_, err := ParseIntent(raw)
		assert.ErrorIs(t, err, ErrEmptyResponse)
		assert.ErrorIs(t, err, ErrInterpretation)
	}
}

func TestParseIntent_Malformed(t *testing.T) {
	_, err := ParseIntent("I scheduled it for you!")

	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.ErrorIs(t, err, ErrInterpretation)
}

func TestParseIntent_WrongTypeNotCoerced(t *testing.T) {
	// isValid as a string must fail the parse, not coerce to a bool.
	_, err := ParseIntent(`{"eventType": "meeting", "isValid": "yes"}`)

	assert.ErrorIs(t, err, ErrInvalidShape)
	assert.Contains(t, err.Error(), "isValid")
}

func TestParseIntent_MissingIsValid(t *testing.T) {
	_, err := ParseIntent(`{"eventType": "meeting"}`)

	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestParseIntent_InvalidIntentDropsEventDetails(t *testing.T) {
	intent, err := ParseIntent(`{
		"eventType": "other",
		"eventDetails": {"summary": "bogus"},
		"isValid": false,
		"reasonInvalid": "Not about the calendar."
	}`)

	require.NoError(t, err)
	assert.False(t, intent.IsValid)
	assert.Nil(t, intent.EventDetails)
	assert.Equal(t, "Not about the calendar.", intent.ReasonInvalid)
}

func TestIntentComplete(t *testing.T) {
	tests := []struct {
		name    string
		details *EventDetails
		want    bool
	}{
		{"nil details", nil, false},
		{"no times", &EventDetails{Summary: "m"}, false},
		{"start only", &EventDetails{Start: &IntentTime{DateTime: "2025-03-11T10:00:00"}}, false},
		{"end only", &EventDetails{End: &IntentTime{DateTime: "2025-03-11T11:00:00"}}, false},
		{"empty start datetime", &EventDetails{
			Start: &IntentTime{TimeZone: "UTC"},
			End:   &IntentTime{DateTime: "2025-03-11T11:00:00"},
		}, false},
		{"both present", &EventDetails{
			Start: &IntentTime{DateTime: "2025-03-11T10:00:00"},
			End:   &IntentTime{DateTime: "2025-03-11T11:00:00"},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := &Intent{IsValid: true, EventDetails: tt.details}
			assert.Equal(t, tt.want, intent.Complete())
		})
	}
}
