package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPrompt_IncludesDateAndTimezone(t *testing.T) {
	today := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	got := BuildSystemPrompt("", "", today, "Europe/London")

	assert.Contains(t, got, "Today's date is 2025-03-10.")
	assert.Contains(t, got, "The user's timezone is Europe/London.")
	assert.Contains(t, got, `"isValid": true/false`)
	assert.Contains(t, got, "dinner = 6-8 PM")
	assert.Contains(t, got, "Set isValid to false only for non-calendar related requests")
}

func TestBuildSystemPrompt_OmitsEmptySections(t *testing.T) {
	got := BuildSystemPrompt("", "", time.Now(), "UTC")

	assert.NotContains(t, got, "Calendar Context:")
	assert.NotContains(t, got, "# Context")
}

func TestBuildSystemPrompt_IncludesCalendarContext(t *testing.T) {
	got := BuildSystemPrompt("# My Calendar Events\n- Standup", "", time.Now(), "UTC")

	assert.Contains(t, got, "Calendar Context:")
	assert.Contains(t, got, "- Standup")
}

func TestBuildSystemPrompt_IncludesCarryOverContext(t *testing.T) {
	got := BuildSystemPrompt("", "I've scheduled dinner for 3/11/2025.", time.Now(), "UTC")

	assert.Contains(t, got, "# Context")
	assert.Contains(t, got, "you must ignore this context")
	assert.Contains(t, got, "I've scheduled dinner for 3/11/2025.")
}
