package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	tests := []struct {
		name   string
		input  string
		expect time.Time
		ok     bool
	}{
		{"rfc3339 utc", "2024-03-01T10:00:00Z", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), true},
		{"rfc3339 millis", "2024-03-01T10:00:00.000Z", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), true},
		{"offset", "2024-03-01T10:00:00+02:00", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), true},
		{"local minutes", "2024-03-01T10:00", time.Date(2024, 3, 1, 10, 0, 0, 0, berlin), true},
		{"date only is utc", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "next tuesday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDueDate(tt.input, berlin)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.expect.Equal(got), "got %s want %s", got, tt.expect)
			}
		})
	}
}

func TestTask_NeedsReminder(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	window := time.Hour

	tests := []struct {
		name   string
		task   Task
		expect bool
	}{
		{"due soon", Task{DueDate: "2024-03-01T12:30:00Z", EmailNotify: true}, true},
		{"due later", Task{DueDate: "2024-03-01T14:00:00Z", EmailNotify: true}, false},
		{"overdue within a day", Task{DueDate: "2024-02-29T13:00:00Z", EmailNotify: true}, true},
		{"overdue too long", Task{DueDate: "2024-02-27T12:00:00Z", EmailNotify: true}, false},
		{"not opted in", Task{DueDate: "2024-03-01T12:30:00Z"}, false},
		{"completed", Task{DueDate: "2024-03-01T12:30:00Z", EmailNotify: true, Completed: true}, false},
		{"no date", Task{DueDate: "soon", EmailNotify: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.task.NeedsReminder(now, window, time.UTC))
		})
	}
}

func TestEventFromTask(t *testing.T) {
	stamp := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{ID: "42", Title: "Call", Description: "line", DueDate: "2024-03-01T10:00:00Z"}

	ev, err := EventFromTask(task, "Acme", stamp, time.UTC)

	require.NoError(t, err)
	assert.Equal(t, "task-42@clientive.local", ev.UID)
	assert.Equal(t, "Call — Acme", ev.Summary)
	assert.Equal(t, 30*time.Minute, ev.End.Sub(ev.Start))
	assert.Equal(t, stamp, ev.Stamp)

	_, err = EventFromTask(&Task{ID: "1", DueDate: "nope"}, "", stamp, time.UTC)
	assert.ErrorIs(t, err, ErrNoDueDate)
}

func TestEventSummary_NoClient(t *testing.T) {
	assert.Equal(t, "Call", EventSummary("Call", ""))
}
