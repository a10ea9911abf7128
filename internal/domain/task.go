package domain

import (
	"strings"
	"time"
)

// Task is a scheduled follow-up attached to a client.
// Fields are ordered to minimize memory padding.
type Task struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	ClientID    string   `json:"clientId" yaml:"clientId"`
	DueDate     string   `json:"dueDate" yaml:"dueDate"` // ISO 8601 date or date-time, as entered
	Type        TaskType `json:"type" yaml:"type"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Completed   bool     `json:"completed" yaml:"completed"`
	EmailNotify bool     `json:"emailNotify" yaml:"emailNotify"`
}

// Layouts accepted for DueDate. Zone-less date-times are interpreted in the
// caller's location; a bare date is midnight UTC.
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04Z07:00",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	dateLayout = "2006-01-02"
)

// Due parses DueDate. ok is false when the value is empty or unparseable,
// which callers treat as "no date".
func (t *Task) Due(loc *time.Location) (time.Time, bool) {
	return ParseDueDate(t.DueDate, loc)
}

// ParseDueDate parses an ISO 8601 date or date-time string.
func ParseDueDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range zonedLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, true
		}
	}
	if ts, err := time.Parse(dateLayout, s); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

// OverdueGrace is how long after its due time an open task still triggers a
// reminder.
const OverdueGrace = 24 * time.Hour

// NeedsReminder reports whether an open task that asked for email reminders
// is due within window of now, or overdue by at most OverdueGrace.
func (t *Task) NeedsReminder(now time.Time, window time.Duration, loc *time.Location) bool {
	if t.Completed || !t.EmailNotify {
		return false
	}
	due, ok := t.Due(loc)
	if !ok {
		return false
	}
	if due.After(now) {
		return due.Sub(now) <= window
	}
	return now.Sub(due) <= OverdueGrace
}
