// Package ics renders tasks as iCalendar (RFC 5545) documents.
//
// Only the subset the CRM needs is produced: VCALENDAR wrapping VEVENTs
// with UID, DTSTAMP, DTSTART, DTEND, SUMMARY and DESCRIPTION. Lines are not
// folded and only newlines are escaped in descriptions.
package ics

import (
	"regexp"
	"strings"
	"time"

	"github.com/clientive/clientive/internal/domain"
)

// Product identifiers.
const (
	FeedProdID = "-//AVD Clientive//CRM Tasks//EN"
	TaskProdID = "-//AVD Clientive//Task//EN"
)

// ContentType is the MIME type of the feed response.
const ContentType = "text/calendar; charset=utf-8"

// Error event values used when the feed cannot be built.
const (
	ErrorUID          = "error@" + domain.EventUIDDomain
	ErrorSummary      = "Calendar feed error"
	UnknownErrMessage = "Unknown error"
)

const (
	crlf       = "\r\n"
	timeLayout = "20060102T150405Z"
)

var newline = regexp.MustCompile(`\r?\n`)

// FormatTime renders t in the compact UTC basic format YYYYMMDDThhmmssZ.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// EscapeText replaces each newline (LF or CRLF) with the two characters `\n`.
func EscapeText(s string) string {
	return newline.ReplaceAllString(s, `\n`)
}

// EventLines serializes one event. Lines without content are omitted.
func EventLines(ev domain.CalendarEvent) []string {
	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + ev.UID,
		"DTSTAMP:" + FormatTime(ev.Stamp),
		"DTSTART:" + FormatTime(ev.Start),
		"DTEND:" + FormatTime(ev.End),
		"SUMMARY:" + ev.Summary,
	}
	if desc := EscapeText(ev.Description); desc != "" {
		lines = append(lines, "DESCRIPTION:"+desc)
	}
	return append(lines, "END:VEVENT")
}

// Calendar wraps events in the feed header and footer. An empty slice
// produces a valid calendar with no events.
func Calendar(events []domain.CalendarEvent) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + FeedProdID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	for _, ev := range events {
		lines = append(lines, EventLines(ev)...)
	}
	lines = append(lines, "END:VCALENDAR")
	return join(lines)
}

// SingleTaskCalendar is the document offered when one task is downloaded.
func SingleTaskCalendar(ev domain.CalendarEvent) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + TaskProdID,
	}
	lines = append(lines, EventLines(ev)...)
	lines = append(lines, "END:VCALENDAR")
	return join(lines)
}

// ErrorCalendar is the feed served when the real one cannot be built: a
// calendar holding one synthetic event that carries the failure message.
func ErrorCalendar(msg string, now time.Time) string {
	if strings.TrimSpace(msg) == "" {
		msg = UnknownErrMessage
	}
	return Calendar([]domain.CalendarEvent{{
		UID:         ErrorUID,
		Stamp:       now,
		Start:       now,
		End:         now.Add(domain.EventDuration),
		Summary:     ErrorSummary,
		Description: msg,
	}})
}

// BulkFileName returns clientive-tasks-<YYYY-MM-DD>.ics.
func BulkFileName(now time.Time) string {
	return "clientive-tasks-" + now.UTC().Format("2006-01-02") + ".ics"
}

// TaskFileName returns task-<id>.ics.
func TaskFileName(taskID string) string {
	return "task-" + taskID + ".ics"
}

func join(lines []string) string {
	return strings.Join(lines, crlf) + crlf
}
