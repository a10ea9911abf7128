package ics

import (
	"net/url"
	"strings"

	"github.com/clientive/clientive/internal/domain"
)

// QuickAddBase is the Google Calendar event template endpoint.
const QuickAddBase = "https://www.google.com/calendar/render"

// QuickAddURL builds a link that opens the calendar provider with the event
// pre-filled. Parameters are percent-encoded as URI components: space is
// %20 and the marks ! ' ( ) * stay literal.
func QuickAddURL(ev domain.CalendarEvent) string {
	return QuickAddBase +
		"?action=TEMPLATE" +
		"&text=" + encodeComponent(ev.Summary) +
		"&details=" + encodeComponent(ev.Description) +
		"&dates=" + FormatTime(ev.Start) + "/" + FormatTime(ev.End)
}

// componentSafe undoes the url.QueryEscape encodings that URI components keep literal.
var componentSafe = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentSafe.Replace(url.QueryEscape(s))
}
