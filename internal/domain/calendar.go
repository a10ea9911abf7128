package domain

import "time"

// Calendar constants shared by the feed, downloads and quick-add links.
const (
	EventDuration     = 30 * time.Minute
	EventUIDDomain    = "clientive.local"
	UnknownClientName = "Unknown Client"
)

// CalendarEvent is the calendar projection of a task.
// Fields are ordered to minimize memory padding.
type CalendarEvent struct {
	Start       time.Time
	End         time.Time
	Stamp       time.Time
	UID         string
	Summary     string
	Description string
}

// TaskEventUID returns the stable event identifier for a task.
func TaskEventUID(taskID string) string {
	return "task-" + taskID + "@" + EventUIDDomain
}

// EventSummary joins a task title and client name. An empty client name
// yields the bare title.
func EventSummary(title, clientName string) string {
	if clientName == "" {
		return title
	}
	return title + " — " + clientName
}

// EventFromTask projects a task onto a calendar event starting at its due
// date. Returns ErrNoDueDate when the due date does not parse.
func EventFromTask(task *Task, clientName string, stamp time.Time, loc *time.Location) (CalendarEvent, error) {
	start, ok := task.Due(loc)
	if !ok {
		return CalendarEvent{}, ErrNoDueDate
	}
	return CalendarEvent{
		UID:         TaskEventUID(task.ID),
		Stamp:       stamp,
		Start:       start,
		End:         start.Add(EventDuration),
		Summary:     EventSummary(task.Title, clientName),
		Description: task.Description,
	}, nil
}
