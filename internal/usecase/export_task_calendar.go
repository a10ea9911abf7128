package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/ics"
)

// ExportTaskCalendarInput contains the parameters for a single-task download.
type ExportTaskCalendarInput struct {
	TaskID string
}

// ExportTaskCalendarOutput contains the single-event calendar.
type ExportTaskCalendarOutput struct {
	Content  string
	FileName string // task-<id>.ics
}

// ExportTaskCalendar renders one task as a standalone calendar file.
type ExportTaskCalendar struct {
	tasks   domain.TaskRepository
	clients domain.ClientRepository
	clock   domain.Clock
	loc     *time.Location
}

// NewExportTaskCalendar creates a new ExportTaskCalendar use case.
func NewExportTaskCalendar(tasks domain.TaskRepository, clients domain.ClientRepository, clock domain.Clock, loc *time.Location) *ExportTaskCalendar {
	return &ExportTaskCalendar{tasks: tasks, clients: clients, clock: clock, loc: loc}
}

// Execute builds the calendar. Returns domain.ErrNoDueDate when the task's
// due date does not parse.
func (uc *ExportTaskCalendar) Execute(ctx context.Context, in ExportTaskCalendarInput) (*ExportTaskCalendarOutput, error) {
	ev, err := taskEvent(ctx, uc.tasks, uc.clients, in.TaskID, uc.clock.Now(), uc.loc)
	if err != nil {
		return nil, err
	}
	return &ExportTaskCalendarOutput{
		Content:  ics.SingleTaskCalendar(ev),
		FileName: ics.TaskFileName(in.TaskID),
	}, nil
}

// taskEvent loads one task and projects it, naming its client or
// "Unknown Client" when the reference does not resolve.
func taskEvent(ctx context.Context, tasks domain.TaskRepository, clients domain.ClientRepository, id string, now time.Time, loc *time.Location) (domain.CalendarEvent, error) {
	task, err := tasks.Get(ctx, id)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return domain.CalendarEvent{}, domain.ErrTaskNotFound
	}

	name := domain.UnknownClientName
	if task.ClientID != "" {
		client, err := clients.Get(ctx, task.ClientID)
		if err != nil {
			return domain.CalendarEvent{}, fmt.Errorf("get client: %w", err)
		}
		if client != nil {
			name = client.Name
		}
	}

	ev, err := domain.EventFromTask(task, name, now, loc)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("task %s: %w", id, err)
	}
	return ev, nil
}
