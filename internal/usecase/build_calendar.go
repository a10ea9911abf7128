// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/ics"
)

// BuildCalendarInput contains the parameters for building the task calendar.
type BuildCalendarInput struct{}

// BuildCalendarOutput contains the assembled calendar document.
type BuildCalendarOutput struct {
	Content  string // iCalendar text
	FileName string // Download name for the bulk file
	Events   int    // Number of events written
	Skipped  int    // Tasks left out for lack of a parseable due date
}

// BuildCalendar assembles every task into one calendar document.
// It backs both the live feed and the bulk download.
type BuildCalendar struct {
	tasks   domain.TaskRepository
	clients domain.ClientRepository
	clock   domain.Clock
	loc     *time.Location
	logger  domain.Logger
}

// NewBuildCalendar creates a new BuildCalendar use case.
func NewBuildCalendar(tasks domain.TaskRepository, clients domain.ClientRepository, clock domain.Clock, loc *time.Location, logger domain.Logger) *BuildCalendar {
	return &BuildCalendar{
		tasks:   tasks,
		clients: clients,
		clock:   clock,
		loc:     loc,
		logger:  logger,
	}
}

// Execute loads tasks and clients and renders them. Tasks whose due date
// does not parse are skipped; the bulk calendar omits unknown client names.
func (uc *BuildCalendar) Execute(ctx context.Context, _ BuildCalendarInput) (*BuildCalendarOutput, error) {
	tasks, err := uc.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	clients, err := uc.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	now := uc.clock.Now()
	events := make([]domain.CalendarEvent, 0, len(tasks))
	skipped := 0
	for _, task := range tasks {
		name := ""
		if c, ok := domain.FindClient(clients, task.ClientID); ok {
			name = c.Name
		}
		ev, err := domain.EventFromTask(task, name, now, uc.loc)
		if errors.Is(err, domain.ErrNoDueDate) {
			skipped++
			continue
		}
		events = append(events, ev)
	}

	if skipped > 0 && uc.logger != nil {
		uc.logger.Debug("calendar", fmt.Sprintf("skipped %d task(s) without a parseable due date", skipped))
	}

	return &BuildCalendarOutput{
		Content:  ics.Calendar(events),
		FileName: ics.BulkFileName(now),
		Events:   len(events),
		Skipped:  skipped,
	}, nil
}
