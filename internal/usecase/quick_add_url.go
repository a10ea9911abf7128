package usecase

import (
	"context"
	"time"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/ics"
)

// QuickAddURLInput contains the parameters for building a quick-add link.
type QuickAddURLInput struct {
	TaskID string
}

// QuickAddURLOutput contains the link.
type QuickAddURLOutput struct {
	URL string
}

// QuickAddURL builds a calendar provider link that pre-fills one task.
type QuickAddURL struct {
	tasks   domain.TaskRepository
	clients domain.ClientRepository
	clock   domain.Clock
	loc     *time.Location
}

// NewQuickAddURL creates a new QuickAddURL use case.
func NewQuickAddURL(tasks domain.TaskRepository, clients domain.ClientRepository, clock domain.Clock, loc *time.Location) *QuickAddURL {
	return &QuickAddURL{tasks: tasks, clients: clients, clock: clock, loc: loc}
}

// Execute returns the link. Returns domain.ErrNoDueDate for undated tasks.
func (uc *QuickAddURL) Execute(ctx context.Context, in QuickAddURLInput) (*QuickAddURLOutput, error) {
	ev, err := taskEvent(ctx, uc.tasks, uc.clients, in.TaskID, uc.clock.Now(), uc.loc)
	if err != nil {
		return nil, err
	}
	return &QuickAddURLOutput{URL: ics.QuickAddURL(ev)}, nil
}
