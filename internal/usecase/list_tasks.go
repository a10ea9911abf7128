package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/clientive/clientive/internal/domain"
)

// TaskBucket groups tasks by when they are due.
type TaskBucket int

// Buckets in display order.
const (
	BucketOverdue TaskBucket = iota
	BucketToday
	BucketUpcoming
	BucketNoDate
	BucketDone
)

// String returns the bucket label.
func (b TaskBucket) String() string {
	switch b {
	case BucketOverdue:
		return "overdue"
	case BucketToday:
		return "today"
	case BucketUpcoming:
		return "upcoming"
	case BucketDone:
		return "done"
	default:
		return "no date"
	}
}

// ListedTask is a task with its resolved due time.
// Fields are ordered to minimize memory padding.
type ListedTask struct {
	Due        time.Time
	Task       *domain.Task
	ClientName string
	Bucket     TaskBucket
}

// ListTasksInput contains the optional filters.
type ListTasksInput struct {
	ClientID    string
	PendingOnly bool
}

// ListTasksOutput contains the matching tasks, overdue first.
type ListTasksOutput struct {
	Tasks []ListedTask
}

// ListTasks lists tasks grouped by urgency.
type ListTasks struct {
	tasks   domain.TaskRepository
	clients domain.ClientRepository
	clock   domain.Clock
	loc     *time.Location
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository, clients domain.ClientRepository, clock domain.Clock, loc *time.Location) *ListTasks {
	if loc == nil {
		loc = time.UTC
	}
	return &ListTasks{tasks: tasks, clients: clients, clock: clock, loc: loc}
}

// Execute returns the tasks sorted by bucket, then by due time.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	tasks, err := uc.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	clients, err := uc.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	now := uc.clock.Now().In(uc.loc)
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, uc.loc)
	endOfDay := startOfDay.AddDate(0, 0, 1)

	out := make([]ListedTask, 0, len(tasks))
	for _, t := range tasks {
		if in.PendingOnly && t.Completed {
			continue
		}
		if in.ClientID != "" && t.ClientID != in.ClientID {
			continue
		}
		lt := ListedTask{Task: t, ClientName: domain.UnknownClientName}
		if c, ok := domain.FindClient(clients, t.ClientID); ok {
			lt.ClientName = c.Name
		}
		due, ok := t.Due(uc.loc)
		lt.Due = due
		switch {
		case t.Completed:
			lt.Bucket = BucketDone
		case !ok:
			lt.Bucket = BucketNoDate
		case due.Before(startOfDay):
			lt.Bucket = BucketOverdue
		case due.Before(endOfDay):
			lt.Bucket = BucketToday
		default:
			lt.Bucket = BucketUpcoming
		}
		out = append(out, lt)
	}

	slices.SortStableFunc(out, func(a, b ListedTask) int {
		if a.Bucket != b.Bucket {
			return int(a.Bucket) - int(b.Bucket)
		}
		return a.Due.Compare(b.Due)
	})
	return &ListTasksOutput{Tasks: out}, nil
}
