package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/clientive/clientive/internal/domain"
)

// SendRemindersInput contains the parameters for a reminder run.
type SendRemindersInput struct {
	To     string        // Recipient; required unless DryRun
	Window time.Duration // How far ahead to look
	DryRun bool          // Collect without mailing
}

// SendRemindersOutput lists the tasks included in the reminder.
type SendRemindersOutput struct {
	Tasks []ListedTask
	Sent  bool
}

// SendReminders mails a summary of tasks that asked for email reminders.
type SendReminders struct {
	tasks   domain.TaskRepository
	clients domain.ClientRepository
	mailer  domain.Mailer
	clock   domain.Clock
	loc     *time.Location
	logger  domain.Logger
}

// NewSendReminders creates a new SendReminders use case.
func NewSendReminders(
	tasks domain.TaskRepository,
	clients domain.ClientRepository,
	mailer domain.Mailer,
	clock domain.Clock,
	loc *time.Location,
	logger domain.Logger,
) *SendReminders {
	if loc == nil {
		loc = time.UTC
	}
	return &SendReminders{tasks: tasks, clients: clients, mailer: mailer, clock: clock, loc: loc, logger: logger}
}

// Execute collects due tasks and, when there are any, sends one email.
func (uc *SendReminders) Execute(ctx context.Context, in SendRemindersInput) (*SendRemindersOutput, error) {
	tasks, err := uc.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	clients, err := uc.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	now := uc.clock.Now()
	var due []ListedTask
	for _, t := range tasks {
		if !t.NeedsReminder(now, in.Window, uc.loc) {
			continue
		}
		lt := ListedTask{Task: t, ClientName: domain.UnknownClientName, Bucket: BucketUpcoming}
		if c, ok := domain.FindClient(clients, t.ClientID); ok {
			lt.ClientName = c.Name
		}
		lt.Due, _ = t.Due(uc.loc)
		if lt.Due.Before(now) {
			lt.Bucket = BucketOverdue
		}
		due = append(due, lt)
	}
	slices.SortStableFunc(due, func(a, b ListedTask) int { return a.Due.Compare(b.Due) })

	out := &SendRemindersOutput{Tasks: due}
	if len(due) == 0 || in.DryRun {
		return out, nil
	}
	if in.To == "" {
		return nil, domain.NewValidationError("Reminder recipient is not configured")
	}

	msg := domain.MailMessage{
		To:      in.To,
		Subject: fmt.Sprintf("%d task(s) need your attention", len(due)),
		Text:    reminderText(due, uc.loc),
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("send reminder: %w", err)
	}
	out.Sent = true
	if uc.logger != nil {
		uc.logger.Info("remind", fmt.Sprintf("sent %d reminder(s) to %s", len(due), in.To))
	}
	return out, nil
}

func reminderText(tasks []ListedTask, loc *time.Location) string {
	var b strings.Builder
	for _, lt := range tasks {
		label := "due"
		if lt.Bucket == BucketOverdue {
			label = "overdue"
		}
		fmt.Fprintf(&b, "- [%s] %s (%s), %s %s\n",
			lt.Task.Priority, lt.Task.Title, lt.ClientName, label, lt.Due.In(loc).Format("Jan 2 15:04"))
	}
	return b.String()
}
