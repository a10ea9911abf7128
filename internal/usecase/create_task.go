package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clientive/clientive/internal/domain"
)

// Task validation messages.
const (
	MsgTaskFieldsRequired = "title, clientId, dueDate are required"
	MsgTaskDueInvalid     = "Invalid due date"
	MsgTaskTypeInvalid    = "Invalid task type"
	MsgTaskPriority       = "Invalid priority"
)

// CreateTaskInput contains the parameters for creating a task.
// Fields are ordered to minimize memory padding.
type CreateTaskInput struct {
	Title       string
	Description string
	ClientID    string
	DueDate     string
	Type        domain.TaskType // Defaults to follow-up
	Priority    domain.Priority // Defaults to medium
	Completed   bool
	EmailNotify bool
}

// CreateTaskOutput contains the created task.
type CreateTaskOutput struct {
	Task *domain.Task
}

// CreateTask schedules a follow-up for a client.
type CreateTask struct {
	tasks  domain.TaskRepository
	loc    *time.Location
	logger domain.Logger
}

// NewCreateTask creates a new CreateTask use case.
func NewCreateTask(tasks domain.TaskRepository, loc *time.Location, logger domain.Logger) *CreateTask {
	return &CreateTask{tasks: tasks, loc: loc, logger: logger}
}

// Execute validates and stores the task.
func (uc *CreateTask) Execute(ctx context.Context, in CreateTaskInput) (*CreateTaskOutput, error) {
	if strings.TrimSpace(in.Title) == "" || in.ClientID == "" || strings.TrimSpace(in.DueDate) == "" {
		return nil, domain.NewValidationError(MsgTaskFieldsRequired)
	}
	if _, ok := domain.ParseDueDate(in.DueDate, uc.loc); !ok {
		return nil, domain.NewValidationError(MsgTaskDueInvalid)
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		ClientID:    in.ClientID,
		DueDate:     strings.TrimSpace(in.DueDate),
		Type:        in.Type,
		Priority:    in.Priority,
		Completed:   in.Completed,
		EmailNotify: in.EmailNotify,
	}
	if task.Type == "" {
		task.Type = domain.TaskFollowUp
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if err := validateTaskEnums(task); err != nil {
		return nil, err
	}

	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info("task", fmt.Sprintf("created %s for client %s", task.ID, task.ClientID))
	}
	return &CreateTaskOutput{Task: task}, nil
}

func validateTaskEnums(t *domain.Task) error {
	if !t.Type.IsValid() {
		return domain.NewValidationError(MsgTaskTypeInvalid)
	}
	if !t.Priority.IsValid() {
		return domain.NewValidationError(MsgTaskPriority)
	}
	return nil
}
