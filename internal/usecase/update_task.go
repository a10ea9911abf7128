package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clientive/clientive/internal/domain"
)

// UpdateTaskInput contains the fields to change. Nil means unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	ClientID    *string
	DueDate     *string
	Type        *domain.TaskType
	Priority    *domain.Priority
	Completed   *bool
	EmailNotify *bool
	ID          string
}

// UpdateTaskOutput contains the updated task.
type UpdateTaskOutput struct {
	Task *domain.Task
}

// UpdateTask applies a partial update to a task.
type UpdateTask struct {
	tasks domain.TaskRepository
	loc   *time.Location
}

// NewUpdateTask creates a new UpdateTask use case.
func NewUpdateTask(tasks domain.TaskRepository, loc *time.Location) *UpdateTask {
	return &UpdateTask{tasks: tasks, loc: loc}
}

// Execute updates the task.
func (uc *UpdateTask) Execute(ctx context.Context, in UpdateTaskInput) (*UpdateTaskOutput, error) {
	if in.Title == nil && in.Description == nil && in.ClientID == nil && in.DueDate == nil &&
		in.Type == nil && in.Priority == nil && in.Completed == nil && in.EmailNotify == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	task, err := uc.tasks.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, domain.NewValidationError(MsgTaskFieldsRequired)
		}
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.ClientID != nil {
		if *in.ClientID == "" {
			return nil, domain.NewValidationError(MsgTaskFieldsRequired)
		}
		task.ClientID = *in.ClientID
	}
	if in.DueDate != nil {
		if _, ok := domain.ParseDueDate(*in.DueDate, uc.loc); !ok {
			return nil, domain.NewValidationError(MsgTaskDueInvalid)
		}
		task.DueDate = strings.TrimSpace(*in.DueDate)
	}
	if in.Type != nil {
		task.Type = *in.Type
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}
	if in.EmailNotify != nil {
		task.EmailNotify = *in.EmailNotify
	}
	if err := validateTaskEnums(task); err != nil {
		return nil, err
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &UpdateTaskOutput{Task: task}, nil
}
