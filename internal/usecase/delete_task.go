package usecase

import (
	"context"
	"fmt"

	"github.com/clientive/clientive/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	ID string
}

// DeleteTask removes a task.
type DeleteTask struct {
	tasks domain.TaskRepository
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository) *DeleteTask {
	return &DeleteTask{tasks: tasks}
}

// Execute deletes the task.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) error {
	if err := uc.tasks.Delete(ctx, in.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
