package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/clientive/clientive/internal/domain"
)

// Ensure taskRepo implements domain.TaskRepository.
var _ domain.TaskRepository = (*taskRepo)(nil)

type taskRepo struct {
	db    *DB
	owner string
}

const taskColumns = `id, title, description, client_id, due_date, type, priority, completed, email_notify`

func (r *taskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = ? ORDER BY due_date, id`, r.owner)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepo) Get(ctx context.Context, id string) (*domain.Task, error) {
	rows, err := r.db.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = ? AND id = ?`, r.owner, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanTask(rows)
}

func (r *taskRepo) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := r.db.exec(ctx,
		`INSERT INTO tasks (id, owner_id, client_id, title, description, due_date, type, priority, completed, email_notify)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, r.owner, t.ClientID, t.Title, t.Description, t.DueDate,
		string(t.Type), string(t.Priority), t.Completed, t.EmailNotify)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *taskRepo) Update(ctx context.Context, t *domain.Task) error {
	err := r.db.execOne(ctx, domain.ErrTaskNotFound,
		`UPDATE tasks SET client_id = ?, title = ?, description = ?, due_date = ?, type = ?, priority = ?,
		 completed = ?, email_notify = ? WHERE owner_id = ? AND id = ?`,
		t.ClientID, t.Title, t.Description, t.DueDate, string(t.Type), string(t.Priority),
		t.Completed, t.EmailNotify, r.owner, t.ID)
	if err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	err := r.db.execOne(ctx, domain.ErrTaskNotFound,
		`DELETE FROM tasks WHERE owner_id = ? AND id = ?`, r.owner, id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

func scanTask(rows *sql.Rows) (*domain.Task, error) {
	var (
		t        domain.Task
		taskType string
		priority string
	)
	if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.ClientID, &t.DueDate,
		&taskType, &priority, &t.Completed, &t.EmailNotify); err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.Type = domain.TaskType(taskType)
	t.Priority = domain.Priority(priority)
	return &t, nil
}
