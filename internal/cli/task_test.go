package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/testutil"
)

func seedTasks(st *testutil.MockStore) {
	st.Tasks.Tasks = append(st.Tasks.Tasks,
		&domain.Task{ID: "t1", Title: "Send quote", ClientID: "c1", DueDate: "2026-02-20", Type: domain.TaskEmail, Priority: domain.PriorityHigh},
		&domain.Task{ID: "t2", Title: "Call back", ClientID: "c1", DueDate: "2026-03-01T15:00", Type: domain.TaskCall, Priority: domain.PriorityMedium},
		&domain.Task{ID: "t3", Title: "Old demo", ClientID: "c9", DueDate: "2026-01-10", Type: domain.TaskMeeting, Priority: domain.PriorityLow, Completed: true},
	)
}

func TestTaskAdd(t *testing.T) {
	// Setup
	c, st := newTestContainer(t)

	// Execute
	out, err := execute(t, newTaskCommand(c),
		"add", "--title", "Call about renewal", "--client", "c1", "--due", "2026-03-02T09:30", "--type", "call", "--notify")

	// Assert
	require.NoError(t, err)
	require.Len(t, st.Tasks.Tasks, 1)
	task := st.Tasks.Tasks[0]
	assert.Equal(t, "Call about renewal", task.Title)
	assert.Equal(t, "2026-03-02T09:30", task.DueDate)
	assert.Equal(t, domain.TaskCall, task.Type)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.True(t, task.EmailNotify)
	assert.Equal(t, "Created task "+task.ID+"\n", out)
}

func TestTaskAdd_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing client", args: []string{"add", "--title", "x", "--due", "2026-03-02"}},
		{name: "missing due", args: []string{"add", "--title", "x", "--client", "c1"}},
		{name: "bad due", args: []string{"add", "--title", "x", "--client", "c1", "--due", "soon"}},
		{name: "bad priority", args: []string{"add", "--title", "x", "--client", "c1", "--due", "2026-03-02", "--priority", "urgent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, st := newTestContainer(t)

			_, err := execute(t, newTaskCommand(c), tt.args...)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, st.Tasks.Tasks)
		})
	}
}

func TestTaskList_Buckets(t *testing.T) {
	// Setup
	c, st := newTestContainer(t)
	seedClient(st, "c1", "ana")
	seedTasks(st)

	// Execute
	out, err := execute(t, newTaskCommand(c), "list")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "WHEN")
	assert.Regexp(t, `t1\s+overdue\s+2026-02-20 00:00\s+email\s+high\s+ana\s+Send quote`, out)
	assert.Regexp(t, `t2\s+today\s+2026-03-01 15:00\s+call`, out)
	assert.Regexp(t, `t3\s+done`, out)
	assert.Less(t, strings.Index(out, "t1"), strings.Index(out, "t2"))
	assert.Less(t, strings.Index(out, "t2"), strings.Index(out, "t3"))
}

func TestTaskList_PendingJSON(t *testing.T) {
	c, st := newTestContainer(t)
	seedTasks(st)

	out, err := execute(t, newTaskCommand(c), "list", "--pending", "-o", "json")

	require.NoError(t, err)
	var got []domain.Task
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "t2", got[1].ID)
}

func TestTaskUpdate(t *testing.T) {
	// Setup
	c, st := newTestContainer(t)
	seedTasks(st)

	// Execute
	out, err := execute(t, newTaskCommand(c), "update", "t1", "--due", "2026-03-09", "--priority", "low")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Updated task t1\n", out)
	task := st.Tasks.Tasks[0]
	assert.Equal(t, "2026-03-09", task.DueDate)
	assert.Equal(t, domain.PriorityLow, task.Priority)
	assert.Equal(t, "Send quote", task.Title)
}

func TestTaskUpdate_NotFound(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := execute(t, newTaskCommand(c), "update", "t404", "--title", "x")

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskDone(t *testing.T) {
	c, st := newTestContainer(t)
	seedTasks(st)

	_, err := execute(t, newTaskCommand(c), "done", "t2")

	require.NoError(t, err)
	assert.True(t, st.Tasks.Tasks[1].Completed)
}

func TestTaskDelete(t *testing.T) {
	c, st := newTestContainer(t)
	seedTasks(st)

	out, err := execute(t, newTaskCommand(c), "rm", "t3")

	require.NoError(t, err)
	assert.Equal(t, "Deleted task t3\n", out)
	assert.Len(t, st.Tasks.Tasks, 2)
}
