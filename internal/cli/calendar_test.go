package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/ics"
)

func TestCalendarDownload_All(t *testing.T) {
	// Setup
	c, st := newTestContainer(t)
	seedClient(st, "c1", "ana")
	seedTasks(st)
	st.Tasks.Tasks = append(st.Tasks.Tasks, &domain.Task{ID: "t4", Title: "Someday", ClientID: "c1", DueDate: "later"})

	// Execute
	out, err := execute(t, newCalendarCommand(c), "download")

	// Assert
	require.NoError(t, err)
	path := filepath.Join(c.Config.WorkDir, "clientive-tasks-2026-03-01.ics")
	assert.Equal(t, "Exported 3 tasks (1 without a due date skipped) to "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "BEGIN:VCALENDAR"))
	assert.Equal(t, 3, strings.Count(string(data), "BEGIN:VEVENT"))
}

func TestCalendarDownload_SingleTaskToStdout(t *testing.T) {
	c, st := newTestContainer(t)
	seedClient(st, "c1", "ana")
	seedTasks(st)

	out, err := execute(t, newCalendarCommand(c), "download", "t2", "--out", "-")

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "Call back")
}

func TestCalendarDownload_UndatedTask(t *testing.T) {
	c, st := newTestContainer(t)
	st.Tasks.Tasks = append(st.Tasks.Tasks, &domain.Task{ID: "t4", Title: "Someday", ClientID: "c1", DueDate: "later"})

	_, err := execute(t, newCalendarCommand(c), "download", "t4")

	assert.ErrorIs(t, err, domain.ErrNoDueDate)
}

func TestCalendarQuickAdd(t *testing.T) {
	c, st := newTestContainer(t)
	seedClient(st, "c1", "ana")
	seedTasks(st)

	out, err := execute(t, newCalendarCommand(c), "quick-add", "t2")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, ics.QuickAddBase))
	assert.Contains(t, out, "action=TEMPLATE")
	assert.Contains(t, out, "dates=20260301T150000Z/")
}

func TestCalendarFeedURL(t *testing.T) {
	tests := []struct {
		setup func(cfg *domain.Config)
		name  string
		want  string
	}{
		{
			name:  "public url",
			setup: func(cfg *domain.Config) { cfg.Server.PublicURL = "https://crm.example.com/" },
			want:  "https://crm.example.com/api/calendar?token=token-u1\n",
		},
		{
			name: "remote mode",
			setup: func(cfg *domain.Config) {
				cfg.Remote.URL = "http://localhost:8080"
				cfg.Remote.Token = "abc"
			},
			want: "http://localhost:8080/api/calendar?token=abc\n",
		},
		{
			name:  "no public url",
			setup: func(*domain.Config) {},
			want:  "No [server] public_url configured. Append this to your server URL:\n/api/calendar?token=token-u1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContainer(t)
			tt.setup(c.AppConfig)

			out, err := execute(t, newCalendarCommand(c), "feed-url")

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}
