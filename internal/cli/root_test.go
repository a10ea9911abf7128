package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientive/clientive/internal/testutil"
)

func TestNewRootCommand_NoArgs_ShowsHelp(t *testing.T) {
	// Create root command with nil container (not used in this test)
	root := NewRootCommand(nil, "test-version")

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{})
	err := root.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Setup Commands:")
	assert.Contains(t, out, "Records:")
	assert.Contains(t, out, "Import, Export & Calendar:")
	assert.Contains(t, out, "Server:")
	assert.Contains(t, out, "client")
	assert.Contains(t, out, "serve")
}

func TestNewRootCommand_Version(t *testing.T) {
	root := NewRootCommand(nil, "test-version")

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})
	err := root.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "test-version")
}

func TestNewRootCommand_SubcommandsHaveGroups(t *testing.T) {
	root := NewRootCommand(nil, "test-version")

	for _, cmd := range root.Commands() {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			continue
		}
		assert.NotEmpty(t, cmd.GroupID, "command %q has no group", cmd.Name())
	}
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)
	loader := testutil.NewMockConfigLoader()
	loader.Config.Warnings = []string{"unknown key \"colour\" in [calendar]"}
	c.ConfigLoader = loader

	root := NewRootCommand(c, "test-version")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"client", "list"})

	// Execute
	err := root.Execute()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "Warning: unknown key \"colour\" in [calendar]")
	assert.Contains(t, stdout.String(), "No clients found.")
}
