// Package importer is the interactive client import wizard. It walks an
// ImportSession through upload, preview, importing and complete, submitting
// one row per command so progress renders between rows.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/usecase"
)

// previewLimit caps the rows listed on the preview screen.
const previewLimit = 10

// Options configures the wizard.
type Options struct {
	Importer *usecase.ImportClients
	Preview  *usecase.PreviewImport
	// ReadFile defaults to os.ReadFile.
	ReadFile   func(path string) ([]byte, error)
	FilePath   string // Skips the upload prompt when set
	Dialect    domain.Dialect
	HasHeaders bool
}

// Summary is what the wizard did, captured before the session is reset.
type Summary struct {
	Failures  []usecase.ImportFailure
	FileName  string
	Attempted int
	Succeeded int
	Failed    int
	Cancelled bool
}

// Model is the import wizard model.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Dependencies
	ctx  context.Context
	opts Options

	// State
	session  *domain.ImportSession
	preview  *usecase.PreviewImportOutput
	queue    []domain.ImportRow
	failures []usecase.ImportFailure
	err      error
	summary  Summary

	// Components
	keys   KeyMap
	styles Styles
	path   textinput.Model
	bar    progress.Model

	// Numeric state
	width int

	// Boolean state
	loading    bool
	cancelling bool
	done       bool
}

// New creates a wizard over a fresh session.
func New(ctx context.Context, opts Options) *Model {
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}
	if opts.Preview == nil {
		opts.Preview = usecase.NewPreviewImport()
	}

	ti := textinput.New()
	ti.Placeholder = "clients.csv"
	ti.CharLimit = 500
	ti.Focus()

	return &Model{
		ctx:     ctx,
		opts:    opts,
		session: domain.NewImportSession(),
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		path:    ti,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		loading: opts.FilePath != "",
	}
}

// Session exposes the underlying session.
func (m *Model) Session() *domain.ImportSession {
	return m.session
}

// Summary returns the outcome of the last import.
func (m *Model) Summary() Summary {
	return m.summary
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	if m.opts.FilePath != "" {
		return m.loadFile(m.opts.FilePath)
	}
	return textinput.Blink
}

// loadFile reads and previews a file.
func (m *Model) loadFile(path string) tea.Cmd {
	ctx, opts := m.ctx, m.opts
	return func() tea.Msg {
		name := filepath.Base(path)
		data, err := opts.ReadFile(path)
		if err != nil {
			return MsgFileLoaded{FileName: name, Err: err}
		}
		out, err := opts.Preview.Execute(ctx, usecase.PreviewImportInput{
			FileName:   name,
			Content:    string(data),
			Dialect:    opts.Dialect,
			HasHeaders: opts.HasHeaders,
		})
		return MsgFileLoaded{FileName: name, Preview: out, Err: err}
	}
}

// submit sends one row. The session is only touched in Update.
func (m *Model) submit(row domain.ImportRow) tea.Cmd {
	ctx, importer := m.ctx, m.opts.Importer
	return func() tea.Msg {
		return MsgRowImported{Row: row.Row, Err: importer.Submit(ctx, row)}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width-10, 10), 60)
		return m, nil

	case MsgFileLoaded:
		return m.handleFileLoaded(msg)

	case MsgRowImported:
		return m.handleRowImported(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.session.Step == domain.StepUpload {
		var cmd tea.Cmd
		m.path, cmd = m.path.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleFileLoaded(msg MsgFileLoaded) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}
	if err := m.session.Load(msg.FileName, msg.Preview.Rows); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.preview = msg.Preview
	m.path.Blur()
	return m, nil
}

func (m *Model) handleRowImported(msg MsgRowImported) (tea.Model, tea.Cmd) {
	if err := m.session.Record(msg.Err == nil); err != nil {
		m.err = err
		return m, m.quit()
	}
	var rowErr usecase.RowError
	if errors.As(msg.Err, &rowErr) {
		m.failures = append(m.failures, usecase.ImportFailure{Row: rowErr.Row, Err: rowErr.Err})
	}
	if len(m.queue) > 0 {
		m.queue = m.queue[1:]
	}

	if m.session.Step == domain.StepComplete {
		m.capture(false)
		return m, nil
	}
	if m.cancelling || len(m.queue) == 0 {
		m.capture(true)
		return m, m.quit()
	}
	return m, m.submit(m.queue[0])
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		if m.session.Step == domain.StepImporting {
			m.cancelling = true
			return m, nil
		}
		return m, m.quit()
	}

	switch m.session.Step {
	case domain.StepUpload:
		switch msg.Type { //nolint:exhaustive // other keys go to the input
		case tea.KeyEnter:
			path := strings.TrimSpace(m.path.Value())
			if path == "" || m.loading {
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, m.loadFile(path)
		case tea.KeyEsc:
			return m, m.quit()
		}
		var cmd tea.Cmd
		m.path, cmd = m.path.Update(msg)
		return m, cmd

	case domain.StepPreview:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return m, m.start()
		case key.Matches(msg, m.keys.Back):
			_ = m.session.Back()
			m.preview = nil
			m.err = nil
			m.path.Focus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		}

	case domain.StepImporting:
		if key.Matches(msg, m.keys.Quit) {
			m.cancelling = true
		}

	case domain.StepComplete:
		switch {
		case key.Matches(msg, m.keys.Again):
			m.session.Reset()
			m.preview = nil
			m.failures = nil
			m.path.Reset()
			m.path.Focus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		}
	}
	return m, nil
}

// start begins importing the valid rows.
func (m *Model) start() tea.Cmd {
	rows, err := m.session.Begin()
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.queue = rows
	m.failures = nil
	return m.submit(rows[0])
}

// capture snapshots the session into the summary.
func (m *Model) capture(cancelled bool) {
	m.summary = Summary{
		FileName:  m.session.FileName,
		Attempted: m.session.Attempted,
		Succeeded: m.session.Succeeded,
		Failed:    m.session.Failed,
		Failures:  append([]usecase.ImportFailure(nil), m.failures...),
		Cancelled: cancelled,
	}
}

// quit resets the session and exits.
func (m *Model) quit() tea.Cmd {
	m.session.Reset()
	m.done = true
	return tea.Quit
}

// View renders the wizard.
func (m *Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Import clients") + "\n")
	b.WriteString(m.styles.Step.Render(m.viewSteps()) + "\n")

	switch m.session.Step {
	case domain.StepUpload:
		b.WriteString(m.viewUpload())
	case domain.StepPreview:
		b.WriteString(m.viewPreview())
	case domain.StepImporting:
		b.WriteString(m.viewImporting())
	case domain.StepComplete:
		b.WriteString(m.viewComplete())
	}

	if m.err != nil {
		b.WriteString("\n" + m.styles.Error.Render("Error: "+m.err.Error()) + "\n")
	}
	return m.styles.App.Render(b.String())
}

func (m *Model) viewSteps() string {
	steps := []domain.ImportStep{domain.StepUpload, domain.StepPreview, domain.StepImporting, domain.StepComplete}
	parts := make([]string, len(steps))
	for i, s := range steps {
		if s == m.session.Step {
			parts[i] = "[" + s.Display() + "]"
		} else {
			parts[i] = s.Display()
		}
	}
	return strings.Join(parts, " › ")
}

func (m *Model) viewUpload() string {
	var b strings.Builder
	b.WriteString("File to import (.csv, .tsv, .xls, .xlsx):\n")
	b.WriteString(m.path.View() + "\n")
	if m.loading {
		b.WriteString(m.styles.Warning.Render("Reading file...") + "\n")
	}
	b.WriteString(m.styles.Help.Render("enter: preview • esc: quit"))
	return b.String()
}

func (m *Model) viewPreview() string {
	var b strings.Builder
	p := m.preview
	fmt.Fprintf(&b, "%s (%s): %d valid, %d with errors\n", m.session.FileName, p.Dialect, p.Valid, p.Invalid)
	if len(p.MissingColumns) > 0 {
		b.WriteString(m.styles.Warning.Render("Missing columns: "+strings.Join(p.MissingColumns, ", ")) + "\n")
	}
	b.WriteString("\n")

	for i, row := range m.session.Rows {
		if i == previewLimit {
			fmt.Fprintf(&b, "... and %d more rows\n", len(m.session.Rows)-previewLimit)
			break
		}
		b.WriteString(m.viewRow(row) + "\n")
	}

	help := "enter: import • esc/b: choose another file • q: quit"
	if p.Valid == 0 {
		help = "nothing to import • esc/b: choose another file • q: quit"
	}
	b.WriteString(m.styles.Help.Render(help))
	return b.String()
}

func (m *Model) viewRow(row domain.ImportRow) string {
	label := fmt.Sprintf("row %-4d %s <%s>", row.Row, row.Draft.Name, row.Draft.Email)
	if row.Valid() {
		return m.styles.Row.Render("  " + label)
	}
	return m.styles.RowError.Render("✗ " + label + ": " + strings.Join(row.Errors, "; "))
}

func (m *Model) viewImporting() string {
	var b strings.Builder
	b.WriteString(m.bar.ViewAs(m.session.Progress()) + "\n\n")
	fmt.Fprintf(&b, "%d of %d rows attempted (%d failed)\n", m.session.Attempted, m.session.Total, m.session.Failed)
	if m.cancelling {
		b.WriteString(m.styles.Warning.Render("Cancelling after the current row...") + "\n")
	}
	b.WriteString(m.styles.Help.Render("q/ctrl+c: cancel"))
	return b.String()
}

func (m *Model) viewComplete() string {
	var b strings.Builder
	b.WriteString(m.styles.Success.Render(fmt.Sprintf("Imported %d of %d clients", m.session.Succeeded, m.session.Total)) + "\n")
	for _, f := range m.failures {
		b.WriteString(m.styles.RowError.Render(fmt.Sprintf("✗ row %d: %v", f.Row, f.Err)) + "\n")
	}
	b.WriteString(m.styles.Help.Render("enter/q: close • n: import another file"))
	return b.String()
}

// Run starts the wizard on the terminal and returns its summary.
func Run(ctx context.Context, opts Options) (Summary, error) {
	m := New(ctx, opts)
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return Summary{}, err
	}
	return m.Summary(), nil
}
