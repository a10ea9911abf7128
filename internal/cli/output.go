package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/clientive/clientive/internal/domain"
)

// Output formats accepted by --output.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// addOutputFlag registers --output/-o on cmd.
func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", formatTable, "Output format: table, json or yaml")
}

// validateFormat rejects unknown --output values.
func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml): %w", format, domain.ErrInvalidInput)
	}
}

// printStructured writes v as JSON or YAML. It returns false for the table
// format so the caller can render its own view.
func printStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

// ErrorMessage renders err for the terminal. Validation messages are shown
// as written; remote failures get the friendly wording.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return "Error: " + ve.Message
	}
	var se *domain.StatusError
	if errors.As(err, &se) || errors.Is(err, domain.ErrUnavailable) ||
		errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrRateLimited) {
		return "Error: " + domain.FriendlyError(err)
	}
	return "Error: " + err.Error()
}

// parseDateFlag reads a date or date-time flag. Zone-less values use loc.
func parseDateFlag(name, value string, loc *time.Location) (time.Time, error) {
	t, ok := domain.ParseDueDate(value, loc)
	if !ok {
		return time.Time{}, domain.NewValidationError(fmt.Sprintf("--%s: %q is not a date (use YYYY-MM-DD or YYYY-MM-DDTHH:MM)", name, value))
	}
	return t, nil
}

func formatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(loc).Format("2006-01-02 15:04")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
