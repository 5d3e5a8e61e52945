// # internal/report/report.go
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/phantomcyber/soar-app-linter/internal/lint"
)

// Options control rendering and the exit-code policy. Severity thresholds
// and allow-lists are reporting decisions; the engine emits everything.
type Options struct {
	Format string
	FailOn lint.Severity
	// Diagnostic codes excluded from output and from the exit status.
	AllowedCodes []string
	Color        bool
}

// FileResult pairs a linted file with its ordered diagnostics.
type FileResult struct {
	Path        string
	Diagnostics []lint.Diagnostic
}

type Reporter struct {
	opts    Options
	allowed map[string]struct{}
}

func New(opts Options) *Reporter {
	allowed := make(map[string]struct{}, len(opts.AllowedCodes))
	for _, code := range opts.AllowedCodes {
		allowed[code] = struct{}{}
	}
	return &Reporter{opts: opts, allowed: allowed}
}

// Filter drops allow-listed diagnostics, preserving order and
// multiplicity of the rest.
func (r *Reporter) Filter(diags []lint.Diagnostic) []lint.Diagnostic {
	if len(r.allowed) == 0 {
		return diags
	}
	out := make([]lint.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if _, ok := r.allowed[d.Code]; ok {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Render writes the results in the configured format.
func (r *Reporter) Render(w io.Writer, results []FileResult) error {
	switch r.opts.Format {
	case "json":
		return r.renderJSON(w, results)
	case "sarif":
		return r.renderSARIF(w, results)
	default:
		return r.renderText(w, results)
	}
}

// ExitCode is zero only if no reported diagnostic is at or above the
// configured severity.
func (r *Reporter) ExitCode(results []FileResult) int {
	for _, res := range results {
		for _, d := range res.Diagnostics {
			if d.Severity() >= r.opts.FailOn {
				return 1
			}
		}
	}
	return 0
}

var severityStyles = map[lint.Severity]lipgloss.Style{
	lint.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	lint.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	lint.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

func (r *Reporter) renderText(w io.Writer, results []FileResult) error {
	total := 0
	for _, res := range results {
		if len(res.Diagnostics) == 0 {
			continue
		}
		fmt.Fprintf(w, "************* %s\n", res.Path)
		for _, d := range res.Diagnostics {
			id := d.Message().ID
			if r.opts.Color {
				id = severityStyles[d.Severity()].Render(id)
			}
			fmt.Fprintf(w, "%s:%d:%d: %s: %s (%s)\n",
				d.Location.File, d.Location.Line, d.Location.Column,
				id, d.Render(), d.Code)
			total++
		}
	}
	if total == 0 {
		fmt.Fprintln(w, "No issues found.")
	} else {
		fmt.Fprintf(w, "\nFound %d issue(s).\n", total)
	}
	return nil
}

type jsonDiagnostic struct {
	Type      string `json:"type"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Message   string `json:"message"`
	Symbol    string `json:"symbol"`
	MessageID string `json:"message-id"`
}

func (r *Reporter) renderJSON(w io.Writer, results []FileResult) error {
	out := make([]jsonDiagnostic, 0)
	for _, res := range results {
		for _, d := range res.Diagnostics {
			out = append(out, jsonDiagnostic{
				Type:      d.Severity().String(),
				Path:      d.Location.File,
				Line:      d.Location.Line,
				Column:    d.Location.Column,
				Message:   d.Render(),
				Symbol:    d.Code,
				MessageID: d.Message().ID,
			})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
