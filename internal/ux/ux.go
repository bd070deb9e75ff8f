// Package ux renders comparison results for the terminal.
package ux

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/groupdiff/groupdiff/internal/compare"
)

var (
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorInfo    = lipgloss.Color("#20B9B4")
)

// Styles holds the styles used for one rendering. The zero value renders
// plain text.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles returns coloured styles, or plain ones when color is false.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{Title: plain, Success: plain, Warning: plain, Error: plain, Info: plain}
	}
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Error:   lipgloss.NewStyle().Foreground(ColorError),
		Info:    lipgloss.NewStyle().Foreground(ColorInfo),
	}
}

// ColorEnabled reports whether f is a terminal and NO_COLOR is unset.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// RenderSummary renders the console report for one configuration.
// bundlePath is mentioned only when the summary has diffs.
func RenderSummary(sum *compare.Summary, bundlePath string, color bool) string {
	st := NewStyles(color)
	var b strings.Builder
	line := func(style lipgloss.Style, format string, args ...any) {
		b.WriteString(style.Render(fmt.Sprintf(format, args...)))
		b.WriteString("\n")
	}

	line(st.Title, "Summary for %s:", sum.Config)
	for _, p := range sum.Missing {
		line(st.Warning, "Missing new output file %s", p)
	}

	if !sum.HasDiffs() {
		line(st.Success, "No differences found!")
		return b.String()
	}

	line(st.Warning, "Total diffs: %d", sum.TotalDiffs)
	if sum.StructuralDiffs > 0 {
		line(st.Error, "Total non-hash diffs: %d", sum.StructuralDiffs)
	}
	for _, m := range sum.Splits {
		line(st.Error, "Old hash %s maps to multiple new hashes: %s", m.Hash, strings.Join(m.Counterparts, ", "))
	}
	for _, m := range sum.Merges {
		line(st.Error, "New hash %s maps to multiple old hashes: %s", m.Hash, strings.Join(m.Counterparts, ", "))
	}
	if len(sum.Renames) > 0 {
		line(st.Warning, "Old hashes that map to exactly one new hash: %d", len(sum.Renames))
		for _, r := range sum.Renames {
			line(st.Warning, " - %s -> %s", r.Old, r.New)
		}
	}
	if bundlePath != "" {
		line(st.Info, "Differences saved to %s", bundlePath)
	}
	return b.String()
}

// RenderResult renders a CompareAll result, including failed configurations.
func RenderResult(res compare.Result, color bool) string {
	if res.Err != nil {
		st := NewStyles(color)
		return st.Title.Render(fmt.Sprintf("Summary for %s:", res.Config)) + "\n" +
			st.Error.Render(fmt.Sprintf("Comparison failed: %v", res.Err)) + "\n"
	}
	return RenderSummary(res.Summary, res.BundlePath, color)
}
