// Package diff renders line-level unified diffs between grouping outputs,
// classifies them, and reads back the persisted diff bundles.
package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// HashLinePrefix marks the line of a grouping output that declares the hash.
const HashLinePrefix = "hash: "

// SplitLines splits text into lines that keep their trailing newline.
// A missing final newline is added, so "a\nb" and "a\nb\n" yield the same lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	last := len(lines) - 1
	if lines[last] == "" {
		return lines[:last]
	}
	lines[last] += "\n"
	return lines
}

// Unified returns the unified diff of a and b with no context lines, labelled
// with from and to. Identical inputs produce an empty result.
func Unified(a, b []string, from, to string) []string {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: from,
		ToFile:   to,
		Context:  0,
	})
	if err != nil {
		// difflib only fails when its writer does; a bytes.Buffer never does.
		return nil
	}
	return SplitLines(text)
}

// IsHashOnly reports whether the only changed lines of a diff are "hash: "
// lines. File headers ("---", "+++") and hunk headers are ignored.
func IsHashOnly(lines []string) bool {
	for _, line := range lines {
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "+") {
			continue
		}
		if strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++") {
			continue
		}
		if !strings.HasPrefix(strings.TrimSpace(line[1:]), HashLinePrefix) {
			return false
		}
	}
	return true
}
