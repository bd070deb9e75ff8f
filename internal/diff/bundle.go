package diff

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// BundleEntry is one diff read back from a variants.<config>.diff bundle.
type BundleEntry struct {
	OldName  string
	NewName  string
	Added    int
	Removed  int
	HashOnly bool
}

// ReadBundle parses the bundle file at path.
func ReadBundle(path string) ([]BundleEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bundle: %w", err)
	}
	return ParseBundle(data)
}

// ParseBundle parses a bundle: unified diffs separated by blank lines.
// Diff lines always carry a marker, so a blank line only ever separates diffs.
func ParseBundle(data []byte) ([]BundleEntry, error) {
	var entries []BundleEntry
	for i, block := range splitBlocks(data) {
		fd, err := godiff.ParseFileDiff(block)
		if err != nil {
			return nil, fmt.Errorf("parsing diff %d: %w", i+1, err)
		}

		entry := BundleEntry{OldName: fd.OrigName, NewName: fd.NewName}
		var changed []string
		for _, h := range fd.Hunks {
			for _, line := range SplitLines(string(h.Body)) {
				switch line[0] {
				case '+':
					entry.Added++
				case '-':
					entry.Removed++
				default:
					continue
				}
				changed = append(changed, line)
			}
		}
		entry.HashOnly = IsHashOnly(changed)
		entries = append(entries, entry)
	}
	return entries, nil
}

func splitBlocks(data []byte) [][]byte {
	var blocks [][]byte
	var cur []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(line) == 0 {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line...)
		cur = append(cur, '\n')
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

// FormatBundle produces the human-readable listing for a parsed bundle.
func FormatBundle(entries []BundleEntry) string {
	if len(entries) == 0 {
		return "No differences found.\n"
	}

	var b strings.Builder
	structural := 0
	for _, e := range entries {
		kind := "hash-only"
		if !e.HashOnly {
			kind = "structural"
			structural++
		}
		fmt.Fprintf(&b, "%s -> %s  +%d -%d  %s\n", e.OldName, e.NewName, e.Added, e.Removed, kind)
	}
	fmt.Fprintf(&b, "\n%d diffs, %d structural\n", len(entries), structural)
	return b.String()
}
