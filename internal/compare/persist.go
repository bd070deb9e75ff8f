package compare

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/groupdiff/groupdiff/internal/store"
)

// BundleName is the file name of a configuration's persisted diffs.
func BundleName(config string) string {
	return "variants." + config + ".diff"
}

// Persist writes every stored diff to path, each followed by a blank line.
// A session without diffs removes any stale file at path instead.
func Persist(s *Session, path string) error {
	if len(s.keys) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing stale %s: %w", path, err)
		}
		return nil
	}

	var b strings.Builder
	for _, lines := range s.OrderedDiffs() {
		for _, line := range lines {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return store.WriteFileAtomic(path, []byte(b.String()), 0644)
}
