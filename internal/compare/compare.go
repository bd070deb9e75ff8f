// Package compare diffs grouping outputs produced on a baseline and a
// candidate revision and summarizes how grouping hashes moved between them.
package compare

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/groupdiff/groupdiff/internal/diff"
	"github.com/groupdiff/groupdiff/internal/logging"
	"github.com/groupdiff/groupdiff/internal/store"
)

const outputExt = ".txt"

// Compare walks every .txt file under baselineDir, pairs it with the file at
// the same relative path under candidateDir and fills a new Session.
//
// A missing candidate file is logged, recorded in Session.Missing and
// skipped. An output without a usable hash line aborts the comparison with a
// *MalformedOutputError.
func Compare(ctx context.Context, baselineDir, candidateDir string, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	files, err := listOutputs(baselineDir)
	if err != nil {
		return nil, err
	}

	s := NewSession(filepath.Base(baselineDir))
	for _, oldPath := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel, err := filepath.Rel(baselineDir, oldPath)
		if err != nil {
			return nil, fmt.Errorf("relativizing %s: %w", oldPath, err)
		}
		newPath := filepath.Join(candidateDir, rel)

		if _, err := os.Stat(newPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("missing new output file", "path", newPath)
				s.Missing = append(s.Missing, newPath)
				continue
			}
			return nil, fmt.Errorf("checking %s: %w", newPath, err)
		}

		if err := s.comparePair(oldPath, newPath, logger); err != nil {
			return nil, err
		}
	}

	logger.Debug("comparison finished", "events", s.Events, "diffs", len(s.keys), "missing", len(s.Missing))
	return s, nil
}

func (s *Session) comparePair(oldPath, newPath string, logger *log.Logger) error {
	oldLines, err := readLines(oldPath)
	if err != nil {
		return err
	}
	newLines, err := readLines(newPath)
	if err != nil {
		return err
	}

	if generic := diff.Unified(oldLines, newLines, "old", "new"); len(generic) > 0 {
		key := store.HashContent([]byte(strings.Join(generic, "")))
		added := s.addDiff(key, func() []string {
			return diff.Unified(oldLines, newLines, oldPath, newPath)
		})
		if added {
			logger.Debug("new diff", "key", store.ShortHash(key, 12), "event", eventID(oldPath))
		}
	}

	oldHash, err := findHashIn(oldPath, oldLines)
	if err != nil {
		return err
	}
	newHash, err := findHashIn(newPath, newLines)
	if err != nil {
		return err
	}

	s.record(eventID(oldPath), oldHash, eventID(newPath), newHash)
	return nil
}

func findHashIn(path string, lines []string) (string, error) {
	h, err := FindHash(lines)
	if err != nil {
		var me *MalformedOutputError
		if errors.As(err, &me) {
			me.Path = path
		}
		return "", err
	}
	return h, nil
}

func listOutputs(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), outputExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing outputs in %s: %w", dir, err)
	}
	return files, nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return diff.SplitLines(string(data)), nil
}

// eventID is the file stem: the event id the harness named the output after.
func eventID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), outputExt)
}
