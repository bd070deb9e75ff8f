package compare

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/groupdiff/groupdiff/internal/logging"
)

// Options configures CompareAll.
type Options struct {
	BaselineRoot  string
	CandidateRoot string
	OutputDir     string

	// Filter keeps only configurations whose name contains it.
	Filter string

	// Jobs bounds how many configurations are compared at once.
	Jobs int

	Logger *log.Logger
}

// Result is the outcome for one configuration. Err is set when the
// configuration could not be compared; the other configurations still run.
type Result struct {
	Config     string
	Session    *Session
	Summary    *Summary
	BundlePath string
	Err        error
}

// Configurations lists the configuration directories under root, sorted.
func Configurations(root, filter string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading baseline outputs: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if filter != "" && !strings.Contains(e.Name(), filter) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CompareAll runs Compare, Summarize and Persist for every configuration
// under the baseline root. Results come back in configuration order no
// matter how many run concurrently.
func CompareAll(ctx context.Context, opts Options) ([]Result, error) {
	configs, err := Configurations(opts.BaselineRoot, opts.Filter)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	results := make([]Result, len(configs))
	var g errgroup.Group
	g.SetLimit(max(opts.Jobs, 1))
	for i, name := range configs {
		g.Go(func() error {
			results[i] = runConfig(ctx, opts, name, logger.With("config", name))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runConfig(ctx context.Context, opts Options, name string, logger *log.Logger) Result {
	res := Result{Config: name}
	logger.Info("comparing outputs")

	session, err := Compare(ctx,
		filepath.Join(opts.BaselineRoot, name),
		filepath.Join(opts.CandidateRoot, name),
		logger,
	)
	if err != nil {
		logger.Error("comparison failed", "err", err)
		res.Err = err
		return res
	}
	res.Session = session
	res.Summary = Summarize(session)

	path := filepath.Join(opts.OutputDir, BundleName(name))
	if err := Persist(session, path); err != nil {
		res.Err = fmt.Errorf("saving diffs: %w", err)
		return res
	}
	if res.Summary.HasDiffs() {
		res.BundlePath = path
	}
	return res
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
