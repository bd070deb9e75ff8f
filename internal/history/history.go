// Package history keeps an append-only JSONL log of comparison runs.
package history

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/groupdiff/groupdiff/internal/compare"
)

// Run is one invocation of compare across all selected configurations.
type Run struct {
	RunID     string         `json:"run_id"`
	Baseline  string         `json:"baseline"`
	Candidate string         `json:"candidate"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   time.Time      `json:"ended_at"`
	Configs   []ConfigResult `json:"configs"`
}

// ConfigResult is the per-configuration part of a Run.
type ConfigResult struct {
	Config          string `json:"config"`
	Events          int    `json:"events"`
	Diffs           int    `json:"diffs"`
	StructuralDiffs int    `json:"structural_diffs"`
	Splits          int    `json:"splits"`
	Merges          int    `json:"merges"`
	Renames         int    `json:"renames"`
	Missing         int    `json:"missing"`
	Bundle          string `json:"bundle,omitempty"`
	Error           string `json:"error,omitempty"`
}

// NewRun starts a run record with a fresh id.
func NewRun(baseline, candidate string) *Run {
	return &Run{
		RunID:     uuid.NewString(),
		Baseline:  baseline,
		Candidate: candidate,
		StartedAt: time.Now().UTC(),
	}
}

// Add appends the outcome of one configuration.
func (r *Run) Add(res compare.Result) {
	cr := ConfigResult{Config: res.Config, Bundle: res.BundlePath}
	if res.Err != nil {
		cr.Error = res.Err.Error()
	}
	if sum := res.Summary; sum != nil {
		cr.Events = sum.Events
		cr.Diffs = sum.TotalDiffs
		cr.StructuralDiffs = sum.StructuralDiffs
		cr.Splits = len(sum.Splits)
		cr.Merges = len(sum.Merges)
		cr.Renames = len(sum.Renames)
		cr.Missing = len(sum.Missing)
	}
	r.Configs = append(r.Configs, cr)
}

// Failed counts configurations that ended in an error.
func (r *Run) Failed() int {
	n := 0
	for _, c := range r.Configs {
		if c.Error != "" {
			n++
		}
	}
	return n
}

// Diffs sums the diffs over all configurations.
func (r *Run) Diffs() int {
	n := 0
	for _, c := range r.Configs {
		n += c.Diffs
	}
	return n
}

// RecordRun stamps the end time if unset and appends the run to path.
func RecordRun(path string, run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.EndedAt.IsZero() {
		run.EndedAt = time.Now().UTC()
	}
	if err := AppendRecord(path, run); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, most recent first. limit <= 0 means all.
func ListRuns(path string, limit int) ([]Run, error) {
	runs, err := ReadRecords[Run](path)
	if err != nil {
		return nil, fmt.Errorf("reading runs: %w", err)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// FormatRuns produces the human-readable run listing.
func FormatRuns(runs []Run) string {
	if len(runs) == 0 {
		return "No runs recorded.\n"
	}

	var b strings.Builder
	for _, r := range runs {
		fmt.Fprintf(&b, "%s  %s  %d configs  %d diffs",
			shortID(r.RunID), r.StartedAt.Local().Format("2006-01-02 15:04:05"), len(r.Configs), r.Diffs())
		if failed := r.Failed(); failed > 0 {
			fmt.Fprintf(&b, "  %d failed", failed)
		}
		b.WriteString("\n")
		for _, c := range r.Configs {
			if c.Error != "" {
				fmt.Fprintf(&b, "  %-32s  error: %s\n", c.Config, c.Error)
				continue
			}
			fmt.Fprintf(&b, "  %-32s  %d events  %d diffs  %d structural  %d splits  %d merges  %d renames\n",
				c.Config, c.Events, c.Diffs, c.StructuralDiffs, c.Splits, c.Merges, c.Renames)
		}
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
