package compare

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const otherCfg = "oldstyle:2022-06-01"

func allOptions(tr tree, out string, jobs int) Options {
	return Options{
		BaselineRoot:  tr.base,
		CandidateRoot: tr.cand,
		OutputDir:     out,
		Jobs:          jobs,
	}
}

func TestConfigurationsSortedAndFiltered(t *testing.T) {
	tr := newTree(t)
	tr.baseline(t, cfg, "A", "x")
	tr.baseline(t, otherCfg, "A", "x")
	require.NoError(t, os.WriteFile(filepath.Join(tr.base, "README"), []byte("not a config"), 0644))

	all, err := Configurations(tr.base, "")
	require.NoError(t, err)
	assert.Equal(t, []string{cfg, otherCfg}, all)

	filtered, err := Configurations(tr.base, "oldstyle")
	require.NoError(t, err)
	assert.Equal(t, []string{otherCfg}, filtered)
}

func TestCompareAllIsolatesFailures(t *testing.T) {
	tr := newTree(t)
	tr.baseline(t, cfg, "A", "x", "T1")
	tr.candidate(t, cfg, "A", "y", "T1")
	tr.baseline(t, otherCfg, "A", "x")
	writeFile(t, tr.cand, otherCfg, "A", "garbage without a hash line")

	out := t.TempDir()
	results, err := CompareAll(context.Background(), allOptions(tr, out, 2))
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, cfg, results[0].Config)
	require.NoError(t, results[0].Err)
	assert.Equal(t, []Rename{{Old: "x", New: "y"}}, results[0].Summary.Renames)
	assert.Equal(t, filepath.Join(out, BundleName(cfg)), results[0].BundlePath)
	assert.FileExists(t, results[0].BundlePath)

	assert.Equal(t, otherCfg, results[1].Config)
	var malformed *MalformedOutputError
	require.ErrorAs(t, results[1].Err, &malformed)
	assert.Nil(t, results[1].Summary)
	assert.NoFileExists(t, filepath.Join(out, BundleName(otherCfg)))

	assert.Equal(t, 1, Failed(results))
}

func TestCompareAllBundleOnlyWhenDiffs(t *testing.T) {
	tr := newTree(t)
	tr.baseline(t, cfg, "A", "x")
	tr.candidate(t, cfg, "A", "x")

	out := t.TempDir()
	stale := filepath.Join(out, BundleName(cfg))
	require.NoError(t, os.WriteFile(stale, []byte("old run"), 0644))

	results, err := CompareAll(context.Background(), allOptions(tr, out, 1))
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Empty(t, results[0].BundlePath)
	assert.False(t, results[0].Summary.HasDiffs())
	assert.NoFileExists(t, stale)
}

func TestCompareAllJobsDoNotChangeResults(t *testing.T) {
	tr := newTree(t)
	for _, c := range []string{"a", "b", "c", "d", "e"} {
		tr.baseline(t, c, "A", "x", "T1")
		tr.candidate(t, c, "A", "y", "T1")
		tr.baseline(t, c, "B", "x", "T1")
		tr.candidate(t, c, "B", "z", "T2")
	}

	serial, err := CompareAll(context.Background(), allOptions(tr, t.TempDir(), 1))
	require.NoError(t, err)
	parallel, err := CompareAll(context.Background(), allOptions(tr, t.TempDir(), 4))
	require.NoError(t, err)

	require.Len(t, parallel, len(serial))
	for i := range serial {
		assert.Equal(t, serial[i].Config, parallel[i].Config)
		assert.Equal(t, serial[i].Summary, parallel[i].Summary)
		assert.Equal(t, serial[i].Session.OrderedDiffs(), parallel[i].Session.OrderedDiffs())
	}
}

func TestCompareAllFilter(t *testing.T) {
	tr := newTree(t)
	tr.baseline(t, cfg, "A", "x")
	tr.candidate(t, cfg, "A", "y")
	tr.baseline(t, otherCfg, "A", "x")
	tr.candidate(t, otherCfg, "A", "y")

	opts := allOptions(tr, t.TempDir(), 1)
	opts.Filter = "newstyle"
	results, err := CompareAll(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, cfg, results[0].Config)
}

func TestCompareAllMissingBaselineRoot(t *testing.T) {
	opts := Options{
		BaselineRoot:  filepath.Join(t.TempDir(), "nope"),
		CandidateRoot: t.TempDir(),
		OutputDir:     t.TempDir(),
	}
	_, err := CompareAll(context.Background(), opts)
	assert.Error(t, err)
}

func TestCompareAllMissingCandidateConfig(t *testing.T) {
	tr := newTree(t)
	tr.baseline(t, cfg, "A", "x")

	results, err := CompareAll(context.Background(), allOptions(tr, t.TempDir(), 1))
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Len(t, results[0].Summary.Missing, 1)
}
