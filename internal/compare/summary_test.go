package compare

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmptySession(t *testing.T) {
	sum := Summarize(NewSession(cfg))
	assert.Equal(t, cfg, sum.Config)
	assert.False(t, sum.HasDiffs())
	assert.Zero(t, sum.StructuralDiffs)
}

func TestSummarizeRenameRequiresHashGoneFromCandidate(t *testing.T) {
	s := NewSession(cfg)
	hashOnly := []string{"--- old\n", "+++ new\n", "@@ -1 +1 @@\n", "-hash: \"x\"\n", "+hash: \"y\"\n"}
	s.addDiff("d1", func() []string { return hashOnly })
	// x -> y for one event, but another event still produces x on the candidate side.
	s.record("A", "x", "A", "y")
	s.record("B", "w", "B", "x")

	sum := Summarize(s)
	// x is still a candidate hash, so only w -> x is a clean rename.
	assert.Equal(t, []Rename{{Old: "w", New: "x"}}, sum.Renames)
}

func TestSummarizeCountsStructuralDiffs(t *testing.T) {
	s := NewSession(cfg)
	s.addDiff("hash", func() []string {
		return []string{"--- old\n", "+++ new\n", "@@ -1 +1 @@\n", "-hash: \"x\"\n", "+hash: \"y\"\n"}
	})
	s.addDiff("tree", func() []string {
		return []string{"--- old\n", "+++ new\n", "@@ -3 +3 @@\n", "-  frame*\n", "+  frame\n"}
	})
	s.record("A", "x", "A", "y")

	sum := Summarize(s)
	assert.Equal(t, 2, sum.TotalDiffs)
	assert.Equal(t, 1, sum.StructuralDiffs)
}

func TestSummaryJSON(t *testing.T) {
	s := NewSession(cfg)
	s.addDiff("d", func() []string { return []string{"-hash: \"x\"\n", "+hash: \"y\"\n"} })
	s.record("A", "x", "A", "y")
	s.record("B", "x", "B", "z")

	data, err := Summarize(s).JSON()
	require.NoError(t, err)

	var parsed Summary
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, cfg, parsed.Config)
	assert.Equal(t, 2, parsed.Events)
	assert.Equal(t, []Mapping{{Hash: "x", Counterparts: []string{"y", "z"}}}, parsed.Splits)
}
