package compare

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// tree is a baseline/candidate pair of output roots in a temp dir.
type tree struct {
	base string
	cand string
}

func newTree(t *testing.T) tree {
	t.Helper()
	dir := t.TempDir()
	tr := tree{base: filepath.Join(dir, "baseline_outputs"), cand: filepath.Join(dir, "new_outputs")}
	require.NoError(t, os.MkdirAll(tr.base, 0755))
	require.NoError(t, os.MkdirAll(tr.cand, 0755))
	return tr
}

// q renders a hash the way the grouping harness does.
func q(hash string) string {
	if hash == NullHash {
		return NullHash
	}
	return strconv.Quote(hash)
}

// output renders a variant dump with a single app variant.
func output(hash string, tree ...string) string {
	lines := []string{"app:", "  hash: " + q(hash), "  component:"}
	for _, l := range tree {
		lines = append(lines, "    "+l)
	}
	return strings.Join(lines, "\n")
}

func writeFile(t *testing.T, root, config, event, content string) string {
	t.Helper()
	dir := filepath.Join(root, config)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, event+".txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (tr tree) baseline(t *testing.T, config, event, hash string, lines ...string) string {
	t.Helper()
	return writeFile(t, tr.base, config, event, output(hash, lines...))
}

func (tr tree) candidate(t *testing.T, config, event, hash string, lines ...string) string {
	t.Helper()
	return writeFile(t, tr.cand, config, event, output(hash, lines...))
}

func (tr tree) dirs(config string) (string, string) {
	return filepath.Join(tr.base, config), filepath.Join(tr.cand, config)
}

func renameExt(path, ext string) error {
	return os.Rename(path, strings.TrimSuffix(path, filepath.Ext(path))+ext)
}
