package compare

import (
	"sort"
)

// Session is the working state of one configuration's comparison.
// It is filled by a single pass in Compare and read-only afterwards.
type Session struct {
	Config string

	// Diffs maps the content hash of a generic-labelled diff to the
	// path-labelled rendering first seen for it.
	Diffs map[string][]string
	keys  []string

	// OldHashes and NewHashes map a grouping hash to the event ids that
	// produced it on the baseline and candidate side.
	OldHashes map[string][]string
	NewHashes map[string][]string

	HashMapOldNew map[string]map[string]struct{}
	HashMapNewOld map[string]map[string]struct{}

	// Missing lists candidate files that did not exist.
	Missing []string

	// Events counts the pairs that were actually compared.
	Events int
}

// NewSession returns an empty session for the named configuration.
func NewSession(config string) *Session {
	return &Session{
		Config:        config,
		Diffs:         make(map[string][]string),
		OldHashes:     make(map[string][]string),
		NewHashes:     make(map[string][]string),
		HashMapOldNew: make(map[string]map[string]struct{}),
		HashMapNewOld: make(map[string]map[string]struct{}),
	}
}

// addDiff stores render() under key unless key was seen before.
// render is only called for new keys.
func (s *Session) addDiff(key string, render func() []string) bool {
	if _, ok := s.Diffs[key]; ok {
		return false
	}
	s.Diffs[key] = render()
	s.keys = append(s.keys, key)
	return true
}

func (s *Session) record(oldEvent, oldHash, newEvent, newHash string) {
	s.Events++
	s.OldHashes[oldHash] = append(s.OldHashes[oldHash], oldEvent)
	s.NewHashes[newHash] = append(s.NewHashes[newHash], newEvent)
	addToSet(s.HashMapOldNew, oldHash, newHash)
	addToSet(s.HashMapNewOld, newHash, oldHash)
}

func addToSet(m map[string]map[string]struct{}, key, value string) {
	set, ok := m[key]
	if !ok {
		set = make(map[string]struct{})
		m[key] = set
	}
	set[value] = struct{}{}
}

// DiffKeys returns the diff keys in the order they were first seen.
func (s *Session) DiffKeys() []string {
	return append([]string(nil), s.keys...)
}

// OrderedDiffs returns the stored diffs in first-seen order.
func (s *Session) OrderedDiffs() [][]string {
	out := make([][]string, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.Diffs[k])
	}
	return out
}

// NewFor returns the sorted candidate hashes paired with a baseline hash.
func (s *Session) NewFor(oldHash string) []string {
	return sortedSet(s.HashMapOldNew[oldHash])
}

// OldFor returns the sorted baseline hashes paired with a candidate hash.
func (s *Session) OldFor(newHash string) []string {
	return sortedSet(s.HashMapNewOld[newHash])
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
