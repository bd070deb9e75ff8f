package compare

import (
	"encoding/json"

	"github.com/groupdiff/groupdiff/internal/diff"
)

// Mapping pairs a hash with the several hashes it maps to on the other side.
type Mapping struct {
	Hash         string   `json:"hash"`
	Counterparts []string `json:"counterparts"`
}

// Rename is a baseline hash that now maps cleanly to one different hash.
type Rename struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// Summary is the regression report for one configuration.
type Summary struct {
	Config          string    `json:"config"`
	Events          int       `json:"events"`
	TotalDiffs      int       `json:"total_diffs"`
	StructuralDiffs int       `json:"structural_diffs"`
	Splits          []Mapping `json:"splits,omitempty"`
	Merges          []Mapping `json:"merges,omitempty"`
	Renames         []Rename  `json:"renames,omitempty"`
	Missing         []string  `json:"missing,omitempty"`
}

// HasDiffs reports whether any textual difference was recorded.
func (s *Summary) HasDiffs() bool { return s.TotalDiffs > 0 }

// JSON returns the summary as indented JSON.
func (s *Summary) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Summarize builds the report for a finished session.
//
// Splits are baseline hashes paired with more than one candidate hash,
// merges the reverse. Renames are baseline hashes paired with exactly one
// candidate hash where the baseline hash no longer occurs on the candidate
// side; the null hash never counts as a rename.
func Summarize(s *Session) *Summary {
	sum := &Summary{
		Config:  s.Config,
		Events:  s.Events,
		Missing: append([]string(nil), s.Missing...),
	}
	if len(s.keys) == 0 {
		return sum
	}

	sum.TotalDiffs = len(s.keys)
	for _, k := range s.keys {
		if !diff.IsHashOnly(s.Diffs[k]) {
			sum.StructuralDiffs++
		}
	}

	for _, oldHash := range sortedKeys(s.HashMapOldNew) {
		news := s.NewFor(oldHash)
		if len(news) > 1 {
			sum.Splits = append(sum.Splits, Mapping{Hash: oldHash, Counterparts: news})
			continue
		}
		if _, stillPresent := s.NewHashes[oldHash]; stillPresent {
			continue
		}
		if oldHash == NullHash || news[0] == NullHash {
			continue
		}
		sum.Renames = append(sum.Renames, Rename{Old: oldHash, New: news[0]})
	}

	for _, newHash := range sortedKeys(s.HashMapNewOld) {
		if olds := s.OldFor(newHash); len(olds) > 1 {
			sum.Merges = append(sum.Merges, Mapping{Hash: newHash, Counterparts: olds})
		}
	}

	return sum
}
