package compare

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/groupdiff/groupdiff/internal/diff"
)

// NullHash is the bucket for events the grouping tool left ungrouped.
const NullHash = "null"

// MalformedOutputError reports a grouping output without a usable hash line.
// It is fatal for the configuration being compared: the hash maps would be
// incomplete without it.
type MalformedOutputError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	if e.Path == "" {
		return "malformed grouping output: " + e.Reason
	}
	return fmt.Sprintf("malformed grouping output %s: %s", e.Path, e.Reason)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// FindHash returns the value of the first line whose trimmed form starts with
// "hash: ". The value is JSON-decoded; a literal null yields NullHash.
func FindHash(lines []string) (string, error) {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, diff.HashLinePrefix) {
			continue
		}
		raw := strings.TrimSpace(trimmed[len(diff.HashLinePrefix):])
		if raw == NullHash {
			return NullHash, nil
		}
		var value string
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return "", &MalformedOutputError{Reason: fmt.Sprintf("undecodable hash %s", raw), Err: err}
		}
		return value, nil
	}
	return "", &MalformedOutputError{Reason: "no hash line"}
}
