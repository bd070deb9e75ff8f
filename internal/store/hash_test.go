package store

import (
	"strings"
	"testing"
)

func TestHashContent(t *testing.T) {
	hash := HashContent([]byte("hello world"))
	if !strings.HasPrefix(hash, "sha256:") {
		t.Errorf("expected sha256: prefix, got %s", hash)
	}
	// SHA-256 of "hello world" is known
	expected := "sha256:b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if hash != expected {
		t.Errorf("expected %s, got %s", expected, hash)
	}
}

func TestHashContentDeterministic(t *testing.T) {
	a := HashContent([]byte("-hash: \"a\"\n+hash: \"b\"\n"))
	b := HashContent([]byte("-hash: \"a\"\n+hash: \"b\"\n"))
	if a != b {
		t.Errorf("expected deterministic hash, got %s and %s", a, b)
	}
}

func TestHashContentDifferent(t *testing.T) {
	a := HashContent([]byte("-hash: \"a\"\n"))
	b := HashContent([]byte("-hash: \"b\"\n"))
	if a == b {
		t.Error("expected different hashes for different content")
	}
}

func TestParseHash(t *testing.T) {
	hash := HashContent([]byte("test"))
	algo, hex, err := ParseHash(hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if algo != "sha256" {
		t.Errorf("expected algorithm sha256, got %s", algo)
	}
	if len(hex) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(hex))
	}
}

func TestParseHashInvalid(t *testing.T) {
	tests := []string{
		"md5:abc",
		"sha256:short",
		"sha256:zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
		"noprefixabcdef0123456789abcdef0123456789abcdef0123456789abcdef012345",
	}
	for _, ref := range tests {
		if _, _, err := ParseHash(ref); err == nil {
			t.Errorf("expected invalid for %q", ref)
		}
	}
}

func TestShortHash(t *testing.T) {
	hash := HashContent([]byte("test"))
	short := ShortHash(hash, 12)
	if len(short) != 12 {
		t.Errorf("expected 12 chars, got %d", len(short))
	}
	if got := ShortHash("not-a-hash", 12); got != "not-a-hash" {
		t.Errorf("expected invalid ref returned unchanged, got %q", got)
	}
	if got := ShortHash(hash, 100); len(got) != 64 {
		t.Errorf("expected full hex when n exceeds length, got %d chars", len(got))
	}
}
