package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/groupdiff/groupdiff/internal/config"
)

const StoreDirName = ".groupdiff"

// ConfigPath returns the config file location inside a workspace root.
func ConfigPath(root string) string {
	return filepath.Join(root, "config.yaml")
}

// InitStore creates a .groupdiff/ workspace with empty baseline and candidate
// output trees and a default config.yaml. Returns the workspace root.
func InitStore(dir string) (string, error) {
	root := filepath.Join(dir, StoreDirName)

	if _, err := os.Stat(root); err == nil {
		return "", fmt.Errorf("workspace already initialized at %s", root)
	}

	cfg := config.Defaults()
	dirs := []string{
		root,
		filepath.Join(root, cfg.BaselineDir),
		filepath.Join(root, cfg.CandidateDir),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := cfg.Save(ConfigPath(root)); err != nil {
		return "", err
	}

	return root, nil
}
