package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/groupdiff/groupdiff/internal/config"
	"github.com/groupdiff/groupdiff/internal/logging"
	"github.com/groupdiff/groupdiff/internal/store"
)

var (
	version    = "dev"
	verbose    bool
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "groupdiff",
	Short: "Regression diffing for error grouping outputs",
	Long: `groupdiff compares the grouping outputs produced by two revisions of an
error grouping algorithm, event by event, and reports which grouping hashes
were split, merged or renamed.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose/debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (defaults to the workspace config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "groupdiff: %s\n", err)
		os.Exit(1)
	}
}

// loadConfig picks the config file from --config, then the enclosing
// workspace, then falls back to defaults relative to the working directory.
// Relative paths resolve against the directory holding the file.
func loadConfig() (*config.Config, error) {
	var (
		cfg  *config.Config
		base string
		err  error
	)

	switch {
	case configPath != "":
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		base = filepath.Dir(abs)
	default:
		if root, derr := store.DiscoverStore(); derr == nil {
			cfg, err = config.Load(store.ConfigPath(root))
			if err != nil {
				return nil, err
			}
			base = root
		} else {
			cfg = config.Defaults()
			base, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("getting working directory: %w", err)
			}
		}
	}

	cfg.ResolvePaths(base)
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	return logging.New(os.Stderr, cfg.LogLevel)
}
