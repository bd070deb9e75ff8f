package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/groupdiff/groupdiff/internal/compare"
	"github.com/groupdiff/groupdiff/internal/config"
	"github.com/groupdiff/groupdiff/internal/diff"
	"github.com/groupdiff/groupdiff/internal/history"
	"github.com/groupdiff/groupdiff/internal/store"
	"github.com/groupdiff/groupdiff/internal/telemetry"
	"github.com/groupdiff/groupdiff/internal/ux"
)

var (
	compareBaseline    string
	compareCandidate   string
	compareOut         string
	compareFilter      string
	compareJobs        int
	compareJSON        bool
	compareMetricsFile string
	compareNoHistory   bool
	compareNoColor     bool
	historyLimit       int
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a groupdiff workspace",
	Long:  "Create a .groupdiff/ directory in the current working directory with baseline_outputs/, new_outputs/ and a default config.yaml.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		root, err := store.InitStore(dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized groupdiff workspace at %s\n", root)
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare baseline and candidate grouping outputs",
	Long: `Compare every grouping configuration under the baseline directory with the
same configuration under the candidate directory. A summary is printed per
configuration and the distinct diffs are saved to variants.<config>.diff.

Exits with status 1 when any configuration could not be compared.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := applyCompareFlags(cmd, cfg); err != nil {
			return err
		}
		logger := newLogger(cfg)

		run := history.NewRun(cfg.BaselineDir, cfg.CandidateDir)
		results, err := compare.CompareAll(cmd.Context(), compare.Options{
			BaselineRoot:  cfg.BaselineDir,
			CandidateRoot: cfg.CandidateDir,
			OutputDir:     cfg.OutputDir,
			Filter:        cfg.GroupingConfig,
			Jobs:          cfg.Jobs,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if compareJSON {
			if err := writeJSONResults(out, results); err != nil {
				return err
			}
		} else {
			color := !compareNoColor && ux.ColorEnabled(os.Stdout)
			for _, res := range results {
				fmt.Fprint(out, ux.RenderResult(res, color))
			}
		}

		if cfg.MetricsFile != "" {
			m := telemetry.New()
			for _, res := range results {
				m.Observe(res)
			}
			if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
				return err
			}
			logger.Debug("metrics written", "path", cfg.MetricsFile)
		}

		if cfg.HistoryFile != "" && !compareNoHistory {
			for _, res := range results {
				run.Add(res)
			}
			if err := history.RecordRun(cfg.HistoryFile, run); err != nil {
				return err
			}
			logger.Debug("run recorded", "run_id", run.RunID)
		}

		if failed := compare.Failed(results); failed > 0 {
			return fmt.Errorf("%d of %d configurations failed", failed, len(results))
		}
		return nil
	},
}

// applyCompareFlags lets explicitly set flags override file values.
func applyCompareFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	for _, p := range []struct {
		name  string
		value string
		dst   *string
	}{
		{"baseline", compareBaseline, &cfg.BaselineDir},
		{"candidate", compareCandidate, &cfg.CandidateDir},
		{"out", compareOut, &cfg.OutputDir},
		{"metrics-file", compareMetricsFile, &cfg.MetricsFile},
	} {
		if !flags.Changed(p.name) {
			continue
		}
		abs, err := filepath.Abs(p.value)
		if err != nil {
			return fmt.Errorf("resolving --%s: %w", p.name, err)
		}
		*p.dst = abs
	}
	if flags.Changed("grouping-config") {
		cfg.GroupingConfig = compareFilter
	}
	if flags.Changed("jobs") {
		cfg.Jobs = compareJobs
	}
	return cfg.Validate()
}

func writeJSONResults(w io.Writer, results []compare.Result) error {
	type jsonResult struct {
		*compare.Summary
		Config string `json:"config"`
		Bundle string `json:"bundle,omitempty"`
		Error  string `json:"error,omitempty"`
	}
	out := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Summary: res.Summary, Config: res.Config, Bundle: res.BundlePath}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		out = append(out, jr)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

var showCmd = &cobra.Command{
	Use:   "show <bundle>",
	Short: "Summarize a saved diff bundle",
	Long:  "Parse a variants.<config>.diff file and list each diff with its line counts and whether it only changes hash lines.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := diff.ReadBundle(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), diff.FormatBundle(entries))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent comparison runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.HistoryFile == "" {
			return fmt.Errorf("history is disabled (history_file is empty)")
		}
		runs, err := history.ListRuns(cfg.HistoryFile, historyLimit)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), history.FormatRuns(runs))
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareBaseline, "baseline", "", "baseline outputs directory")
	compareCmd.Flags().StringVar(&compareCandidate, "candidate", "", "candidate outputs directory")
	compareCmd.Flags().StringVar(&compareOut, "out", "", "directory for variants.<config>.diff bundles")
	compareCmd.Flags().StringVar(&compareFilter, "grouping-config", "", "only compare configurations whose name contains this")
	compareCmd.Flags().IntVarP(&compareJobs, "jobs", "j", 1, "configurations to compare concurrently")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "print summaries as a JSON array")
	compareCmd.Flags().StringVar(&compareMetricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	compareCmd.Flags().BoolVar(&compareNoHistory, "no-history", false, "do not append this run to the history file")
	compareCmd.Flags().BoolVar(&compareNoColor, "no-color", false, "disable colored output")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of recent runs to display")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(historyCmd)

	completionCmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate a shell completion script for groupdiff.

To load completions:

Bash:
  $ source <(groupdiff completion bash)

Zsh:
  $ groupdiff completion zsh > "${fpath[1]}/_groupdiff"

Fish:
  $ groupdiff completion fish | source

PowerShell:
  PS> groupdiff completion powershell | Out-String | Invoke-Expression`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	rootCmd.AddCommand(completionCmd)
}
