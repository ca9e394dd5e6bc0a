// cmd/scrub/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"scrub/internal/config"
	"scrub/internal/detect"
	scruberrors "scrub/internal/errors"
	"scrub/internal/logging"
	"scrub/internal/redact"
	"scrub/internal/sanitize"
	"scrub/internal/vcs"
	"scrub/internal/watch"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scrub",
	Short: "Scrub removes identifying strings from a repository's tracked files",
	Long: `Scrub walks every file tracked by git, skips binary files and
vendor/build artifacts, rewrites text content to remove a configured
username token and Windows-style user-home paths, then stages the result
for commit.`,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	var dryRun bool

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Sanitize all tracked files and stage the changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := initSanitizer()
			if err != nil {
				return err
			}
			s.DryRun = dryRun

			summary, err := s.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("sanitizing repository: %w", err)
			}

			printSummary(summary, dryRun)
			return nil
		},
	}
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing or staging")

	var checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Fail if any tracked file still contains identifying strings",
		Long:  `Runs a dry pass and exits non-zero when files would change. Useful as a CI guard.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := initSanitizer()
			if err != nil {
				return err
			}
			s.DryRun = true

			summary, err := s.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("checking repository: %w", err)
			}

			printSummary(summary, true)
			if len(summary.Rewritten) > 0 {
				return fmt.Errorf("%d file(s) contain identifying strings", len(summary.Rewritten))
			}
			return nil
		},
	}

	var watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Keep the working tree sanitized continuously",
		Long:  `Watches the working tree and re-sanitizes files as they change. Does not stage; run "scrub run" for a full staged pass.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := initSanitizer()
			if err != nil {
				return err
			}

			w, err := watch.New(s.Root, s, s.Logger.Logger)
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer w.Close()

			fmt.Println("Watching for changes (Ctrl-C to stop)")
			if err := w.Run(cmd.Context()); err != nil && err != context.Canceled {
				return fmt.Errorf("watching working tree: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)

	// Bare "scrub" behaves like "scrub run".
	rootCmd.RunE = runCmd.RunE
}

func initSanitizer() (*sanitize.Sanitizer, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, scruberrors.ConfigError("loading config", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	classifier, err := detect.NewClassifier(cwd, cfg.Exclusions())
	if err != nil {
		return nil, fmt.Errorf("initializing classifier: %w", err)
	}

	rules := redact.Default(cfg.Redact.UsernameToken, cfg.Redact.UsernameReplacement)

	return sanitize.New(cwd, vcs.NewGit(cwd), classifier, rules, logger), nil
}

func printSummary(summary *sanitize.Summary, dryRun bool) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	verb := "Rewrote"
	if dryRun {
		verb = "Would rewrite"
	}

	if len(summary.Rewritten) > 0 {
		fmt.Printf("%s %d file(s):\n", verb, len(summary.Rewritten))
		for _, path := range summary.Rewritten {
			fmt.Printf("\t%s %s\n", green("M"), path)
		}
	}

	if len(summary.Failures) > 0 {
		fmt.Println("Failed files:")
		for _, failure := range summary.Failures {
			fmt.Printf("\t%s %s\n", red("E"), failure.Error())
		}
	}

	fmt.Printf("\n%d tracked, %d rewritten, %d unchanged, %s, %s, %d failed\n",
		summary.Enumerated,
		len(summary.Rewritten),
		summary.Unchanged,
		yellow(fmt.Sprintf("%d binary skipped", summary.SkippedBinary)),
		yellow(fmt.Sprintf("%d excluded", summary.SkippedExcluded)),
		len(summary.Failures),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
