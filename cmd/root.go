// Package cmd implements the CLI command structure for chore.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chorepkg/chore/internal/config"
	"github.com/chorepkg/chore/internal/logging"
	"github.com/chorepkg/chore/internal/task"
	"github.com/chorepkg/chore/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the chore CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chore", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.NewFromConfig(cfg.LogLevel, cfg.LogFormat)
	runner := task.NewRunner(logger, cfg.ProjectRoot)

	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage(fs, os.Stderr)
		return fmt.Errorf("missing command")
	}
	subcommand := remaining[0]
	remaining = remaining[1:]
	if len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	switch subcommand {
	case "document":
		return runner.Run(ctx, task.Document(logger, cfg))
	case "tags":
		return runner.Run(ctx, task.TagSummary(logger, cfg))
	case "tui":
		return ui.RunTUI(ctx, logger, cfg)
	case "lint-config":
		return runner.Run(ctx, task.SetLintConfig(logger, cfg))
	case "lint":
		t, err := task.Lint(logger, cfg, nil)
		if err != nil {
			return err
		}
		return runner.Run(ctx, t)
	case "lint-precommit":
		t, err := task.LintPreCommit(logger, cfg)
		if err != nil {
			return err
		}
		return runner.Run(ctx, t)
	case "format":
		t, err := task.Format(cfg)
		if err != nil {
			return err
		}
		return runner.Run(ctx, t)
	case "changelog":
		return runner.Run(ctx, task.Changelog())
	case "bump":
		return runner.Run(ctx, task.Bump())
	case "tag-create":
		t, err := task.TagCreate(cfg)
		if err != nil {
			return err
		}
		return runner.Run(ctx, t)
	case "tag-remove":
		t, err := task.TagRemove(cfg)
		if err != nil {
			return err
		}
		return runner.Run(ctx, t)
	case "doctor":
		return doctorCommand(cfg)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func versionCommand() error {
	fmt.Printf("chore %s\n", Version)
	return nil
}

// commandHelp maps each subcommand to its one-line description, in display
// order.
var commandHelp = []struct {
	name string
	desc string
}{
	{"document", "Refresh README marker regions and the package __init__.py"},
	{"tags", "Write TAG_SUMMARY.md from tagged comments (TODO, FIXME, ...)"},
	{"tui", "Browse tagged comments in a terminal UI"},
	{"lint-config", "Write the flake8 config and isort settings"},
	{"lint", "Lint the configured paths with flake8"},
	{"lint-precommit", "Lint, ignoring non-critical error codes"},
	{"format", "Format code with isort and autopep8"},
	{"changelog", "Write the changelog from git history"},
	{"bump", "Bump the version and rewrite the changelog"},
	{"tag-create", "Create and push a git tag for the pyproject version"},
	{"tag-remove", "Delete the git tag for the pyproject version"},
	{"doctor", "Check project setup and external tools"},
	{"version", "Show version"},
	{"help", "Show this help"},
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: chore [flags] <command>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commandHelp {
		fmt.Fprintf(w, "  %-16s %s\n", c.name, c.desc)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// CommandNames returns the known subcommand names, used for completion.
func CommandNames() []string {
	names := make([]string, 0, len(commandHelp))
	for _, c := range commandHelp {
		names = append(names, c.name)
	}
	return names
}
