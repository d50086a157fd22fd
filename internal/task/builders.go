package task

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/chorepkg/chore/internal/config"
	"github.com/chorepkg/chore/internal/docs"
	"github.com/chorepkg/chore/internal/tags"
)

// TagCreate builds the task that creates and pushes an annotated git tag for
// the version in pyproject.toml.
func TagCreate(cfg *config.Config) (Task, error) {
	if cfg.PackageVersion == "" {
		return Task{}, fmt.Errorf("package version unknown: pyproject.toml missing or incomplete")
	}
	message := "New Revision from PyProject.toml"
	return Task{
		Name: "tag-create",
		Actions: []Action{
			Cmd("git", "tag", "-a", cfg.PackageVersion, "-m", message),
			Cmd("git", "tag", "-n10", "--list"),
			Cmd("git", "push", "origin", "--tags"),
		},
	}, nil
}

// TagRemove builds the task that deletes the git tag for the current version
// locally and on the remote.
func TagRemove(cfg *config.Config) (Task, error) {
	if cfg.PackageVersion == "" {
		return Task{}, fmt.Errorf("package version unknown: pyproject.toml missing or incomplete")
	}
	return Task{
		Name: "tag-remove",
		Actions: []Action{
			Cmd("git", "tag", "-d", cfg.PackageVersion),
			Cmd("git", "tag", "-n10", "--list"),
			Cmd("git", "push", "origin", ":refs/tags/"+cfg.PackageVersion),
		},
	}, nil
}

// Changelog builds the task that writes the changelog from git history.
func Changelog() Task {
	return Task{
		Name:    "changelog",
		Actions: []Action{Cmd("poetry", "run", "cz", "changelog")},
	}
}

// Bump builds the task that bumps the version and rewrites the changelog.
func Bump() Task {
	return Task{
		Name:    "bump",
		Actions: []Action{Cmd("poetry", "run", "cz", "bump", "--changelog")},
	}
}

// Format builds the auto-format task: isort per lint path, then autopep8
// per file.
func Format(cfg *config.Config) (Task, error) {
	var actions []Action
	for _, lintPath := range cfg.LintPaths {
		actions = append(actions, Cmd("poetry", "run", "python", "-m", "isort", lintPath))
		files, err := ListPyFiles(cfg, []string{lintPath})
		if err != nil {
			return Task{}, err
		}
		for _, file := range files {
			actions = append(actions, Cmd("poetry", "run", "python", "-m", "autopep8", file, "--in-place", "--aggressive"))
		}
	}
	return Task{Name: "format", Actions: actions}, nil
}

// Document builds the task that refreshes all generated documentation: the
// README code embed, the README coverage table, and the package init prefix.
func Document(logger *log.Logger, cfg *config.Config) Task {
	return Task{
		Name: "document",
		Actions: []Action{
			Fn("embed script in README", func() error {
				return docs.EmbedScript(logger, cfg)
			}),
			Fn("embed coverage table in README", func() error {
				return docs.EmbedCoverage(logger, cfg)
			}),
			Fn("write package init", func() error {
				return docs.WritePkgInit(logger, cfg)
			}),
		},
	}
}

// TagSummary builds the task that writes (or removes) the tag summary file.
func TagSummary(logger *log.Logger, cfg *config.Config) Task {
	return Task{
		Name: "tags",
		Actions: []Action{
			Fn("write tag summary", func() error {
				return tags.WriteSummary(logger, cfg)
			}),
		},
	}
}
