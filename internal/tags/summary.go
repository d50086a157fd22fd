package tags

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/chorepkg/chore/internal/config"
	"github.com/chorepkg/chore/internal/fsutil"
)

// Collect discovers project files and returns the tagged comments found in
// them.
func Collect(logger *log.Logger, cfg *config.Config) ([]FileTags, error) {
	paths, err := FindFiles(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("collect files: %w", err)
	}
	matches, err := SearchFiles(logger, paths, DefaultRegex)
	if err != nil {
		return nil, fmt.Errorf("scan files: %w", err)
	}
	return matches, nil
}

// WriteSummary scans the project and writes the tag summary file. When no
// tagged comments remain, an existing summary file is deleted so the
// repository stays clean.
func WriteSummary(logger *log.Logger, cfg *config.Config) error {
	matches, err := Collect(logger, cfg)
	if err != nil {
		return err
	}
	return writeSummaryFile(logger, cfg, matches)
}

func writeSummaryFile(logger *log.Logger, cfg *config.Config, matches []FileTags) error {
	path := cfg.TagSummaryPath()
	report := FormatReport(cfg.ProjectRoot, matches)
	if len(matches) == 0 {
		return fsutil.IfFoundUnlink(logger, path)
	}

	header := "# Task Summary\n\nAuto-Generated by chore\n\n```log\n"
	footer := "```\n"
	logger.Info("Writing tag summary", "path", path, "files", len(matches))
	return fsutil.WriteText(path, header+report+footer)
}
