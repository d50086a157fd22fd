// Package docs rewrites generated sections of project documentation: the
// README marker regions and the auto-generated prefix of the package
// __init__.py.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/chorepkg/chore/internal/config"
	"github.com/chorepkg/chore/internal/fsutil"
	"github.com/chorepkg/chore/internal/splice"
)

var (
	codePattern     = regexp.MustCompile(`\s*<!-- /?(CODE:.*) -->`)
	coveragePattern = regexp.MustCompile(`<!-- /?(COVERAGE) -->`)
)

// updateReadme splices the replacement content into the README's marker
// regions and writes the result back in full.
func updateReadme(cfg *config.Config, pattern *regexp.Regexp, replacements map[string][]string) error {
	path := cfg.ReadmePath()
	lines, err := fsutil.ReadLines(path)
	if err != nil {
		return err
	}
	if lines == nil {
		return fmt.Errorf("readme not found: %s", path)
	}

	out, err := splice.Splice(lines, pattern, replacements)
	if err != nil {
		return fmt.Errorf("splice %s: %w", path, err)
	}
	return fsutil.WriteText(path, strings.Join(out, "\n"))
}

// EmbedScript replaces the CODE marker region in the README with the embed
// script's source wrapped in a fenced code block. A missing script is logged
// and skipped, leaving the README untouched.
func EmbedScript(logger *log.Logger, cfg *config.Config) error {
	scriptPath := cfg.EmbedScriptPath()
	info, err := os.Stat(scriptPath)
	if err != nil || info.IsDir() {
		logger.Warn("Could not locate embed script, skipping README update", "path", scriptPath)
		return nil
	}

	lines, err := fsutil.ReadLines(scriptPath)
	if err != nil {
		return err
	}

	block := append([]string{"```py"}, lines...)
	block = append(block, "```")
	for i, line := range block {
		block[i] = strings.TrimRight(line, " \t")
	}

	key := "CODE:" + filepath.ToSlash(cfg.EmbedScript)
	return updateReadme(cfg, codePattern, map[string][]string{key: block})
}
