package docs

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/chorepkg/chore/internal/config"
	"github.com/chorepkg/chore/internal/fsutil"
)

// InitDivider separates the auto-generated prefix of __init__.py from user
// content. Detection is an exact string match, so the literal must not change
// between runs.
const InitDivider = "# =============== Above is Auto-Generated by chore. User content goes below ==============="

// initTemplate is the Python code generated at the top of __init__.py.
const initTemplate = `"""%s."""

from loguru import logger

__version__ = '%s'
__pkg_name__ = '%s'

logger.disable(__pkg_name__)
`

// MergeInit merges a freshly generated prefix with the user-authored suffix
// of an existing __init__.py. Everything strictly after the divider line is
// preserved verbatim; tabs in the generated prefix are normalized to four
// spaces; the result is stripped and terminated with one trailing newline.
// The returned bool reports whether the divider was found — when false, any
// prior content has been discarded.
func MergeInit(existing []string, generated, divider string) (string, bool) {
	userText := ""
	found := false
	for i, line := range existing {
		if line == divider {
			userText = strings.Join(existing[i+1:], "\n")
			found = true
			break
		}
	}

	prefix := strings.ReplaceAll(generated, "\t", strings.Repeat(" ", 4))
	merged := prefix + "\n" + divider + "\n" + userText
	return strings.TrimSpace(merged) + "\n", found
}

// WritePkgInit regenerates the auto-generated prefix of the package
// __init__.py, preserving user content below the divider. A missing divider
// in an existing file is logged because the prior content is lost.
func WritePkgInit(logger *log.Logger, cfg *config.Config) error {
	path, err := cfg.PackageInitPath()
	if err != nil {
		return err
	}

	generated := fmt.Sprintf(initTemplate, cfg.PackageName, cfg.PackageVersion, cfg.PackageName)

	var existing []string
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		existing = strings.Split(strings.TrimSpace(string(data)), "\n")
	case os.IsNotExist(err):
		// Fresh package, nothing to preserve.
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}

	merged, found := MergeInit(existing, generated, InitDivider)
	if !found && len(existing) > 0 {
		logger.Warn("Did not find a divider, overwriting any existing user text", "path", path)
	}

	logger.Info("Writing package init", "path", path, "version", cfg.PackageVersion)
	return fsutil.WriteText(path, merged)
}
