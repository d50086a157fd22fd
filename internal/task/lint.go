package task

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/chorepkg/chore/internal/config"
	"github.com/chorepkg/chore/internal/fsutil"
)

// flake8Config is written to the project's .flake8 file by the lint-config
// task. The trailing comment marks the file as generated.
const flake8Config = `[flake8]
docstring-convention = all
ignore = D203,D213,D214,D406,D407,G004,W503
max-complexity = 10
max-line-length = 120
per-file-ignores=test_*.py:S101,DAR101
select = A,B,C,D,E,F,G,H,I,J,K,L,M,N,O,P,Q,R,S,T,U,V,W,X,Y,Z

# Do not modify, auto-generated by chore
`

// isortSettings are merged into pyproject.toml under [tool.isort].
var isortSettings = map[string]interface{}{
	"line_length":     120,
	"length_sort":     false,
	"default_section": "THIRDPARTY",
}

// preCommitIgnoreCodes are the non-critical flake8 codes tolerated by the
// lint-precommit task.
var preCommitIgnoreCodes = []string{
	"C901",   // complexity
	"D417",   // missing arg descriptors
	"DAR101", "DAR201", "DAR401",
	"E800",   // commented out code
	"G001",   // logging format
	"S101",   // assert
	"T100", "T101", // fixme and todo comments
}

// Flake8Path returns the flake8 config file location.
func Flake8Path(cfg *config.Config) string {
	return filepath.Join(cfg.ProjectRoot, ".flake8")
}

func lintLogPath(cfg *config.Config) string {
	return filepath.Join(cfg.ProjectRoot, "flake8.log")
}

// SetLintConfig builds the task that writes the flake8 config file and
// merges the isort settings into pyproject.toml.
func SetLintConfig(logger *log.Logger, cfg *config.Config) Task {
	return Task{
		Name: "lint-config",
		Actions: []Action{
			Fn("write flake8 config", func() error {
				return fsutil.WriteText(Flake8Path(cfg), flake8Config)
			}),
			Fn("write isort settings", func() error {
				return writeIsortSettings(cfg)
			}),
		},
	}
}

// writeIsortSettings decodes the user's pyproject.toml, replaces
// [tool.isort], and writes the document back.
func writeIsortSettings(cfg *config.Config) error {
	path := filepath.Join(cfg.ProjectRoot, "pyproject.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	tool, ok := doc["tool"].(map[string]interface{})
	if !ok {
		tool = map[string]interface{}{}
		doc["tool"] = tool
	}
	tool["isort"] = isortSettings

	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(doc); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return fsutil.WriteText(path, b.String())
}

// ListPyFiles expands the configured lint paths into Python file paths:
// directories are walked recursively, plain files pass through.
func ListPyFiles(cfg *config.Config, paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cfg.ProjectRoot, p)
		}
		info, err := os.Stat(abs)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			files = append(files, abs)
			continue
		}
		err = filepath.Walk(abs, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && filepath.Ext(path) == ".py" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// Lint builds the lint task: delete any stale log, run flake8 per file with
// an output log, then fail if the (optionally filtered) log has content.
// The log file is appended to by flake8, so a fresh run starts clean.
func Lint(logger *log.Logger, cfg *config.Config, ignoreCodes []string) (Task, error) {
	logPath := lintLogPath(cfg)
	files, err := ListPyFiles(cfg, cfg.LintPaths)
	if err != nil {
		return Task{}, err
	}

	actions := []Action{
		Fn("remove stale lint log", func() error {
			return fsutil.IfFoundUnlink(logger, logPath)
		}),
	}
	flags := []string{
		"--config=" + Flake8Path(cfg),
		"--output-file=" + logPath,
		"--exit-zero",
	}
	for _, file := range files {
		argv := append([]string{"poetry", "run", "python", "-m", "flake8", file}, flags...)
		actions = append(actions, Cmd(argv...))
	}
	actions = append(actions, Fn("check lint log", func() error {
		return CheckLintLog(logger, logPath, ignoreCodes)
	}))

	name := "lint"
	if len(ignoreCodes) > 0 {
		name = "lint-precommit"
	}
	return Task{Name: name, Actions: actions}, nil
}

// LintPreCommit builds the lint task with the non-critical codes ignored.
func LintPreCommit(logger *log.Logger, cfg *config.Config) (Task, error) {
	return Lint(logger, cfg, preCommitIgnoreCodes)
}

// CheckLintLog inspects the flake8 log. With ignoreCodes, the full log is
// backed up and lines reporting ignored codes are filtered out before the
// check. Any remaining content is an error; a clean log is deleted.
func CheckLintLog(logger *log.Logger, logPath string, ignoreCodes []string) error {
	data, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read lint log: %w", err)
	}
	contents := strings.TrimSpace(string(data))

	ext := filepath.Ext(logPath)
	fullPath := strings.TrimSuffix(logPath, ext) + "-full" + ext
	reviewInfo := fmt.Sprintf(". Review: %s", logPath)
	if len(ignoreCodes) > 0 {
		if err := fsutil.WriteText(fullPath, contents); err != nil {
			return err
		}
		var kept []string
		for _, line := range strings.Split(contents, "\n") {
			if line == "" || matchesAnyCode(line, ignoreCodes) {
				continue
			}
			kept = append(kept, line)
		}
		contents = strings.Join(kept, "\n")
		if err := fsutil.WriteText(logPath, contents); err != nil {
			return err
		}
		reviewInfo = fmt.Sprintf(" even when ignoring %v. Review: %s (full list in %s)",
			ignoreCodes, logPath, fullPath)
	} else {
		if err := fsutil.IfFoundUnlink(logger, fullPath); err != nil {
			return err
		}
	}

	if len(contents) > 0 {
		return fmt.Errorf("found linting errors%s", reviewInfo)
	}
	return fsutil.IfFoundUnlink(logger, logPath)
}

func matchesAnyCode(line string, codes []string) bool {
	for _, code := range codes {
		if strings.Contains(line, ": "+code) {
			return true
		}
	}
	return false
}
