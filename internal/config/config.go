// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"path/filepath"
)

// Default values.
const (
	DefaultReadmeFile     = "README.md"
	DefaultCoverageFile   = "coverage.json"
	DefaultTagSummaryFile = "TAG_SUMMARY.md"
	DefaultEmbedScript    = "tests/examples/readme.py"
	DefaultDocOutputDir   = "releases/docs"
	DefaultTestOutputDir  = "releases/tests"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config holds the full configuration for chore. Components receive it
// explicitly; there is no ambient global settings object.
type Config struct {
	// ProjectRoot is the working tree the tasks operate on. Not read from
	// config files; set via flag, environment, or the current directory.
	ProjectRoot string `toml:"-"`

	// Paths, relative to ProjectRoot unless absolute.
	ReadmeFile     string `toml:"readme_file"`
	CoverageFile   string `toml:"coverage_file"`
	TagSummaryFile string `toml:"tag_summary_file"`
	EmbedScript    string `toml:"embed_script"`
	DocOutputDir   string `toml:"doc_output_dir"`
	TestOutputDir  string `toml:"test_output_dir"`

	// LintPaths are the files and directories linted and formatted.
	// Defaults to the package directory plus tests/.
	LintPaths []string `toml:"lint_paths"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Package metadata from pyproject.toml, not from chore config files.
	PackageName    string `toml:"-"`
	PackageVersion string `toml:"-"`
}

// setDefaults fills cfg with default values.
func setDefaults(cfg *Config) {
	cfg.ReadmeFile = DefaultReadmeFile
	cfg.CoverageFile = DefaultCoverageFile
	cfg.TagSummaryFile = DefaultTagSummaryFile
	cfg.EmbedScript = DefaultEmbedScript
	cfg.DocOutputDir = DefaultDocOutputDir
	cfg.TestOutputDir = DefaultTestOutputDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// ReadmePath returns the absolute path of the README file.
func (c *Config) ReadmePath() string { return c.abs(c.ReadmeFile) }

// CoveragePath returns the absolute path of the coverage JSON report.
func (c *Config) CoveragePath() string { return c.abs(c.CoverageFile) }

// TagSummaryPath returns the absolute path of the tag summary file.
func (c *Config) TagSummaryPath() string { return c.abs(c.TagSummaryFile) }

// EmbedScriptPath returns the absolute path of the README embed script.
func (c *Config) EmbedScriptPath() string { return c.abs(c.EmbedScript) }

// PackageInitPath returns the absolute path of the package __init__.py.
func (c *Config) PackageInitPath() (string, error) {
	if c.PackageName == "" {
		return "", fmt.Errorf("package name unknown: pyproject.toml missing or incomplete")
	}
	return filepath.Join(c.ProjectRoot, c.PackageName, "__init__.py"), nil
}

func (c *Config) abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectRoot, p)
}
