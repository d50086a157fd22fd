// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.ReadmeFile != DefaultReadmeFile {
		t.Errorf("ReadmeFile: got %q, want %q", cfg.ReadmeFile, DefaultReadmeFile)
	}
	if cfg.CoverageFile != DefaultCoverageFile {
		t.Errorf("CoverageFile: got %q, want %q", cfg.CoverageFile, DefaultCoverageFile)
	}
	if cfg.TagSummaryFile != DefaultTagSummaryFile {
		t.Errorf("TagSummaryFile: got %q, want %q", cfg.TagSummaryFile, DefaultTagSummaryFile)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoadProjectConfigFile(t *testing.T) {
	dir := t.TempDir()
	configToml := `
readme_file = "docs/README.md"
tag_summary_file = "TAGS.md"
lint_paths = ["src", "tests"]
log_level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, "chore.toml"), []byte(configToml), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"-root", dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ReadmeFile != "docs/README.md" {
		t.Errorf("ReadmeFile: got %q", cfg.ReadmeFile)
	}
	if cfg.TagSummaryFile != "TAGS.md" {
		t.Errorf("TagSummaryFile: got %q", cfg.TagSummaryFile)
	}
	if len(cfg.LintPaths) != 2 || cfg.LintPaths[0] != "src" {
		t.Errorf("LintPaths: got %v", cfg.LintPaths)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
}

func TestLoadUnknownKeyRejected(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "chore.toml"), []byte("no_such_key = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if _, err := Load(fs, []string{"-root", dir}); err == nil {
		t.Error("Load: expected error for unknown config key")
	}
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHORE_LOG_LEVEL", "warn")
	t.Setenv("CHORE_COVERAGE_FILE", "cov.json")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"-root", dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if cfg.CoverageFile != "cov.json" {
		t.Errorf("CoverageFile: got %q, want cov.json", cfg.CoverageFile)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHORE_LOG_LEVEL", "warn")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"-root", dir, "-log-level", "debug"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
}

func TestLoadPyProjectPoetry(t *testing.T) {
	dir := t.TempDir()
	pyproject := `
[tool.poetry]
name = "demo_pkg"
version = "1.2.3"
`
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(pyproject), 0644); err != nil {
		t.Fatal(err)
	}

	name, version, err := LoadPyProject(dir)
	if err != nil {
		t.Fatalf("LoadPyProject: %v", err)
	}
	if name != "demo_pkg" || version != "1.2.3" {
		t.Errorf("LoadPyProject: got %q %q", name, version)
	}
}

func TestLoadPyProjectPEP621(t *testing.T) {
	dir := t.TempDir()
	pyproject := `
[project]
name = "demo_pkg"
version = "0.1.0"
`
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(pyproject), 0644); err != nil {
		t.Fatal(err)
	}

	name, version, err := LoadPyProject(dir)
	if err != nil {
		t.Fatalf("LoadPyProject: %v", err)
	}
	if name != "demo_pkg" || version != "0.1.0" {
		t.Errorf("LoadPyProject: got %q %q", name, version)
	}
}

func TestLoadPyProjectMissing(t *testing.T) {
	name, version, err := LoadPyProject(t.TempDir())
	if err != nil {
		t.Fatalf("LoadPyProject: %v", err)
	}
	if name != "" || version != "" {
		t.Errorf("LoadPyProject: got %q %q, want empty", name, version)
	}
}

func TestDefaultLintPathsUsePackageName(t *testing.T) {
	dir := t.TempDir()
	pyproject := "[tool.poetry]\nname = \"demo_pkg\"\nversion = \"1.0.0\"\n"
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(pyproject), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"-root", dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"demo_pkg", "tests"}
	if len(cfg.LintPaths) != 2 || cfg.LintPaths[0] != want[0] || cfg.LintPaths[1] != want[1] {
		t.Errorf("LintPaths: got %v, want %v", cfg.LintPaths, want)
	}
}

func TestPackageInitPath(t *testing.T) {
	cfg := &Config{ProjectRoot: "/proj", PackageName: "demo"}
	got, err := cfg.PackageInitPath()
	if err != nil {
		t.Fatalf("PackageInitPath: %v", err)
	}
	want := filepath.Join("/proj", "demo", "__init__.py")
	if got != want {
		t.Errorf("PackageInitPath: got %q, want %q", got, want)
	}

	cfg.PackageName = ""
	if _, err := cfg.PackageInitPath(); err == nil {
		t.Error("PackageInitPath: expected error for empty package name")
	}
}
