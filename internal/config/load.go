package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
//  1. Defaults
//  2. User config file (~/.config/chore/chore.toml)
//  3. Project config file (chore.toml or .chore.toml in the project root)
//  4. Environment variables (CHORE_*)
//  5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// Register global flags so the project root is known before the
	// project config file is located.
	root := fs.String("root", "", "Project root (default: current directory)")
	logLevel := fs.String("log-level", "", "Log level (debug|info|warn|error)")
	logFormat := fs.String("log-format", "", "Log format (text|logfmt|json)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := resolveProjectRoot(cfg, *root); err != nil {
		return nil, err
	}

	// 2. Try to load from user config file
	if userFile := findUserConfigFile(); userFile != "" {
		if err := loadConfigFile(cfg, userFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if projFile := findProjectConfigFile(cfg.ProjectRoot); projFile != "" {
		if err := loadConfigFile(cfg, projFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Flags override everything
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// resolveProjectRoot sets cfg.ProjectRoot from the flag value, the
// CHORE_ROOT environment variable, or the current directory.
func resolveProjectRoot(cfg *Config, flagValue string) error {
	root := flagValue
	if root == "" {
		root = os.Getenv("CHORE_ROOT")
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		root = cwd
	}
	root = expandPath(root)
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve project root %s: %w", root, err)
	}
	cfg.ProjectRoot = abs
	return nil
}

// findUserConfigFile returns the path of the user config file, or "".
func findUserConfigFile() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(configDir, "chore", "chore.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// findProjectConfigFile returns the path of the project config file, or "".
func findProjectConfigFile(root string) string {
	for _, name := range []string{"chore.toml", ".chore.toml"} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadConfigFile decodes a TOML config file into cfg, overriding any
// previously set fields that appear in the file.
func loadConfigFile(cfg *Config, path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}
	return nil
}

// loadFromEnv overrides config from CHORE_* environment variables.
func loadFromEnv(cfg *Config) {
	setString := func(key string, target *string) {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}
	setString("CHORE_README_FILE", &cfg.ReadmeFile)
	setString("CHORE_COVERAGE_FILE", &cfg.CoverageFile)
	setString("CHORE_TAG_SUMMARY_FILE", &cfg.TagSummaryFile)
	setString("CHORE_EMBED_SCRIPT", &cfg.EmbedScript)
	setString("CHORE_DOC_OUTPUT_DIR", &cfg.DocOutputDir)
	setString("CHORE_TEST_OUTPUT_DIR", &cfg.TestOutputDir)
	setString("CHORE_LOG_LEVEL", &cfg.LogLevel)
	setString("CHORE_LOG_FORMAT", &cfg.LogFormat)
}

// finalizeConfig computes derived values after all sources are merged.
func finalizeConfig(cfg *Config) error {
	name, version, err := LoadPyProject(cfg.ProjectRoot)
	if err != nil {
		return err
	}
	cfg.PackageName = name
	cfg.PackageVersion = version

	if len(cfg.LintPaths) == 0 {
		if cfg.PackageName != "" {
			cfg.LintPaths = append(cfg.LintPaths, cfg.PackageName)
		}
		cfg.LintPaths = append(cfg.LintPaths, "tests")
	}
	return nil
}
