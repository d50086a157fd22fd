package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/chorepkg/chore/internal/config"
)

// externalTools are the binaries the shell-out tasks rely on.
var externalTools = []string{"git", "poetry"}

// doctorCommand checks the project root, pyproject metadata, key paths, and
// external tools.
func doctorCommand(cfg *config.Config) error {
	fmt.Println("Chore Doctor")
	fmt.Println("============")
	fmt.Println()

	allOK := true

	fmt.Printf("Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	fmt.Println("Package metadata (pyproject.toml):")
	if cfg.PackageName == "" {
		fmt.Println("  ❌ Name: not found")
		allOK = false
	} else {
		fmt.Printf("  ✅ Name: %s\n", cfg.PackageName)
	}
	if cfg.PackageVersion == "" {
		fmt.Println("  ❌ Version: not found")
		allOK = false
	} else {
		fmt.Printf("  ✅ Version: %s\n", cfg.PackageVersion)
	}
	fmt.Println()

	// Missing optional inputs are reported but not fatal; the document
	// task skips them with a warning.
	fmt.Println("Paths:")
	checkFile("README", cfg.ReadmePath())
	checkFile("Embed script", cfg.EmbedScriptPath())
	if initPath, err := cfg.PackageInitPath(); err == nil {
		checkFile("Package init", initPath)
	}
	fmt.Println()

	fmt.Println("External tools:")
	for _, tool := range externalTools {
		if path, err := exec.LookPath(tool); err != nil {
			fmt.Printf("  ❌ %s: not found on PATH\n", tool)
			allOK = false
		} else {
			fmt.Printf("  ✅ %s: %s\n", tool, path)
		}
	}
	fmt.Println()

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkFile(label, path string) bool {
	rel := path
	if r, err := filepath.Rel(".", path); err == nil {
		rel = r
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("  ⚠️  %s: %s (missing)\n", label, rel)
		return false
	}
	fmt.Printf("  ✅ %s: %s\n", label, rel)
	return true
}
