package tags

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/chorepkg/chore/internal/config"
)

// supportedSuffixes are the file types scanned for tagged comments.
var supportedSuffixes = []string{".md", ".py"}

// FindFiles returns the project files to scan for tags: supported files at
// the top level of the project root, then recursively within each
// subdirectory. Dot directories, configured output directories, and the tag
// summary file itself are skipped.
func FindFiles(logger *log.Logger, cfg *config.Config) ([]string, error) {
	ignoredDirs := map[string]bool{
		firstSegment(cfg.DocOutputDir):  true,
		firstSegment(cfg.TestOutputDir): true,
	}
	ignoredNames := map[string]bool{cfg.TagSummaryFile: true}

	entries, err := os.ReadDir(cfg.ProjectRoot)
	if err != nil {
		return nil, err
	}

	var paths []string
	var subDirs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if strings.HasPrefix(name, ".") || ignoredDirs[name] {
				continue
			}
			subDirs = append(subDirs, name)
			continue
		}
		if supportedFile(name) && !ignoredNames[name] {
			paths = append(paths, filepath.Join(cfg.ProjectRoot, name))
		}
	}

	for _, dir := range subDirs {
		err := filepath.WalkDir(filepath.Join(cfg.ProjectRoot, dir), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if supportedFile(d.Name()) && !ignoredNames[d.Name()] {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Info("Collected files for tag scan", "files", len(paths), "dirs", len(subDirs))
	return paths, nil
}

func supportedFile(name string) bool {
	ext := filepath.Ext(name)
	for _, suffix := range supportedSuffixes {
		if ext == suffix {
			return true
		}
	}
	return false
}

// firstSegment returns the leading path segment of a relative path, used to
// exclude output trees from the scan.
func firstSegment(p string) string {
	p = filepath.ToSlash(p)
	if i := strings.Index(p, "/"); i >= 0 {
		return p[:i]
	}
	return p
}
