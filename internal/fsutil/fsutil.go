// Package fsutil provides small filesystem helpers shared across tasks.
package fsutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ReadLines reads a file and splits it on newlines for line-oriented parsing.
// A missing file yields an empty slice and no error.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return strings.Split(string(data), "\n"), nil
}

// WriteText writes text to path, replacing any existing content.
func WriteText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// IfFoundUnlink removes the file if it exists.
func IfFoundUnlink(logger *log.Logger, path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil
	}
	logger.Info("Deleting file", "path", path)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates the directory and any missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("create dir %s: %w", path, err)
	}
	return nil
}

// DeleteDir removes the directory tree if it exists.
func DeleteDir(logger *log.Logger, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil
	}
	logger.Info("Deleting directory", "path", path)
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove dir %s: %w", path, err)
	}
	return nil
}
