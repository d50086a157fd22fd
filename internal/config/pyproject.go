package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// pyProject models the subset of pyproject.toml that chore reads.
type pyProject struct {
	Tool struct {
		Poetry struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
}

// LoadPyProject reads the package name and version from pyproject.toml in
// root. The Poetry table wins when both it and PEP 621 metadata are present.
// A missing pyproject.toml is not an error; both values come back empty and
// the doctor command reports it.
func LoadPyProject(root string) (name, version string, err error) {
	path := filepath.Join(root, "pyproject.toml")
	if _, statErr := os.Stat(path); statErr != nil {
		return "", "", nil
	}

	var py pyProject
	if _, err := toml.DecodeFile(path, &py); err != nil {
		return "", "", fmt.Errorf("parse %s: %w", path, err)
	}

	name = py.Tool.Poetry.Name
	version = py.Tool.Poetry.Version
	if name == "" {
		name = py.Project.Name
	}
	if version == "" {
		version = py.Project.Version
	}
	return name, version, nil
}
