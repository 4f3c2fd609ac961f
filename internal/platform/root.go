package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFile is the optional project configuration at the project root.
const ConfigFile = "lectern.yml"

// ErrRootNotFound is returned by FindRoot when no project marker exists.
var ErrRootNotFound = errors.New("project root not found")

// FindRoot looks upwards from startDir for a project root indicator: a
// .lectern directory, a lectern.yml file or a .git directory. It returns
// the absolute path of the first directory carrying one.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ".lectern") || hasFile(dir, ConfigFile) || hasFile(dir, ".git") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrRootNotFound
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
