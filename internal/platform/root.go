package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFileName is the run file looked up by FindConfig.
const ConfigFileName = "ciphergen.yaml"

// ErrConfigNotFound is returned when no run file exists up to the filesystem root.
var ErrConfigNotFound = errors.New("config not found")

// FindConfig looks upwards from startDir for a ciphergen.yaml and returns its
// absolute path.
func FindConfig(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrConfigNotFound
}
