package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no config file exists in the search path.
var ErrNotFound = errors.New("config file not found")

// FileNames lists the config file names searched for, in priority order.
var FileNames = []string{"segrec.json", "segrec.yaml", "segrec.yml"}

// FindConfigFile walks up from dir looking for one of FileNames. Returns the
// absolute path of the first match or ErrNotFound.
func FindConfigFile(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root.
			return "", ErrNotFound
		}
		dir = parent
	}
}
