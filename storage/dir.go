package storage

import (
	"fmt"
	"path/filepath"
)

// backendFiles names files only the given backend creates in its data
// directory.
var backendFiles = map[string][]string{
	"badger": {"KEYREGISTRY", "*.vlog"},
	"pebble": {"OPTIONS-*", "MANIFEST-*"},
}

// EnsureBackendDir returns ErrDataMismatch if dir holds files created by a
// backend other than the given one.
func EnsureBackendDir(dir string, backend string) error {
	for other, patterns := range backendFiles {
		if other == backend {
			continue
		}
		for _, pattern := range patterns {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return fmt.Errorf("could not inspect %s: %w", dir, err)
			}
			if len(matches) > 0 {
				return fmt.Errorf("%s holds a %s database: %w", dir, other, ErrDataMismatch)
			}
		}
	}
	return nil
}
