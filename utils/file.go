package utils

import (
	"os"
	"path/filepath"
)

// EnsureDataDir creates the data directory if it doesn't exist
func EnsureDataDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// GetDataPath returns the full path for a file inside the data directory
func GetDataPath(dir, filename string) string {
	return filepath.Join(dir, filename)
}
