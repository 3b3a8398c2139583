package util

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CacheBaseDir is the directory under the user cache dir that necrosis owns.
const CacheBaseDir = "necrosis"

// CacheDir returns the cache directory and creates it if it doesn't exist.
// Subdirectories are joined below CacheBaseDir.
func CacheDir(subdirectories ...string) (string, error) {
	basePath, err := os.UserCacheDir()
	if err != nil {
		// fallback if $HOME is not set.
		basePath = os.TempDir()
	}

	targetPath := filepath.Join(append([]string{basePath, CacheBaseDir}, subdirectories...)...)

	if _, err := os.Stat(targetPath); os.IsNotExist(err) {
		if err := os.MkdirAll(targetPath, PermDirectory); err != nil {
			return "", errors.Wrap(err, "failed to MkdirAll")
		}
	}

	return targetPath, nil
}
