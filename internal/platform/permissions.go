package platform

import (
	"fmt"
	"os"
	"runtime"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// Secure restricts path to its owner: DirPermSecure for directories,
// FilePermSecure for everything else.
func Secure(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mode := FilePermSecure
	if info.IsDir() {
		mode = DirPermSecure
	}
	if err := Chmod(path, mode); err != nil {
		return fmt.Errorf("restricting permissions on %s: %w", path, err)
	}
	return nil
}

// IsSecure reports whether path grants no access beyond its owner. It is
// always true on Windows.
func IsSecure(path string) (bool, error) {
	if runtime.GOOS == "windows" {
		return true, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&0077 == 0, nil
}
