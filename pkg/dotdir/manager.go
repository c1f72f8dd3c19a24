// Package dotdir manages the .skala/ and ~/.skala directories.
//
// The directory holds the persistent CLI configuration (config.toml). A local
// ./.skala/ takes precedence over ~/.skala/ so per-project settings are
// possible; nothing is created implicitly except an explicit override.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the skala directory.
	dirName = ".skala"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .skala/ directory.
// Order of precedence is as follows:
//  1. Provided override (created if missing)
//  2. Local ./.skala/ dir
//  3. Home ~/.skala/ dir
//
// Returns "" with a nil error when nothing resolves; callers fall back to
// defaults. The init command is the one place that creates the local dir.
func (m *Manager) Target(overrideDir string) (string, error) {
	switch {
	case overrideDir != "":
		if err := os.MkdirAll(overrideDir, 0o755); err != nil {
			return "", fmt.Errorf("creating skala directory %s: %w", overrideDir, err)
		}
		return filepath.Abs(overrideDir)

	case m.localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return filepath.Join(cwd, dirName), nil

	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}

		dir := filepath.Join(home, dirName)
		info, err := os.Stat(dir)
		if err == nil && info.IsDir() {
			return dir, nil
		}

		return "", nil
	}
}

// localDirExists checks whether a .skala/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, dirName))
	return err == nil && info.IsDir()
}
