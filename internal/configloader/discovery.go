package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// appName names the per-user and system config directories.
const appName = "sharplint"

// ConfigPaths holds the configuration files found for one run. An empty
// field means no file exists at that level.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// Project file names in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".sharplint.yml", ".sharplint.yaml", ".sharplint.toml",
	"sharplint.yml", "sharplint.yaml", "sharplint.toml",
}

// File names looked up in the user and system config directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dirConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}

// Directories that end the upward project search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the system, user and project configuration files for
// workDir. The system file lives in /etc/sharplint (%ProgramData%\sharplint
// on Windows) and the user file in UserConfigDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{
		System:  firstFile(systemConfigDir(), dirConfigFiles),
		Project: project,
	}
	if dir := UserConfigDir(); dir != "" {
		paths.User = firstFile(dir, dirConfigFiles)
	}
	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, appName)
}

// UserConfigDir returns $XDG_CONFIG_HOME/sharplint, falling back to
// ~/.config/sharplint. It returns "" when no home directory is known.
func UserConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// FindProjectConfig walks up from startDir (default: the current directory)
// and returns the first project config file. The walk ends without a result
// after a directory holding a VCS marker, at the home directory, or at the
// filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	return slices.ContainsFunc(vcsMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
