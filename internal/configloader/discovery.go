package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// ConfigPaths lists the configuration sources found for a working
// directory. Empty fields mean the source does not exist.
type ConfigPaths struct {
	// System is the machine-wide config, e.g. /etc/mdlstyle/config.yaml.
	System string

	// User is the config under the user's XDG config home.
	User string

	// Project is the nearest .mdlstyle.yml above the working directory.
	Project string

	// Mdlrc is the nearest .mdlrc, or ~/.mdlrc.
	Mdlrc string

	// Explicit is the --config path.
	Explicit string
}

// ProjectConfigFiles are the project config names searched upward, in order
// of preference. `init --config-file` writes the first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{
	".mdlstyle.yml",
	".mdlstyle.yaml",
	"mdlstyle.yml",
	"mdlstyle.yaml",
}

// StyleFileNames are the style file names searched when no style is configured.
//
//nolint:gochecknoglobals // Read-only lookup table.
var StyleFileNames = []string{
	".mdl_style.rb",
	"mdl_style.rb",
	"style.rb",
}

const (
	appDir    = "mdlstyle"
	mdlrcName = ".mdlrc"
)

// DiscoverPaths finds every configuration source that applies to workDir.
// A missing source is not an error.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	paths := &ConfigPaths{
		System: firstFile(systemConfigDirs(), "config.yaml", "config.yml"),
		User:   firstFile([]string{filepath.Join(xdg.ConfigHome, appDir)}, "config.yaml", "config.yml"),
	}

	var err error
	if paths.Project, err = FindProjectConfig(ctx, workDir); err != nil {
		return nil, err
	}
	if paths.Mdlrc, err = findUpward(ctx, workDir, mdlrcName); err != nil {
		return nil, err
	}
	if paths.Mdlrc == "" {
		paths.Mdlrc = firstFile([]string{xdg.Home}, mdlrcName)
	}
	return paths, nil
}

// systemConfigDirs returns the machine-wide config directories in order of
// preference: the traditional location first, then $XDG_CONFIG_DIRS.
func systemConfigDirs() []string {
	var dirs []string
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		dirs = append(dirs, filepath.Join(programData, appDir))
	} else {
		dirs = append(dirs, filepath.Join("/etc", appDir))
	}
	for _, dir := range xdg.ConfigDirs {
		dirs = append(dirs, filepath.Join(dir, appDir))
	}
	return dirs
}

// FindProjectConfig searches upward from startDir for a project config file.
// It returns an empty path when there is none.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	return findUpward(ctx, startDir, ProjectConfigFiles...)
}

// FindStyleFile searches upward from startDir for an mdl style file.
func FindStyleFile(ctx context.Context, startDir string) (string, error) {
	return findUpward(ctx, startDir, StyleFileNames...)
}

// findUpward checks startDir and its parents for any of names. The search
// ends after a repository root, the home directory or the filesystem root.
func findUpward(ctx context.Context, startDir string, names ...string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("search %s: %w", dir, err)
		}
		if found := firstFile([]string{dir}, names...); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == xdg.Home || isRepoRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first regular file dir/name, trying each name in
// every directory before moving to the next directory.
func firstFile(dirs []string, names ...string) string {
	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path
			}
		}
	}
	return ""
}

func isRepoRoot(dir string) bool {
	for _, marker := range []string{".git", ".hg", ".svn"} {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
