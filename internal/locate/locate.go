// Package locate finds the directories link-skills works against: the
// consuming project's root, its git root, and the installed catalog.
package locate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	skerrors "github.com/jenquist/shared-agent-skills/internal/errors"
)

const (
	// ProjectMarker identifies a project root.
	ProjectMarker = "package.json"

	// GitMarker identifies a git work tree root. It may be a file for
	// worktrees and submodules.
	GitMarker = ".git"

	// CatalogDir is the catalog directory inside the shared package.
	CatalogDir = "skills"
)

// ErrNotFound is returned by FindUp when no ancestor holds the name.
var ErrNotFound = errors.New("not found in any parent directory")

// FindUp returns the nearest directory, starting at start and walking up to
// the filesystem root, that contains an entry called name.
func FindUp(start, name string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Lstat(filepath.Join(dir, name)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// ProjectRoot returns the nearest ancestor of start holding a package.json.
func ProjectRoot(start string) (string, error) {
	dir, err := FindUp(start, ProjectMarker)
	if err != nil {
		return "", skerrors.ProjectNotFound(start)
	}
	return dir, nil
}

// GitRoot returns the nearest ancestor of start holding a .git entry.
func GitRoot(start string) (string, error) {
	dir, err := FindUp(start, GitMarker)
	if err != nil {
		return "", skerrors.GitRootNotFound(start)
	}
	return dir, nil
}

// PackageDir returns where npm installs pkg for the project, handling
// scoped names like @scope/name.
func PackageDir(projectRoot, pkg string) string {
	return filepath.Join(projectRoot, "node_modules", filepath.FromSlash(pkg))
}

// CatalogRoot returns the skills directory of the first package in packages
// installed in the project's node_modules.
func CatalogRoot(projectRoot string, packages []string) (string, error) {
	for _, pkg := range packages {
		dir := filepath.Join(PackageDir(projectRoot, pkg), CatalogDir)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", skerrors.CatalogUnavailable(projectRoot, packages)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}

// Resolve expands path and makes it absolute against base.
func Resolve(base, path string) string {
	path = ExpandPath(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
