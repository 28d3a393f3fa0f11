package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertFileExists asserts that a file exists.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file %s to exist", path)
	}
}

// AssertFileContains asserts that a file contains a substring.
func AssertFileContains(t *testing.T, path, substring string) {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Failed to read file %s: %v", path, err)
		return
	}
	if !strings.Contains(string(content), substring) {
		t.Errorf("Expected file %s to contain %q", path, substring)
	}
}

// AssertDirExists asserts that a directory exists.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Expected directory %s to exist", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory", path)
	}
}

// AssertSymlink asserts that path is a symlink whose stored target is want.
func AssertSymlink(t *testing.T, path, want string) {
	t.Helper()
	got, err := os.Readlink(path)
	if err != nil {
		t.Errorf("Expected %s to be a symlink: %v", path, err)
		return
	}
	if got != want {
		t.Errorf("Expected %s to point to %q, got %q", path, want, got)
	}
}

// AssertLinkResolvesTo asserts that path is a symlink which, following one
// level of indirection from its own directory, names want.
func AssertLinkResolvesTo(t *testing.T, path, want string) {
	t.Helper()
	target, err := os.Readlink(path)
	if err != nil {
		t.Errorf("Expected %s to be a symlink: %v", path, err)
		return
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	if filepath.Clean(target) != filepath.Clean(want) {
		t.Errorf("Expected %s to resolve to %s, got %s", path, want, target)
	}
}

// AssertRegularFile asserts that path exists and is a regular file, not a link.
func AssertRegularFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected file %s to exist: %v", path, err)
		return
	}
	if !info.Mode().IsRegular() {
		t.Errorf("Expected %s to be a regular file, mode %s", path, info.Mode())
	}
}

// AssertNotExists asserts that nothing, not even a dangling link, exists at path.
func AssertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("Expected %s to not exist", path)
	}
}
