// Package testutil provides test infrastructure, fixtures, and helpers for link-skills.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MakeCatalog creates a catalog root holding one skill directory with a
// SKILL.md marker per id, and returns the root.
func MakeCatalog(t *testing.T, root string, ids ...string) string {
	t.Helper()
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create catalog root %s: %v", root, err)
	}
	for _, id := range ids {
		WriteFile(t, filepath.Join(root, id, "SKILL.md"), "# "+id+"\n")
	}
	return root
}

// MakeProject creates a Node project at dir with the shared skills package
// installed under node_modules/<pkg>, and returns the catalog root.
func MakeProject(t *testing.T, dir, pkg string, ids ...string) string {
	t.Helper()
	WriteFile(t, filepath.Join(dir, "package.json"), `{"name": "consumer"}`+"\n")
	return MakeCatalog(t, filepath.Join(dir, "node_modules", filepath.FromSlash(pkg), "skills"), ids...)
}

// WriteFile writes contents to path, creating parent directories.
func WriteFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll error = %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
}

// Symlink creates a symlink at link pointing to target, creating parent directories.
func Symlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("MkdirAll error = %v", err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Symlink error = %v", err)
	}
}
