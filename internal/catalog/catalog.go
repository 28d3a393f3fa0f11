// Package catalog reads the set of linkable skills from a catalog root.
//
// A skill is an immediate subdirectory of the root that holds a SKILL.md
// marker file. The catalog is recomputed on every call and never persisted.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// MarkerName is the file that marks a directory as a linkable skill.
	MarkerName = "SKILL.md"

	// LinkExt is appended to a skill name to form its link name.
	LinkExt = ".md"
)

// Catalog is the ordered set of skills found under Root.
type Catalog struct {
	// Root is the absolute catalog root.
	Root string

	// IDs are the skill identifiers in directory listing order.
	IDs []string
}

// Entry pairs a skill with its expected link.
type Entry struct {
	// ID is the skill identifier.
	ID string

	// Source is the absolute path of the skill's marker file.
	Source string

	// Link is the absolute path of the link in the target directory.
	Link string
}

// Enumerate returns the names of the subdirectories of root that contain
// a SKILL.md marker. A missing root yields an empty result and no error.
// Names are not validated as safe path segments.
func Enumerate(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading catalog %s: %w", root, err)
	}

	var ids []string
	for _, e := range entries {
		if hasMarker(filepath.Join(root, e.Name())) {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}

// hasMarker reports whether dir holds a SKILL.md file. Symlinks are
// followed, so a linked skill directory or marker counts.
func hasMarker(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, MarkerName))
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Load enumerates root and returns the catalog with an absolute root.
func Load(root string) (*Catalog, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog root: %w", err)
	}

	ids, err := Enumerate(abs)
	if err != nil {
		return nil, err
	}

	return &Catalog{Root: abs, IDs: ids}, nil
}

// Len returns the number of skills in the catalog.
func (c *Catalog) Len() int {
	return len(c.IDs)
}

// SkillDir returns the directory of a skill.
func (c *Catalog) SkillDir(id string) string {
	return filepath.Join(c.Root, id)
}

// MarkerPath returns the path of a skill's SKILL.md.
func (c *Catalog) MarkerPath(id string) string {
	return filepath.Join(c.Root, id, MarkerName)
}

// LinkPath returns the link path for a skill inside targetDir.
func LinkPath(targetDir, id string) string {
	return filepath.Join(targetDir, id+LinkExt)
}

// Entries pairs every skill with its link inside targetDir, in catalog order.
func (c *Catalog) Entries(targetDir string) []Entry {
	entries := make([]Entry, 0, len(c.IDs))
	for _, id := range c.IDs {
		entries = append(entries, Entry{
			ID:     id,
			Source: c.MarkerPath(id),
			Link:   LinkPath(targetDir, id),
		})
	}
	return entries
}
