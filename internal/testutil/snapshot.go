package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// SnapshotDir describes every entry under dir, one line per entry, with its
// type and either its link target or a content hash. A missing dir yields
// "<absent>". Two equal snapshots mean nothing under dir changed.
func SnapshotDir(t *testing.T, dir string) string {
	t.Helper()

	if _, err := os.Lstat(dir); os.IsNotExist(err) {
		return "<absent>"
	}

	var lines []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			lines = append(lines, "L "+rel+" -> "+target)
		case info.IsDir():
			lines = append(lines, "D "+rel+" "+info.Mode().Perm().String())
		default:
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			sum := sha256.Sum256(data)
			lines = append(lines, "F "+rel+" "+hex.EncodeToString(sum[:8]))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to snapshot %s: %v", dir, err)
	}

	sort.Strings(lines)
	return strings.Join(lines, "\n")
}
