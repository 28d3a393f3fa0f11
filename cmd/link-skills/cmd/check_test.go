package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	skerrors "github.com/jenquist/shared-agent-skills/internal/errors"
	"github.com/jenquist/shared-agent-skills/internal/testutil"
)

func TestCheckAllValid(t *testing.T) {
	setupProject(t, "alpha", "beta")
	if _, _, err := execute(t, applyCmd, runApply); err != nil {
		t.Fatalf("runApply() error = %v", err)
	}
	verbose = true

	out, _, err := execute(t, checkCmd, runCheck)
	if err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}
	if !strings.Contains(out, "  OK: alpha.md") || !strings.Contains(out, "  OK: beta.md") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "Symlink check: 2 valid, 0 mismatched, 0 errors") {
		t.Errorf("output = %q", out)
	}
}

func TestCheckStaleLink(t *testing.T) {
	dir, _ := setupProject(t, "alpha", "beta")
	if _, _, err := execute(t, applyCmd, runApply); err != nil {
		t.Fatalf("runApply() error = %v", err)
	}
	if err := os.Remove(skillLink(dir, "beta")); err != nil {
		t.Fatal(err)
	}
	testutil.Symlink(t, "../../old-package/skills/beta/SKILL.md", skillLink(dir, "beta"))
	before := testutil.SnapshotDir(t, filepath.Join(dir, ".claude", "skills"))

	out, errOut, err := execute(t, checkCmd, runCheck)
	if !errors.Is(err, ErrReported) {
		t.Fatalf("runCheck() error = %v, want ErrReported", err)
	}
	if !skerrors.HasCode(err, skerrors.CodeMismatch) {
		t.Errorf("runCheck() error = %v, want CHECK_001 inside", err)
	}
	if !strings.Contains(out, "Symlink check: 1 valid, 1 mismatched, 0 errors") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(errOut, "MISMATCH: beta.md") || strings.Contains(errOut, "alpha.md") {
		t.Errorf("stderr = %q", errOut)
	}
	if after := testutil.SnapshotDir(t, filepath.Join(dir, ".claude", "skills")); after != before {
		t.Errorf("check changed the target:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

func TestCheckDoesNotCreateTarget(t *testing.T) {
	dir, _ := setupProject(t, "alpha", "beta")

	out, _, err := execute(t, checkCmd, runCheck)
	if !errors.Is(err, ErrReported) {
		t.Fatalf("runCheck() error = %v, want ErrReported", err)
	}
	if !strings.Contains(out, "0 valid, 2 mismatched") {
		t.Errorf("output = %q", out)
	}
	testutil.AssertNotExists(t, filepath.Join(dir, ".claude"))
}

func TestCheckEmptyCatalog(t *testing.T) {
	setupProject(t)

	out, _, err := execute(t, checkCmd, runCheck)
	if err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}
	if !strings.Contains(out, "Symlink check: 0 valid, 0 mismatched, 0 errors") {
		t.Errorf("output = %q", out)
	}
}
