package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	skerrors "github.com/jenquist/shared-agent-skills/internal/errors"
	"github.com/jenquist/shared-agent-skills/internal/testutil"
)

func setupRepo(t *testing.T) string {
	t.Helper()
	resetFlags(t)

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git", "hooks"), 0755); err != nil {
		t.Fatal(err)
	}
	workDir = dir
	return dir
}

func readHook(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, ".git", "hooks", "post-merge"))
	if err != nil {
		t.Fatalf("reading hook: %v", err)
	}
	return string(data)
}

func TestInstallHooksFresh(t *testing.T) {
	dir := setupRepo(t)

	out, _, err := execute(t, installHooksCmd, runInstallHooks)
	if err != nil {
		t.Fatalf("runInstallHooks() error = %v", err)
	}
	if !strings.Contains(out, "Installed post-merge hook.") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "Skills will now auto-update on `git pull`.") {
		t.Errorf("output = %q", out)
	}

	hook := readHook(t, dir)
	if !strings.Contains(hook, "npx link-skills") || !strings.Contains(hook, "shared-agent-skills") {
		t.Errorf("hook = %q", hook)
	}
}

func TestInstallHooksTwice(t *testing.T) {
	setupRepo(t)

	if _, _, err := execute(t, installHooksCmd, runInstallHooks); err != nil {
		t.Fatalf("first runInstallHooks() error = %v", err)
	}
	out, _, err := execute(t, installHooksCmd, runInstallHooks)
	if err != nil {
		t.Fatalf("second runInstallHooks() error = %v", err)
	}
	if !strings.Contains(out, "Hook already installed.") {
		t.Errorf("output = %q", out)
	}
}

func TestInstallHooksAppends(t *testing.T) {
	dir := setupRepo(t)
	existing := "#!/bin/sh\nmake deps\n"
	testutil.WriteFile(t, filepath.Join(dir, ".git", "hooks", "post-merge"), existing)

	out, _, err := execute(t, installHooksCmd, runInstallHooks)
	if err != nil {
		t.Fatalf("runInstallHooks() error = %v", err)
	}
	if !strings.Contains(out, "Backed up existing hook to:") {
		t.Errorf("output = %q", out)
	}

	hook := readHook(t, dir)
	if !strings.HasPrefix(hook, existing+"\n\n# --- Added by @jenquist/shared-agent-skills ---\n") {
		t.Errorf("hook = %q", hook)
	}
	testutil.AssertFileContains(t, filepath.Join(dir, ".git", "hooks", "post-merge.backup"), "make deps")
}

func TestInstallHooksConfiguredCommand(t *testing.T) {
	dir := setupRepo(t)
	testutil.WriteFile(t, filepath.Join(dir, ".link-skills.toml"), "[hook]\ncommand = \"pnpm exec link-skills\"\n")

	if _, _, err := execute(t, installHooksCmd, runInstallHooks); err != nil {
		t.Fatalf("runInstallHooks() error = %v", err)
	}
	if hook := readHook(t, dir); !strings.Contains(hook, "pnpm exec link-skills") {
		t.Errorf("hook = %q", hook)
	}
}

func TestInstallHooksTemplate(t *testing.T) {
	dir := setupRepo(t)
	testutil.WriteFile(t, filepath.Join(dir, "hooks", "post-merge"), "#!/bin/sh\n# shared-agent-skills custom\n{{.Command}} -v\n")
	hookTemplate = "hooks/post-merge"

	if _, _, err := execute(t, installHooksCmd, runInstallHooks); err != nil {
		t.Fatalf("runInstallHooks() error = %v", err)
	}
	if hook := readHook(t, dir); hook != "#!/bin/sh\n# shared-agent-skills custom\nnpx link-skills -v\n" {
		t.Errorf("hook = %q", hook)
	}
}

func TestInstallHooksMissingTemplate(t *testing.T) {
	setupRepo(t)
	hookTemplate = "does-not-exist"

	_, _, err := execute(t, installHooksCmd, runInstallHooks)
	if !skerrors.HasCode(err, skerrors.CodeHookTemplateMissing) {
		t.Errorf("runInstallHooks() error = %v, want HOOK_001", err)
	}
}

func TestInstallHooksOutsideRepo(t *testing.T) {
	resetFlags(t)
	if _, err := os.Stat("/.git"); err == nil {
		t.Skip("filesystem root is a git repository")
	}
	workDir = "/"

	_, _, err := execute(t, installHooksCmd, runInstallHooks)
	if !skerrors.HasCode(err, skerrors.CodeGitRootNotFound) {
		t.Errorf("runInstallHooks() error = %v, want GIT_001", err)
	}
}
