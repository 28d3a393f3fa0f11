package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/jenquist/shared-agent-skills/internal/testutil"
)

const testPackage = "@jenquist/shared-agent-skills"

// resetFlags restores every package-level flag variable after the test.
func resetFlags(t *testing.T) {
	t.Helper()

	oldVerbose, oldWorkDir, oldTarget, oldSource := verbose, workDir, targetDir, sourceDir
	oldConfig, oldNoColor := configFile, noColor
	oldCheck, oldClean, oldList := rootCheck, rootClean, rootList
	oldJSON, oldTemplate := listJSON, hookTemplate

	t.Cleanup(func() {
		verbose, workDir, targetDir, sourceDir = oldVerbose, oldWorkDir, oldTarget, oldSource
		configFile, noColor = oldConfig, oldNoColor
		rootCheck, rootClean, rootList = oldCheck, oldClean, oldList
		listJSON, hookTemplate = oldJSON, oldTemplate
	})

	noColor = true
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

// setupProject creates a project with the shared package holding ids and
// points --workdir at it. It returns the project dir and catalog root.
func setupProject(t *testing.T, ids ...string) (string, string) {
	t.Helper()
	resetFlags(t)

	dir := t.TempDir()
	catalogRoot := testutil.MakeProject(t, dir, testPackage, ids...)
	workDir = dir
	return dir, catalogRoot
}

// execute calls run with cmd wired to fresh output buffers.
func execute(t *testing.T, cmd *cobra.Command, run func(*cobra.Command, []string) error) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})

	err := run(cmd, nil)
	return out.String(), errOut.String(), err
}

func skillLink(dir, id string) string {
	return filepath.Join(dir, ".claude", "skills", id+".md")
}
