package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jenquist/shared-agent-skills/internal/reconcile"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create or update all skill symlinks",
	Long: `Create a <skill>.md symlink in the target directory for every skill in
the catalog. Missing links are created, and stale links or plain files with
a skill's name are replaced. Links that are already correct are left alone.

Files in the target directory that do not match a skill name are never
touched.`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	return runMode(cmd, reconcile.ModeApply)
}
