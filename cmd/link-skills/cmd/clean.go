package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jenquist/shared-agent-skills/internal/reconcile"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all managed symlinks",
	Long: `Remove the <skill>.md entry of every skill in the catalog from the target
directory. Other files in the directory are kept.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runMode(cmd, reconcile.ModeClean)
}
