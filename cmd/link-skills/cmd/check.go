package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jenquist/shared-agent-skills/internal/reconcile"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify symlinks are correct",
	Long: `Report every skill whose link is missing or does not resolve to the
skill's SKILL.md. Nothing is changed. Exits 1 when any link is wrong.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	return runMode(cmd, reconcile.ModeCheck)
}
