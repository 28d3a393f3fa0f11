package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jenquist/shared-agent-skills/internal/catalog"
	"github.com/jenquist/shared-agent-skills/internal/locate"
	"github.com/jenquist/shared-agent-skills/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available skills",
	Long: `List the skills in the catalog. With --verbose, each skill's description
from its SKILL.md frontmatter is shown.

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, locate.ProjectRoot)
	if err != nil {
		return err
	}
	defer s.Close()

	cat, err := s.loadCatalog()
	if err != nil {
		return err
	}

	items := make([]report.ListItem, 0, cat.Len())
	for _, id := range cat.IDs {
		item := report.ListItem{Name: id, Path: cat.SkillDir(id)}
		meta, err := catalog.ReadMeta(cat.MarkerPath(id))
		if err != nil {
			s.logger.Warn("skipping unreadable frontmatter", "skill", id, "error", err)
		}
		item.Description = meta.Description
		items = append(items, item)
	}

	if listJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	s.printer.List(items)
	return nil
}
