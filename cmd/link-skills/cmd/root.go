package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time via ldflags
	Version = "dev"

	// Global flags
	verbose    bool
	workDir    string
	targetDir  string
	sourceDir  string
	configFile string
	noColor    bool

	// Compatibility flags on the root command
	rootCheck bool
	rootClean bool
	rootList  bool
)

// ErrReported marks a failure whose details were already printed, such as
// entries that failed or mismatched. main exits 1 without printing it again.
var ErrReported = errors.New("link-skills: run reported failures")

var rootCmd = &cobra.Command{
	Use:   "link-skills",
	Short: "Symlink shared agent skills into your project",
	Long: `link-skills links every skill of the shared skills package into the
project's skills directory as <skill>.md symlinks.

With no subcommand it creates or updates all links. The shared package is
found in node_modules as @jenquist/shared-agent-skills or shared-agent-skills,
from the nearest directory holding a package.json.

  link-skills                Create/update all symlinks
  link-skills check          Verify symlinks are correct
  link-skills clean          Remove all managed symlinks
  link-skills list           List available skills
  link-skills install-hooks  Re-link after every git pull`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show every entry and debug logs")
	rootCmd.PersistentFlags().StringVarP(&workDir, "workdir", "C", "", "working directory (default: current)")
	rootCmd.PersistentFlags().StringVarP(&targetDir, "target", "t", "", "target directory, relative to the project root (default: .claude/skills)")
	rootCmd.PersistentFlags().StringVar(&sourceDir, "source", "", "catalog directory to link from instead of the installed package")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: .link-skills.toml in the project root)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.Flags().BoolVar(&rootCheck, "check", false, "verify symlinks are correct (same as 'check')")
	rootCmd.Flags().BoolVar(&rootClean, "clean", false, "remove all managed symlinks (same as 'clean')")
	rootCmd.Flags().BoolVar(&rootList, "list", false, "list available skills (same as 'list')")
	rootCmd.MarkFlagsMutuallyExclusive("check", "clean", "list")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("link-skills {{.Version}}\n")
}

func runRoot(cmd *cobra.Command, args []string) error {
	switch {
	case rootList:
		return runList(cmd, args)
	case rootCheck:
		return runCheck(cmd, args)
	case rootClean:
		return runClean(cmd, args)
	default:
		return runApply(cmd, args)
	}
}
