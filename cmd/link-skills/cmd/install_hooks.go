package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jenquist/shared-agent-skills/internal/hook"
	"github.com/jenquist/shared-agent-skills/internal/locate"
)

var installHooksCmd = &cobra.Command{
	Use:   "install-hooks",
	Short: "Install a git post-merge hook that re-links skills",
	Long: `Install a post-merge hook in the current git repository so skills are
re-linked after every git pull.

An existing post-merge hook is kept. It is backed up to post-merge.backup
and the skill update is appended to it. Running the command again is a
no-op once the hook is installed.

The hook runs hook.command from the config (default: npx link-skills).
Use --template to install a custom script instead of the built-in one.`,
	Args: cobra.NoArgs,
	RunE: runInstallHooks,
}

var hookTemplate string

func init() {
	installHooksCmd.Flags().StringVar(&hookTemplate, "template", "", "hook template file to install instead of the built-in one")
	rootCmd.AddCommand(installHooksCmd)
}

func runInstallHooks(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, locate.GitRoot)
	if err != nil {
		return err
	}
	defer s.Close()

	var script string
	if hookTemplate != "" {
		start, err := getWorkDir()
		if err != nil {
			return err
		}
		script, err = hook.LoadScript(locate.Resolve(start, hookTemplate), s.cfg.Hook.Command)
		if err != nil {
			return err
		}
	} else {
		script, err = hook.Script(s.cfg.Hook.Command)
		if err != nil {
			return err
		}
	}

	hooksDir, err := hook.HooksDir(s.root)
	if err != nil {
		return err
	}

	result, err := hook.Install(hooksDir, script)
	if err != nil {
		return err
	}
	s.logger.Debug("hook installed", "path", hook.Path(hooksDir), "result", result.String())

	s.printer.Hook(result, hook.Path(hooksDir))
	return nil
}
