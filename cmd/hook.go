package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/samzong/hookmsg/internal/hook"
	"github.com/spf13/cobra"
)

var (
	forceInstall bool

	hookCmd = &cobra.Command{
		Use:   "hook",
		Short: "Install or remove the prepare-commit-msg hook",
	}

	hookSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Install the hook in the current repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hooksDir, err := resolveHooksDir(cmd)
			if err != nil {
				return err
			}
			executable, err := executablePath()
			if err != nil {
				return err
			}

			path, err := hook.Install(hooksDir, executable, forceInstall)
			if err != nil {
				return err
			}
			fmt.Fprintf(outWriter(), "Hook installed at %s\n", path)
			return nil
		},
	}

	hookUnsetCmd = &cobra.Command{
		Use:   "unset",
		Short: "Remove the hook from the current repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hooksDir, err := resolveHooksDir(cmd)
			if err != nil {
				return err
			}
			if err := hook.Uninstall(hooksDir); err != nil {
				return err
			}
			fmt.Fprintln(outWriter(), "Hook removed")
			return nil
		},
	}

	hookStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show whether the hook is installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hooksDir, err := resolveHooksDir(cmd)
			if err != nil {
				return err
			}
			status, err := hook.InspectHook(hooksDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(outWriter(), "%s: %s\n", hook.HookPath(hooksDir), status)
			return nil
		},
	}

	executablePath = func() (string, error) {
		path, err := os.Executable()
		if err != nil {
			return "", errors.Wrap(err, "cannot locate the hookmsg executable")
		}
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			path = resolved
		}
		return path, nil
	}
)

func init() {
	hookSetCmd.Flags().BoolVarP(&forceInstall, "force", "f", false, "Replace an existing prepare-commit-msg hook")

	hookCmd.AddCommand(hookSetCmd)
	hookCmd.AddCommand(hookUnsetCmd)
	hookCmd.AddCommand(hookStatusCmd)
	rootCmd.AddCommand(hookCmd)
}

func resolveHooksDir(cmd *cobra.Command) (string, error) {
	client := newGitClient(newLogger())
	if !client.IsGitRepository(cmd.Context()) {
		return "", errors.New("not inside a git repository")
	}
	return client.HooksDir(cmd.Context())
}
