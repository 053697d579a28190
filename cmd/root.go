package cmd

import (
	"context"
	"fmt"

	"github.com/samzong/hookmsg/internal/config"
	"github.com/samzong/hookmsg/internal/git"
	"github.com/samzong/hookmsg/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
	// gitDir is the repository the git commands run in; empty means the
	// working directory.
	gitDir  string
	execCtx = context.Background()
	rootCmd = &cobra.Command{
		Use:   "hookmsg",
		Short: "hookmsg - LLM commit messages from a git hook",
		Long: `hookmsg is a prepare-commit-msg git hook that summarizes the staged ` +
			`diff with an LLM and prepends the result to the commit message.`,
		Version:       fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(execCtx)
}

// SetContext sets the context passed to every command.
func SetContext(ctx context.Context) {
	execCtx = ctx
}

// RootCmd exposes the command tree for documentation generation.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default is $HOME/.hookmsg.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Log git commands and hook decisions to stderr")
}

func newLogger() *zap.Logger {
	return logging.New(verbose, errWriter())
}

func newConfigProvider() (*config.Provider, error) {
	return config.NewProvider(cfgFile)
}

func newGitClient(logger *zap.Logger) *git.Client {
	return git.NewClient(git.Options{Dir: gitDir, Logger: logger})
}
