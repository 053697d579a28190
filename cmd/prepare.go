package cmd

import (
	"time"

	"github.com/samzong/hookmsg/internal/config"
	"github.com/samzong/hookmsg/internal/formatter"
	"github.com/samzong/hookmsg/internal/hook"
	"github.com/samzong/hookmsg/internal/llm"
	"github.com/samzong/hookmsg/internal/ui"
	"github.com/spf13/cobra"
)

var (
	prepareCmd = &cobra.Command{
		Use:   hook.HookName + " <message-file> [commit-source] [commit-sha]",
		Short: "Run as the prepare-commit-msg git hook",
		Long: `Generate a commit message for the staged changes and prepend it to the
message file. Git calls this through the hook installed by 'hookmsg hook set'.

When nothing is staged, all changed files are staged first. Merge, amend,
template and -m commits (any commit source) are left untouched.`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrepareCommitMsg(cmd, args)
		},
	}

	// newGenerator is replaced in tests to avoid network access.
	newGenerator hook.GeneratorFactory = func(cfg *config.Config) hook.Generator {
		return llm.NewClient(llmOptions(cfg))
	}
)

func init() {
	rootCmd.AddCommand(prepareCmd)
}

func runPrepareCommitMsg(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	orchestrator := hook.NewOrchestrator(
		newGitClient(logger),
		lazyConfigProvider{},
		newGenerator,
		ui.NewReporter(errWriter()),
		logger,
	)
	return orchestrator.Run(cmd.Context(), args)
}

// lazyConfigProvider resolves the dotfile only when the hook reaches the
// configuration step, so silent invocations never depend on $HOME.
type lazyConfigProvider struct{}

func (lazyConfigProvider) GetConfig() (*config.Config, error) {
	provider, err := newConfigProvider()
	if err != nil {
		return nil, err
	}
	return provider.GetConfig()
}

func llmOptions(cfg *config.Config) llm.Options {
	return llm.Options{
		APIKey:  cfg.APIKey,
		APIBase: cfg.APIBase,
		Model:   cfg.Model,
		Timeout: time.Duration(cfg.Timeout) * time.Second,
		Prompt: formatter.PromptOptions{
			Language:      cfg.Language,
			Emoji:         cfg.Emoji,
			MaxDiffLength: cfg.MaxDiffLength,
		},
	}
}
