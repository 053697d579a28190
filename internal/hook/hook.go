package hook

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Args are the positional arguments git passes to prepare-commit-msg.
type Args struct {
	MessageFile string
	Source      string
	CommitSHA   string
}

// ParseArgs reads (message file, commit source, commit sha) from argv.
func ParseArgs(argv []string) (Args, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return Args{}, newError(MissingArgument, errMissingArgument)
	}

	args := Args{MessageFile: argv[0]}
	if len(argv) > 1 {
		args.Source = argv[1]
	}
	if len(argv) > 2 {
		args.CommitSHA = argv[2]
	}
	return args, nil
}

// Orchestrator sequences one prepare-commit-msg invocation.
type Orchestrator struct {
	vcs          VCS
	config       ConfigProvider
	newGenerator GeneratorFactory
	reporter     Reporter
	logger       *zap.Logger
}

func NewOrchestrator(
	vcs VCS, cfg ConfigProvider, newGenerator GeneratorFactory, reporter Reporter, logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		vcs:          vcs,
		config:       cfg,
		newGenerator: newGenerator,
		reporter:     reporter,
		logger:       logger,
	}
}

// Run executes the hook. It returns nil on success and on the silent
// paths (commit source present, nothing staged after staging). Any failure
// is reported once and returned as *Error.
func (o *Orchestrator) Run(ctx context.Context, argv []string) error {
	err := o.run(ctx, argv)
	if err == nil {
		return nil
	}

	herr := classify(err)
	o.logger.Debug("hook failed", zap.Stringer("kind", herr.Kind), zap.Error(herr.Err))
	o.reporter.Fail(herr)
	return herr
}

func (o *Orchestrator) run(ctx context.Context, argv []string) error {
	args, err := ParseArgs(argv)
	if err != nil {
		return err
	}

	if args.Source != "" {
		o.logger.Debug("commit source present, leaving message untouched", zap.String("source", args.Source))
		return nil
	}

	staged, err := o.vcs.StagedFiles(ctx)
	if err != nil {
		return err
	}
	changed, err := o.vcs.ChangedFiles(ctx)
	if err != nil {
		return err
	}

	if len(staged) == 0 && len(changed) == 0 {
		return newError(NoChangesDetected, errNoChanges)
	}

	if len(staged) == 0 {
		o.logger.Debug("nothing staged, staging changed files", zap.Strings("files", changed))
		if err := o.vcs.StageFiles(ctx, changed); err != nil {
			return err
		}
	}

	staged, err = o.vcs.StagedFiles(ctx)
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		o.logger.Debug("nothing staged after staging step")
		return nil
	}

	o.reporter.Intro("hookmsg")

	cfg, err := o.config.GetConfig()
	if err != nil {
		return err
	}
	if cfg == nil || strings.TrimSpace(cfg.APIKey) == "" {
		return newError(MissingCredential, errNoAPIKey)
	}

	diff, err := o.vcs.Diff(ctx, staged)
	if err != nil {
		return err
	}

	o.reporter.Start("Generating commit message")
	result := o.newGenerator(cfg).Generate(ctx, diff)
	if !result.OK() {
		return newError(GenerationFailed, result.Err)
	}
	o.reporter.Stop("Done")

	return prependMessage(args.MessageFile, result.Message)
}

// prependMessage rewrites path as "<message>\n<original content>".
func prependMessage(path, message string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "cannot read commit message file")
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "cannot read commit message file")
	}

	content := make([]byte, 0, len(message)+1+len(original))
	content = append(content, message...)
	content = append(content, '\n')
	content = append(content, original...)

	if err := os.WriteFile(path, content, info.Mode().Perm()); err != nil {
		return errors.Wrap(err, "cannot write commit message file")
	}
	return nil
}
