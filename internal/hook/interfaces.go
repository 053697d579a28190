// Package hook runs the prepare-commit-msg flow: stage if needed, ask the
// model for a message and prepend it to the message file.
package hook

import (
	"context"

	"github.com/samzong/hookmsg/internal/config"
	"github.com/samzong/hookmsg/internal/llm"
)

// VCS abstracts the git operations the hook needs. Empty results are nil
// slices, not errors.
type VCS interface {
	StagedFiles(ctx context.Context) ([]string, error)
	ChangedFiles(ctx context.Context) ([]string, error)
	StageFiles(ctx context.Context, files []string) error
	Diff(ctx context.Context, files []string) (string, error)
}

// ConfigProvider reads the persisted settings.
type ConfigProvider interface {
	GetConfig() (*config.Config, error)
}

// Generator produces a commit message for a diff.
type Generator interface {
	Generate(ctx context.Context, diff string) llm.Result
}

// GeneratorFactory builds a Generator once the configuration is known.
type GeneratorFactory func(cfg *config.Config) Generator

// Reporter renders progress for the user.
type Reporter interface {
	Intro(title string)
	Start(message string)
	Stop(message string)
	Outro(message string)
	Fail(err error)
}
