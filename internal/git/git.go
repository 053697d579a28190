package git

import (
	"context"
	"path/filepath"

	"github.com/samzong/hookmsg/internal/gitcmd"
	"github.com/samzong/hookmsg/internal/gitutil"
	"github.com/samzong/hookmsg/internal/stringsutil"
	"go.uber.org/zap"
)

// Options configures a Client.
type Options struct {
	Dir    string
	Logger *zap.Logger
}

// Client reads and mutates the index of the repository at Dir.
type Client struct {
	runner gitcmd.Runner
}

func NewClient(opts Options) *Client {
	return &Client{runner: gitcmd.Runner{Dir: opts.Dir, Logger: opts.Logger}}
}

// excludedFromDiff lists generated files whose diffs only add noise to a prompt.
var excludedFromDiff = map[string]bool{
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
	"go.sum":            true,
	"Cargo.lock":        true,
}

// IsGitRepository reports whether Dir is inside a work tree.
func (c *Client) IsGitRepository(ctx context.Context) bool {
	result, err := c.runner.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && result.StdoutString(true) == "true"
}

// StagedFiles returns the paths currently in the index that differ from HEAD.
func (c *Client) StagedFiles(ctx context.Context) ([]string, error) {
	result, err := c.runner.Run(ctx, "diff", "--name-only", "--cached", "--relative", "-z")
	if err != nil {
		return nil, gitutil.WrapGitError("failed to list staged files", result, err)
	}
	return stringsutil.UniqueSorted(result.Paths()), nil
}

// ChangedFiles returns modified tracked files and untracked, non-ignored files.
func (c *Client) ChangedFiles(ctx context.Context) ([]string, error) {
	modified, err := c.runner.Run(ctx, "ls-files", "--modified", "-z")
	if err != nil {
		return nil, gitutil.WrapGitError("failed to list modified files", modified, err)
	}

	untracked, err := c.runner.Run(ctx, "ls-files", "--others", "--exclude-standard", "-z")
	if err != nil {
		return nil, gitutil.WrapGitError("failed to list untracked files", untracked, err)
	}

	return stringsutil.UniqueSorted(append(modified.Paths(), untracked.Paths()...)), nil
}

// StageFiles adds files to the index. Paths are matched literally, so names
// containing glob characters stage only themselves. An empty set is a no-op.
func (c *Client) StageFiles(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return nil
	}

	args := append([]string{"--literal-pathspecs", "add", "--"}, files...)
	result, err := c.runner.Run(ctx, args...)
	if err != nil {
		return gitutil.WrapGitError("failed to stage files", result, err)
	}
	return nil
}

// Diff returns the staged diff restricted to files. Lock files are skipped
// unless nothing else is staged.
func (c *Client) Diff(ctx context.Context, files []string) (string, error) {
	filtered := FilterDiffFiles(files)
	if len(filtered) == 0 {
		filtered = files
	}
	if len(filtered) == 0 {
		return "", nil
	}

	args := append([]string{"--literal-pathspecs", "diff", "--staged", "--"}, filtered...)
	result, err := c.runner.Run(ctx, args...)
	if err != nil {
		return "", gitutil.WrapGitError("failed to get staged diff", result, err)
	}
	return result.StdoutString(false), nil
}

// HooksDir resolves the hooks directory, honouring core.hooksPath.
func (c *Client) HooksDir(ctx context.Context) (string, error) {
	result, err := c.runner.Run(ctx, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", gitutil.WrapGitError("failed to resolve hooks directory", result, err)
	}

	dir := result.StdoutString(true)
	if !filepath.IsAbs(dir) && c.runner.Dir != "" {
		dir = filepath.Join(c.runner.Dir, dir)
	}
	return filepath.Abs(dir)
}

// FilterDiffFiles drops lock files that should not be summarized.
func FilterDiffFiles(files []string) []string {
	var filtered []string
	for _, file := range files {
		if excludedFromDiff[filepath.Base(file)] {
			continue
		}
		filtered = append(filtered, file)
	}
	return filtered
}
