package gitcmd

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/samzong/hookmsg/internal/stringsutil"
	"go.uber.org/zap"
)

// Runner executes git commands with shared logging and output handling.
type Runner struct {
	Dir    string
	Env    []string
	Logger *zap.Logger
}

// Result contains captured stdout/stderr for a git command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

func (r Result) StdoutString(trim bool) string {
	output := string(r.Stdout)
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

func (r Result) StderrString(trim bool) string {
	output := string(r.Stderr)
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

// Paths splits the stdout of a -z listing into untrimmed, unquoted paths.
func (r Result) Paths() []string {
	return stringsutil.SplitNUL(string(r.Stdout))
}

func (r Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r Runner) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd
}

// Run executes a git command and captures stdout/stderr.
func (r Runner) Run(ctx context.Context, args ...string) (Result, error) {
	cmd := r.command(ctx, args...)
	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	r.logger().Debug("running git", zap.Strings("args", args), zap.String("dir", r.Dir))
	err := cmd.Run()
	if err != nil {
		r.logger().Debug("git failed",
			zap.Strings("args", args),
			zap.String("stderr", strings.TrimSpace(errBuf.String())),
			zap.Error(err))
	}
	return Result{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes()}, err
}
