package gitcmd

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestResult(t *testing.T) {
	r := Result{Stdout: []byte(" a.ts\nb.ts \n\n"), Stderr: []byte("warn\n")}

	assert.Equal(t, "a.ts\nb.ts", r.StdoutString(true))
	assert.Equal(t, " a.ts\nb.ts \n\n", r.StdoutString(false))
	assert.Equal(t, "warn", r.StderrString(true))
	assert.Nil(t, Result{}.Paths())

	listing := Result{Stdout: []byte("notes \x00café.txt\x00")}
	assert.Equal(t, []string{"notes ", "café.txt"}, listing.Paths())
}

func TestRun_LogsCommands(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	core, logs := observer.New(zapcore.DebugLevel)
	runner := Runner{Dir: t.TempDir(), Logger: zap.New(core)}

	result, err := runner.Run(context.Background(), "--version")
	require.NoError(t, err)
	assert.Contains(t, result.StdoutString(true), "git version")

	entries := logs.FilterMessage("running git").All()
	require.Len(t, entries, 1)
	assert.Equal(t, []any{"--version"}, toAny(entries[0].ContextMap()["args"]))
}

func TestRun_FailureCapturesStderr(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	core, logs := observer.New(zapcore.DebugLevel)
	runner := Runner{Dir: t.TempDir(), Logger: zap.New(core)}

	result, err := runner.Run(context.Background(), "rev-parse", "--show-toplevel")
	require.Error(t, err)
	assert.NotEmpty(t, result.StderrString(true))
	assert.Equal(t, 1, logs.FilterMessage("git failed").Len())
}

func TestRun_NilLogger(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	runner := Runner{Dir: t.TempDir()}
	assert.NotPanics(t, func() {
		_, _ = runner.Run(context.Background(), "--version")
	})
}

func toAny(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case []string:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	}
	return nil
}
