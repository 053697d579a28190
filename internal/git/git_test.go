package git

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagedFiles_EmptyRepository(t *testing.T) {
	_, client := newTempRepo(t)

	files, err := client.StagedFiles(bg)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestStagedFiles_ListsIndexedChanges(t *testing.T) {
	dir, client := newTempRepo(t)
	writeFile(t, dir, "b.ts", "b")
	writeFile(t, dir, "a.ts", "a")
	runGit(t, dir, "add", "a.ts", "b.ts")

	files, err := client.StagedFiles(bg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ts", "b.ts"}, files)
}

func TestChangedFiles(t *testing.T) {
	dir, client := newTempRepo(t)
	writeFile(t, dir, "tracked.txt", "v1")
	writeFile(t, dir, ".gitignore", "ignored.log\n")
	commitAll(t, dir)

	writeFile(t, dir, "tracked.txt", "v2")
	writeFile(t, dir, "new.txt", "new")
	writeFile(t, dir, "ignored.log", "noise")

	files, err := client.ChangedFiles(bg)
	require.NoError(t, err)
	assert.Equal(t, []string{"new.txt", "tracked.txt"}, files)

	staged, err := client.StagedFiles(bg)
	require.NoError(t, err)
	assert.Empty(t, staged)
}

func TestChangedFiles_UnusualNames(t *testing.T) {
	dir, client := newTempRepo(t)
	writeFile(t, dir, "tracked.txt", "v1")
	commitAll(t, dir)

	writeFile(t, dir, "café.txt", "bonjour")
	writeFile(t, dir, "notes ", "trailing space")
	writeFile(t, dir, "with space.md", "hello")

	changed, err := client.ChangedFiles(bg)
	require.NoError(t, err)
	assert.Equal(t, []string{"café.txt", "notes ", "with space.md"}, changed)

	require.NoError(t, client.StageFiles(bg, changed))

	staged, err := client.StagedFiles(bg)
	require.NoError(t, err)
	assert.Equal(t, []string{"café.txt", "notes ", "with space.md"}, staged)
}

func TestStageFiles_GlobCharactersAreLiteral(t *testing.T) {
	dir, client := newTempRepo(t)
	writeFile(t, dir, "a*.txt", "star")
	writeFile(t, dir, "ab.txt", "other")

	require.NoError(t, client.StageFiles(bg, []string{"a*.txt"}))

	staged, err := client.StagedFiles(bg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a*.txt"}, staged)
}

func TestChangedFiles_CleanTree(t *testing.T) {
	dir, client := newTempRepo(t)
	writeFile(t, dir, "tracked.txt", "v1")
	commitAll(t, dir)

	files, err := client.ChangedFiles(bg)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestStageFiles(t *testing.T) {
	dir, client := newTempRepo(t)
	writeFile(t, dir, "b.ts", "console.log(1)\n")

	require.NoError(t, client.StageFiles(bg, []string{"b.ts"}))

	staged, err := client.StagedFiles(bg)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.ts"}, staged)
}

func TestStageFiles_EmptySetIsNoop(t *testing.T) {
	_, client := newTempRepo(t)
	assert.NoError(t, client.StageFiles(bg, nil))
}

func TestStageFiles_UnknownPath(t *testing.T) {
	_, client := newTempRepo(t)

	err := client.StageFiles(bg, []string{"missing.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stage files")
}

func TestDiff(t *testing.T) {
	dir, client := newTempRepo(t)
	writeFile(t, dir, "a.ts", "console.log(1)\n")
	writeFile(t, dir, "go.sum", "example.com/x v1.0.0 h1:abc\n")
	runGit(t, dir, "add", "a.ts", "go.sum")

	diff, err := client.Diff(bg, []string{"a.ts", "go.sum"})
	require.NoError(t, err)
	assert.Contains(t, diff, "+console.log(1)")
	assert.NotContains(t, diff, "go.sum")
}

func TestDiff_UnusualNames(t *testing.T) {
	dir, client := newTempRepo(t)
	writeFile(t, dir, "café.txt", "bonjour\n")
	writeFile(t, dir, "with space.md", "hello\n")
	runGit(t, dir, "add", "--", "café.txt", "with space.md")

	staged, err := client.StagedFiles(bg)
	require.NoError(t, err)

	diff, err := client.Diff(bg, staged)
	require.NoError(t, err)
	assert.Contains(t, diff, "+bonjour")
	assert.Contains(t, diff, "+hello")
}

func TestDiff_OnlyLockFiles(t *testing.T) {
	dir, client := newTempRepo(t)
	writeFile(t, dir, "go.sum", "example.com/x v1.0.0 h1:abc\n")
	runGit(t, dir, "add", "go.sum")

	diff, err := client.Diff(bg, []string{"go.sum"})
	require.NoError(t, err)
	assert.Contains(t, diff, "go.sum")
}

func TestDiff_EmptySet(t *testing.T) {
	_, client := newTempRepo(t)

	diff, err := client.Diff(bg, nil)
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestHooksDir(t *testing.T) {
	dir, client := newTempRepo(t)

	hooks, err := client.HooksDir(bg)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(dir, ".git", "hooks"))
	if err != nil {
		want = filepath.Join(dir, ".git", "hooks")
	}
	got, err := filepath.EvalSymlinks(hooks)
	if err != nil {
		got = hooks
	}
	assert.Equal(t, want, got)
}

func TestIsGitRepository(t *testing.T) {
	_, client := newTempRepo(t)
	assert.True(t, client.IsGitRepository(bg))

	outside := NewClient(Options{Dir: t.TempDir()})
	assert.False(t, outside.IsGitRepository(bg))
}

func TestFilterDiffFiles(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{name: "nil", files: nil, want: nil},
		{name: "keeps sources", files: []string{"main.go", "cmd/root.go"}, want: []string{"main.go", "cmd/root.go"}},
		{name: "drops nested lock files", files: []string{"web/yarn.lock", "go.sum", "a.ts"}, want: []string{"a.ts"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterDiffFiles(tt.files))
		})
	}
}
