package formatter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt(PromptOptions{})
	assert.Contains(t, prompt, "Conventional Commits")
	assert.Contains(t, prompt, `"en"`)
	assert.Contains(t, prompt, "Do not prefix the commit with an emoji")

	withEmoji := SystemPrompt(PromptOptions{Language: "de", Emoji: true})
	assert.Contains(t, withEmoji, `"de"`)
	assert.Contains(t, withEmoji, "gitmoji")
}

func TestUserPrompt(t *testing.T) {
	assert.Equal(t, "+console.log(1)", UserPrompt("+console.log(1)", PromptOptions{MaxDiffLength: 100}))
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		opts    PromptOptions
		want    string
	}{
		{name: "trims", message: "  feat: add log \n", want: "feat: add log"},
		{name: "keeps body", message: "feat: add log\n\nLog the value.", want: "feat: add log\n\nLog the value."},
		{name: "strips fence", message: "```\nfix: handle nil\n```", want: "fix: handle nil"},
		{name: "strips language fence", message: "```text\nfix: handle nil\n```\n", want: "fix: handle nil"},
		{name: "adds emoji", message: "feat: add log", opts: PromptOptions{Emoji: true}, want: "✨ feat: add log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMessage(tt.message, tt.opts))
		})
	}
}

func TestTruncateDiff_WithinLimit(t *testing.T) {
	diff := "diff --git a/a.ts b/a.ts\n+console.log(1)\n"
	assert.Equal(t, diff, TruncateDiff(diff, 1000))
	assert.Equal(t, diff, TruncateDiff(diff, 0))
}

func TestTruncateDiff_SingleFile(t *testing.T) {
	diff := "diff --git a/a.ts b/a.ts\n" + strings.Repeat("+x\n", 100)

	got := TruncateDiff(diff, 80)
	assert.LessOrEqual(t, len(got), 80)
	assert.True(t, strings.HasSuffix(got, truncatedMarker))
	assert.True(t, strings.HasPrefix(got, "diff --git a/a.ts b/a.ts"))
}

func TestTruncateDiff_KeepsEveryHeader(t *testing.T) {
	big := "diff --git a/big.go b/big.go\n" + strings.Repeat("+line\n", 200)
	small := "diff --git a/small.go b/small.go\n+tiny\n"

	got := TruncateDiff(big+small, 200)
	assert.Contains(t, got, "diff --git a/big.go b/big.go")
	assert.Contains(t, got, "diff --git a/small.go b/small.go")
	assert.Contains(t, got, "(1 of 2 files shortened)")
	assert.LessOrEqual(t, len(got), 200)
	assert.Contains(t, got, "+tiny\n")
}

func TestTruncateDiff_NeverExceedsLimit(t *testing.T) {
	var diff strings.Builder
	for _, name := range []string{"a.go", "b.go", "c.go", "d.go"} {
		diff.WriteString("diff --git a/" + name + " b/" + name + "\n")
		diff.WriteString(strings.Repeat("+héllo wörld\n", 40))
	}

	for _, limit := range []int{10, 40, 120, 180, 300, 700} {
		got := TruncateDiff(diff.String(), limit)
		assert.LessOrEqual(t, len(got), limit, "limit %d", limit)
		assert.True(t, utf8.ValidString(got), "limit %d", limit)
	}
}

func TestTruncateToValidUTF8(t *testing.T) {
	input := "héllo"
	got := truncateToValidUTF8(input, 2)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "h", got)
	assert.Equal(t, input, truncateToValidUTF8(input, 100))
}
