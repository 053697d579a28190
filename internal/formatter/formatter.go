package formatter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samzong/hookmsg/internal/emoji"
)

// PromptOptions controls how the commit message is requested.
type PromptOptions struct {
	Language      string
	Emoji         bool
	MaxDiffLength int
}

// SystemPrompt instructs the model to answer with a bare commit message.
func SystemPrompt(opts PromptOptions) string {
	language := opts.Language
	if language == "" {
		language = "en"
	}

	var b strings.Builder
	b.WriteString("You are to act as the author of a commit message in git. ")
	b.WriteString("Your mission is to create clean and comprehensive commit messages following the Conventional Commits specification ")
	b.WriteString("and explain WHAT were the changes and WHY they were made. ")
	b.WriteString("I'll send you the output of 'git diff --staged' and you convert it into a commit message.\n")
	fmt.Fprintf(&b, "Use one of these types: %s.\n", strings.Join(emoji.CommitTypes(), ", "))
	if opts.Emoji {
		b.WriteString("Start the subject line with the gitmoji matching the type.\n")
	} else {
		b.WriteString("Do not prefix the commit with an emoji.\n")
	}
	b.WriteString("Use the present tense. Keep the subject line under 74 characters. ")
	b.WriteString("Reply with the commit message only, without code fences or commentary.\n")
	fmt.Fprintf(&b, "Write the commit message in the language with ISO code %q.", language)
	return b.String()
}

// UserPrompt wraps the diff, truncated to the configured budget.
func UserPrompt(diff string, opts PromptOptions) string {
	return TruncateDiff(diff, opts.MaxDiffLength)
}

// FormatMessage trims the model answer, strips code fences and applies the
// emoji prefix when enabled.
func FormatMessage(message string, opts PromptOptions) string {
	message = stripCodeFence(strings.TrimSpace(message))
	if opts.Emoji {
		message = emoji.Prefix(message)
	}
	return message
}

func stripCodeFence(message string) string {
	if !strings.HasPrefix(message, "```") {
		return message
	}

	lines := strings.Split(message, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func truncateToValidUTF8(input string, maxBytes int) string {
	if len(input) <= maxBytes {
		return input
	}

	end := maxBytes
	for end > 0 && !utf8.ValidString(input[:end]) {
		end--
	}

	return input[:end]
}
