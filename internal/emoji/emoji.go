package emoji

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// emojiMap maps conventional commit types to gitmoji.
var emojiMap = map[string]string{
	"feat":     "✨",
	"fix":      "🐛",
	"docs":     "📝",
	"style":    "💄",
	"refactor": "♻️",
	"perf":     "⚡",
	"test":     "✅",
	"chore":    "🔧",
	"build":    "🏗️",
	"ci":       "👷",
	"revert":   "⏪",
	"deps":     "⬆️",
	"security": "🔒",
}

var commitTypeRegex = regexp.MustCompile(`^([a-zA-Z]+)(?:\([^)]+\))?!?:`)

// ForType returns the emoji for a commit type, or "" when unknown.
func ForType(commitType string) string {
	return emojiMap[strings.ToLower(commitType)]
}

// CommitTypes returns all supported commit types in alphabetical order.
func CommitTypes() []string {
	types := make([]string, 0, len(emojiMap))
	for t := range emojiMap {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Prefix prepends the emoji matching the subject line's commit type.
// Messages that already start with an emoji or carry no recognizable type
// are returned unchanged.
func Prefix(message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return message
	}

	first, _ := utf8.DecodeRuneInString(message)
	if isEmoji(first) {
		return message
	}

	matches := commitTypeRegex.FindStringSubmatch(message)
	if len(matches) < 2 {
		return message
	}

	e := ForType(matches[1])
	if e == "" {
		return message
	}
	return e + " " + message
}

func isEmoji(r rune) bool {
	return (r >= 0x1F000 && r <= 0x1FAFF) ||
		(r >= 0x2600 && r <= 0x27BF) ||
		(r >= 0x2B00 && r <= 0x2BFF) ||
		(r >= 0x23E9 && r <= 0x23FA)
}
