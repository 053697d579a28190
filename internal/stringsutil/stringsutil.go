package stringsutil

import (
	"sort"
	"strings"
)

// SplitNUL splits NUL-terminated output such as "git ls-files -z". Fields
// are returned verbatim, since paths may legally start or end with spaces.
func SplitNUL(s string) []string {
	var fields []string
	for _, field := range strings.Split(s, "\x00") {
		if field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}

// UniqueSorted returns the distinct values in sorted order, or nil when
// values is empty.
func UniqueSorted(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		unique = append(unique, value)
	}
	sort.Strings(unique)
	return unique
}
