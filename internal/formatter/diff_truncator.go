package formatter

import (
	"fmt"
	"sort"
	"strings"
)

const truncatedMarker = "...(content is too long, truncated)"

// diffFile is one "diff --git" section of a unified diff.
type diffFile struct {
	header string
	body   string
}

// TruncateDiff keeps diff within limit bytes, truncation marker included.
// Every file keeps its header so the model still sees which paths changed,
// and bodies share what is left. A non-positive limit disables truncation.
func TruncateDiff(diff string, limit int) string {
	if limit <= 0 || len(diff) <= limit {
		return diff
	}

	files := splitDiff(diff)
	if len(files) <= 1 {
		return truncatePlain(diff, limit)
	}

	// Room for the summary line and one newline after each shortened body.
	reserved := len(summary(len(files), len(files))) + len(files)
	headers := 0
	for _, f := range files {
		headers += len(f.header) + 1
	}
	if headers+reserved >= limit {
		return truncatePlain(diff, limit)
	}

	allowance := allocate(files, limit-headers-reserved)

	var b strings.Builder
	omitted := 0
	for i, f := range files {
		b.WriteString(f.header)
		b.WriteString("\n")

		if allowance[i] >= len(f.body) {
			b.WriteString(f.body)
			continue
		}
		omitted++
		if allowance[i] > 0 {
			b.WriteString(truncateToValidUTF8(f.body, allowance[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString(summary(omitted, len(files)))
	return b.String()
}

func summary(shortened, total int) string {
	return fmt.Sprintf("%s (%d of %d files shortened)", truncatedMarker, shortened, total)
}

// truncatePlain cuts diff as a whole and appends the marker.
func truncatePlain(diff string, limit int) string {
	suffix := "\n" + truncatedMarker
	if limit <= len(suffix) {
		return truncateToValidUTF8(truncatedMarker, limit)
	}
	return truncateToValidUTF8(diff, limit-len(suffix)) + suffix
}

// allocate shares budget between file bodies, smallest first, so short
// files survive intact and large ones split what is left.
func allocate(files []diffFile, budget int) []int {
	order := make([]int, len(files))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(files[order[a]].body) < len(files[order[b]].body)
	})

	allowance := make([]int, len(files))
	for n, idx := range order {
		share := budget / (len(order) - n)
		if size := len(files[idx].body); size < share {
			share = size
		}
		allowance[idx] = share
		budget -= share
	}
	return allowance
}

func splitDiff(diff string) []diffFile {
	var files []diffFile
	var current *diffFile
	var body strings.Builder

	flush := func() {
		if current != nil {
			current.body = body.String()
			files = append(files, *current)
		}
		body.Reset()
	}

	for _, line := range strings.SplitAfter(diff, "\n") {
		if strings.HasPrefix(line, "diff --git ") {
			flush()
			current = &diffFile{header: strings.TrimRight(line, "\n")}
			continue
		}
		if current == nil {
			current = &diffFile{}
		}
		body.WriteString(line)
	}
	flush()

	return files
}
