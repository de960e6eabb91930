package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// linePatch renders a line level patch of before -> after, capped at limit bytes.
func linePatch(before, after string, limit int) (string, bool) {
	if before == after {
		return "", false
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	oldLine, newLine := 1, 1
	inHunk := false
	for _, d := range diffs {
		chunk := splitLines(d.Text)
		if d.Type == diffmatchpatch.DiffEqual {
			oldLine += len(chunk)
			newLine += len(chunk)
			inHunk = false
			continue
		}
		if !inHunk {
			fmt.Fprintf(&sb, "@@ -%d +%d @@\n", oldLine, newLine)
			inHunk = true
		}
		prefix := "+"
		if d.Type == diffmatchpatch.DiffDelete {
			prefix = "-"
			oldLine += len(chunk)
		} else {
			newLine += len(chunk)
		}
		for _, line := range chunk {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	ret := sb.String()
	if limit > 0 && len(ret) > limit {
		return truncate(ret, limit), true
	}
	return ret, false
}

// truncate cuts text to at most limit bytes, at the last line end when there is one,
// otherwise at a rune boundary.
func truncate(text string, limit int) string {
	head := text[:limit]
	if i := strings.LastIndexByte(head, '\n'); i >= 0 {
		return head[:i+1]
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
