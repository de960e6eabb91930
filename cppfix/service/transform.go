package service

import (
	"strings"
	"unicode/utf8"
)

// Result is the outcome of a single transformation run over SourceText.
type Result struct {
	Text          string `json:"-"`
	Includes      int    `json:"includes"`
	Prints        int    `json:"prints"`
	Continuations int    `json:"continuations"`
	NoOps         int    `json:"noOps"`
}

// Changed reports whether any pass modified the text.
func (r *Result) Changed() bool {
	return r.Includes+r.Prints+r.Continuations+r.NoOps > 0
}

// Inserted returns the number of lines added; no pass ever removes a line.
func (r *Result) Inserted() int { return r.NoOps }

// Transform applies the four passes in order: include removal, print suppression,
// continuation suppression and no-op insertion into emptied debug conditionals.
func Transform(text string, rules *Rules) *Result {
	if rules == nil {
		rules = DefaultRules()
	}
	return rules.compile().apply(text)
}

func (m *matchers) apply(text string) *Result {
	ret := &Result{}
	ret.Includes = len(m.include.FindAllStringIndex(text, -1))
	if ret.Includes > 0 {
		text = m.include.ReplaceAllString(text, m.includeRepl)
	}
	ret.Prints = len(m.print.FindAllStringIndex(text, -1))
	if ret.Prints > 0 {
		text = m.print.ReplaceAllString(text, m.lineRepl)
	}
	ret.Continuations = len(m.continuation.FindAllStringIndex(text, -1))
	if ret.Continuations > 0 {
		text = m.continuation.ReplaceAllString(text, m.lineRepl)
	}
	text, ret.NoOps = m.insertNoOps(text)
	ret.Text = text
	return ret
}

// insertNoOps scans lines with one line lookahead; a brace-less debug conditional whose
// only statement was commented out gets a no-op so it does not bind to the next statement.
func (m *matchers) insertNoOps(text string) (string, int) {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	inserted := 0
	for i, line := range lines {
		out = append(out, line)
		if !strings.Contains(line, m.condition) || strings.Contains(line, "{") {
			continue
		}
		if i+1 < len(lines) && strings.Contains(lines[i+1], m.disabledPrint) {
			lead := line[:len(line)-len(strings.TrimLeftFunc(line, isSpace))]
			indent := utf8.RuneCountInString(lead) + 2
			out = append(out, strings.Repeat(" ", indent)+m.noOpLine)
			inserted++
		}
	}
	if inserted == 0 {
		return text, 0
	}
	return strings.Join(out, "\n"), inserted
}

// lineCount counts lines the way the no-op pass splits them.
func lineCount(text string) int {
	return strings.Count(text, "\n") + 1
}
