package service

import (
	"regexp"
	"strings"
	"unicode"
)

// Rules holds the literal markers used to disable diagnostic output in a generated C++ file.
// Empty fields fall back to DefaultRules values.
type Rules struct {
	IncludeDirective string `json:"includeDirective,omitempty" yaml:"includeDirective,omitempty" description:"diagnostic header include, e.g. #include <iostream>"`
	IncludeNote      string `json:"includeNote,omitempty" yaml:"includeNote,omitempty"`
	StreamToken      string `json:"streamToken,omitempty" yaml:"streamToken,omitempty" description:"stream output identifier, e.g. cout"`
	StreamOperator   string `json:"streamOperator,omitempty" yaml:"streamOperator,omitempty"`
	CommentMarker    string `json:"commentMarker,omitempty" yaml:"commentMarker,omitempty"`
	DebugCondition   string `json:"debugCondition,omitempty" yaml:"debugCondition,omitempty" description:"compile time debug conditional, e.g. if constexpr (debug)"`
	NoOpStatement    string `json:"noOpStatement,omitempty" yaml:"noOpStatement,omitempty"`
	NoOpNote         string `json:"noOpNote,omitempty" yaml:"noOpNote,omitempty"`
}

// DefaultRules returns markers for GeographicLib's GeodesicLine3.cpp as shipped in the R package.
func DefaultRules() *Rules {
	return &Rules{
		IncludeDirective: "#include <iostream>",
		IncludeNote:      "R package: removed for R CMD check",
		StreamToken:      "cout",
		StreamOperator:   "<<",
		CommentMarker:    "//",
		DebugCondition:   "if constexpr (debug)",
		NoOpStatement:    "(void)0;",
		NoOpNote:         "R package: no-op for empty if block",
	}
}

// Init fills empty fields with defaults.
func (r *Rules) Init() {
	def := DefaultRules()
	fill := func(dst *string, v string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = v
		}
	}
	fill(&r.IncludeDirective, def.IncludeDirective)
	fill(&r.IncludeNote, def.IncludeNote)
	fill(&r.StreamToken, def.StreamToken)
	fill(&r.StreamOperator, def.StreamOperator)
	fill(&r.CommentMarker, def.CommentMarker)
	fill(&r.DebugCondition, def.DebugCondition)
	fill(&r.NoOpStatement, def.NoOpStatement)
	fill(&r.NoOpNote, def.NoOpNote)
}

// space is Unicode white space plus the C0 separators; \s alone is ASCII only.
const space = `[\t\n\x0B\f\r \x1C-\x1F\x{85}\p{Z}]`

// isSpace mirrors space for rune scans.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1C && r <= 0x1F)
}

// matchers are the compiled form of Rules.
type matchers struct {
	include      *regexp.Regexp
	includeRepl  string
	print        *regexp.Regexp
	continuation *regexp.Regexp
	lineRepl     string

	condition     string
	disabledPrint string
	noOpLine      string
}

func (r *Rules) compile() *matchers {
	rules := *r
	rules.Init()
	marker := rules.CommentMarker
	return &matchers{
		// only active directives: a commented one starts with the marker, keeping the pass idempotent
		include:      regexp.MustCompile(`(?m)^([ \t]*)` + regexp.QuoteMeta(rules.IncludeDirective)),
		includeRepl:  "${1}" + escapeRepl(marker+" "+rules.IncludeDirective+"  "+marker+" "+rules.IncludeNote),
		print:        regexp.MustCompile(`(?m)^(` + space + `*)(` + regexp.QuoteMeta(rules.StreamToken) + space + `)`),
		continuation: regexp.MustCompile(`(?m)^(` + space + `*)(` + regexp.QuoteMeta(rules.StreamOperator) + `)`),
		lineRepl:     "${1}" + escapeRepl(marker) + " ${2}",

		condition:     rules.DebugCondition,
		disabledPrint: marker + " " + rules.StreamToken,
		noOpLine:      rules.NoOpStatement + " " + marker + " " + rules.NoOpNote,
	}
}

// escapeRepl protects literal text used in a regexp replacement template.
func escapeRepl(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
