// Package snippet expands parameterized step patterns into editor
// snippets or literal step text. Patterns carry typed placeholders
// ({string}, {int}, {long}, {double}); placeholder order is positional.
package snippet

import (
	"fmt"
	"regexp"
	"strings"
)

// Type is a placeholder's declared argument type.
type Type string

const (
	String Type = "string"
	Int    Type = "int"
	Long   Type = "long"
	Double Type = "double"
)

// Placeholder is one typed slot inside a step pattern.
type Placeholder struct {
	Raw  string // e.g. "{int}"
	Type Type
}

var (
	placeholderPattern = regexp.MustCompile(`\{(string|int|long|double)\}`)
	leadingKeyword     = regexp.MustCompile(`(?i)^(given|when|then|and|but)\b\s*`)
)

// body strips a leading step keyword so catalog patterns that carry
// their own keyword are not prefixed twice.
func body(pattern string) string {
	return leadingKeyword.ReplaceAllString(pattern, "")
}

// Placeholders returns the pattern's placeholders in order of appearance.
// The first placeholder in text is the first argument.
func Placeholders(pattern string) []Placeholder {
	matches := placeholderPattern.FindAllString(pattern, -1)
	out := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		out = append(out, Placeholder{Raw: m, Type: Type(strings.Trim(m, "{}"))})
	}
	return out
}

// Template expands pattern into an editor snippet prefixed by keyword and
// a space. Each placeholder becomes a tab stop, numbered from 1 left to
// right: string slots are quoted with default text "value", double slots
// default to 0.0, int and long slots default to 0.
func Template(keyword, pattern string) string {
	n := 0
	expanded := placeholderPattern.ReplaceAllStringFunc(body(pattern), func(m string) string {
		n++
		switch Type(strings.Trim(m, "{}")) {
		case String:
			return fmt.Sprintf(`"${%d:value}"`, n)
		case Double:
			return fmt.Sprintf("${%d:0.0}", n)
		default:
			return fmt.Sprintf("${%d:0}", n)
		}
	})
	return keyword + " " + expanded
}

// Literal expands pattern with user-supplied argument values, zipped
// positionally against the placeholders. String arguments are wrapped in
// double quotes (an absent or empty argument yields ""); numeric
// arguments pass through unchanged, defaulting to 0 when absent or empty.
func Literal(keyword, pattern string, args []string) string {
	i := 0
	expanded := placeholderPattern.ReplaceAllStringFunc(body(pattern), func(m string) string {
		var arg string
		if i < len(args) {
			arg = args[i]
		}
		i++
		if Type(strings.Trim(m, "{}")) == String {
			return `"` + arg + `"`
		}
		if arg == "" {
			return "0"
		}
		return arg
	})
	return keyword + " " + expanded
}
