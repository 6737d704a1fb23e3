// Package language is the Gherkin language service: a tokenizer for
// editor highlighting, a completion provider backed by the step catalog,
// and a per-document session that revalidates on every change.
//
// The hosting application constructs exactly one Service per editing
// session and owns its lifetime; there is no process-wide registration.
package language

import (
	"regexp"
	"strings"

	"github.com/featlab/featlab/internal/catalog"
	"github.com/featlab/featlab/internal/fuzzy"
	"github.com/featlab/featlab/internal/snippet"
	"github.com/featlab/featlab/internal/validate"
)

// TokenClass is one of the four highlighting classes the editor surface
// understands.
type TokenClass string

const (
	FeatureKeyword  TokenClass = "feature-keyword"
	ScenarioKeyword TokenClass = "scenario-keyword"
	StepKeyword     TokenClass = "step-keyword"
	PlaceholderType TokenClass = "placeholder-type"
)

// Token is one classified span within a single line. Start is a 0-based
// column offset.
type Token struct {
	Class TokenClass
	Start int
	Text  string
}

// CompletionItem is one ranked suggestion. InsertText carries tab-stop
// markers when IsSnippet is set.
type CompletionItem struct {
	Label      string
	InsertText string
	IsSnippet  bool
}

var (
	featureToken     = regexp.MustCompile(`(?i)^\s*(feature\s*:)`)
	scenarioToken    = regexp.MustCompile(`(?i)^\s*(scenario\s*:)`)
	stepToken        = regexp.MustCompile(`(?i)^\s*(given|when|then|and|but)\b`)
	placeholderToken = regexp.MustCompile(`\{(?:string|int|long|double)\}`)
	stepPrefix       = regexp.MustCompile(`(?i)^\s*(given|when|then|and|but)\b\s*(.*)$`)
)

// Tokenize classifies one line of source for highlighting.
func Tokenize(line string) []Token {
	var tokens []Token

	if loc := featureToken.FindStringSubmatchIndex(line); loc != nil {
		tokens = append(tokens, Token{Class: FeatureKeyword, Start: loc[2], Text: line[loc[2]:loc[3]]})
	} else if loc := scenarioToken.FindStringSubmatchIndex(line); loc != nil {
		tokens = append(tokens, Token{Class: ScenarioKeyword, Start: loc[2], Text: line[loc[2]:loc[3]]})
	} else if loc := stepToken.FindStringSubmatchIndex(line); loc != nil {
		tokens = append(tokens, Token{Class: StepKeyword, Start: loc[2], Text: line[loc[2]:loc[3]]})
	}

	for _, loc := range placeholderToken.FindAllStringIndex(line, -1) {
		tokens = append(tokens, Token{Class: PlaceholderType, Start: loc[0], Text: line[loc[0]:loc[1]]})
	}
	return tokens
}

// Service wires the catalog, matcher, and validator behind the editor
// surface contract.
type Service struct {
	store   *catalog.Store
	session *Session
}

func NewService(store *catalog.Store) *Service {
	return &Service{store: store}
}

// Complete returns ranked suggestions for a line prefix up to the cursor.
// The prefix must begin with a step keyword; the text after it is the
// fuzzy query against the catalog. Selecting an item inserts a template
// snippet for the matched pattern.
func (s *Service) Complete(linePrefix string) []CompletionItem {
	m := stepPrefix.FindStringSubmatch(linePrefix)
	if m == nil {
		return nil
	}
	keyword := canonicalKeyword(m[1])
	query := strings.TrimSpace(m[2])

	ranked := fuzzy.Rank(query, s.store.Patterns())
	items := make([]CompletionItem, 0, len(ranked))
	for _, pattern := range ranked {
		items = append(items, CompletionItem{
			Label:      pattern,
			InsertText: snippet.Template(keyword, pattern),
			IsSnippet:  true,
		})
	}
	return items
}

// Diagnostics runs the structural validator over full document text.
func (s *Service) Diagnostics(text string) []validate.Diagnostic {
	return validate.Check(text)
}

func canonicalKeyword(raw string) string {
	lower := strings.ToLower(raw)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
