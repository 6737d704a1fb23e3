// Package validate checks feature documents against the structural rules
// of the Gherkin grammar: a single Feature block, non-empty scenarios,
// and Given-before-When-before-Then step ordering.
package validate

import (
	"regexp"
	"strings"
)

// Severity classifies a diagnostic. Structural diagnostics are always
// advisory; they never block editing or saving.
type Severity string

const Error Severity = "error"

// Diagnostic is one line-anchored finding. Lines are 1-based.
type Diagnostic struct {
	Line     int
	Severity Severity
	Message  string
}

const unnamedScenario = "Unnamed Scenario"

var (
	featureLine  = regexp.MustCompile(`(?i)^feature\s*:`)
	scenarioLine = regexp.MustCompile(`(?i)^scenario\s*:\s*(.*)$`)
	stepLine     = regexp.MustCompile(`(?i)^(given|when|then|and|but)\b`)
)

// Check scans the document in a single pass and returns its diagnostics.
// It is a pure function of the text: recomputed in full on every change,
// no state carried between runs.
func Check(text string) []Diagnostic {
	lines := strings.Split(text, "\n")

	var diags []Diagnostic
	featureCount := 0
	inScenario := false
	scenarioName := ""
	stepCount := 0
	givenSeen := false
	whenSeen := false

	emptyScenario := func(anchor int) {
		name := scenarioName
		if name == "" {
			name = unnamedScenario
		}
		diags = append(diags, Diagnostic{
			Line:     anchor,
			Severity: Error,
			Message:  `Scenario "` + name + `" cannot be empty.`,
		})
	}

	for i, raw := range lines {
		line := i + 1
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		if featureLine.MatchString(trimmed) {
			featureCount++
			if featureCount > 1 {
				diags = append(diags, Diagnostic{
					Line:     line,
					Severity: Error,
					Message:  "Only one Feature block is allowed.",
				})
			}
			continue
		}

		if m := scenarioLine.FindStringSubmatch(trimmed); m != nil {
			if inScenario && stepCount == 0 {
				anchor := line - 1
				if anchor < 1 {
					anchor = line
				}
				emptyScenario(anchor)
			}
			inScenario = true
			stepCount = 0
			givenSeen = false
			whenSeen = false
			scenarioName = strings.TrimSpace(m[1])
			continue
		}

		if m := stepLine.FindStringSubmatch(trimmed); m != nil {
			if !inScenario {
				diags = append(diags, Diagnostic{
					Line:     line,
					Severity: Error,
					Message:  "Step cannot appear outside of a Scenario.",
				})
				continue
			}
			stepCount++
			keyword := strings.ToLower(m[1])
			switch keyword {
			case "when":
				if !givenSeen {
					diags = append(diags, Diagnostic{
						Line:     line,
						Severity: Error,
						Message:  "When step cannot appear before a Given step.",
					})
				}
				whenSeen = true
			case "then":
				if !whenSeen {
					diags = append(diags, Diagnostic{
						Line:     line,
						Severity: Error,
						Message:  "Then step cannot appear before a When step.",
					})
				}
			case "given":
				givenSeen = true
			}
			// And/But inherit the preceding stage: they count as steps
			// but never move or check the ordering flags.
			continue
		}

		// Comments, descriptive text, table rows: ignored.
	}

	if inScenario && stepCount == 0 {
		anchor := len(lines)
		if anchor < 1 {
			anchor = 1
		}
		emptyScenario(anchor)
	}

	return diags
}
