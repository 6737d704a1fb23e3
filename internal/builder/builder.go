// Package builder is the structured alternative to free-text editing: a
// scenario assembled step by step, with keyword choices gated so the
// Given → When → Then ordering can never be violated at insertion time.
package builder

import (
	"fmt"
	"strings"

	"github.com/featlab/featlab/internal/snippet"
)

// Keyword is a step keyword.
type Keyword string

const (
	Given Keyword = "Given"
	When  Keyword = "When"
	Then  Keyword = "Then"
	And   Keyword = "And"
	But   Keyword = "But"
)

// Source tells whether a step came from the catalog or was typed free-form.
type Source string

const (
	Existing Source = "existing"
	Custom   Source = "custom"
)

// Step is one entry in a scenario under construction.
type Step struct {
	ID         string
	Keyword    Keyword
	Source     Source
	Pattern    string   // catalog pattern, Existing only
	Args       []string // positional placeholder arguments, Existing only
	CustomText string   // free text, Custom only
}

// Scenario is a named ordered list of steps.
type Scenario struct {
	ID    string
	Name  string
	Steps []Step
}

// stage maps the real keywords onto the ordered walk; And/But carry no
// stage of their own.
func stage(k Keyword) int {
	switch k {
	case Given:
		return 1
	case When:
		return 2
	case Then:
		return 3
	}
	return 0
}

func currentStage(steps []Step) int {
	s := 0
	for _, step := range steps {
		if st := stage(step.Keyword); st > 0 {
			s = st
		}
	}
	return s
}

// Allowed returns the keywords that may legally start the next step,
// given the steps already present. The walk through Given → When → Then
// is non-decreasing: each real keyword may repeat or advance one stage.
// And and But become available once any step exists.
func Allowed(steps []Step) []Keyword {
	switch currentStage(steps) {
	case 0:
		if len(steps) == 0 {
			return []Keyword{Given}
		}
		return []Keyword{Given, And, But}
	case 1:
		return []Keyword{Given, When, And, But}
	case 2:
		return []Keyword{When, Then, And, But}
	default:
		return []Keyword{Then, And, But}
	}
}

// Add appends a step, rejecting keywords the current walk does not
// permit. The input scenario is not mutated.
func Add(sc Scenario, step Step) (Scenario, error) {
	legal := false
	for _, k := range Allowed(sc.Steps) {
		if k == step.Keyword {
			legal = true
			break
		}
	}
	if !legal {
		return sc, fmt.Errorf("%s step is not allowed here", step.Keyword)
	}
	out := sc
	out.Steps = append(append([]Step(nil), sc.Steps...), step)
	return out, nil
}

// StepText renders one step as a document line, expanding catalog
// patterns with their literal arguments.
func StepText(step Step) string {
	if step.Source == Existing {
		return snippet.Literal(string(step.Keyword), step.Pattern, step.Args)
	}
	return string(step.Keyword) + " " + strings.TrimSpace(step.CustomText)
}

// Render emits the scenario as feature-file text.
func Render(sc Scenario) string {
	name := strings.TrimSpace(sc.Name)
	if name == "" {
		name = "Unnamed Scenario"
	}
	var b strings.Builder
	b.WriteString("Scenario: " + name + "\n")
	for _, step := range sc.Steps {
		b.WriteString("  " + StepText(step) + "\n")
	}
	return b.String()
}
