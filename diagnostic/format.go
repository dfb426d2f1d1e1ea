package diagnostic

import (
	"fmt"
	"strings"
)

func verdictWord(r *Result) string {
	if r.Satisfied {
		return r.Family.Adjective()
	}
	return "not " + r.Family.Adjective()
}

// String renders the result as a multi-line report with one line per root.
func (r *Result) String() string {
	var b strings.Builder
	title := r.Family.Condition()
	fmt.Fprintf(&b, "%s%s check: %s\n", strings.ToUpper(title[:1]), title[1:], verdictWord(r))
	fmt.Fprintf(&b, "Message: %s\n", r.Message)
	fmt.Fprintf(&b, "%s coefficients: %v\n", r.Family, []float64(r.Coefficients))
	b.WriteString("Characteristic roots:\n")
	for i, root := range r.Roots {
		mark := "✓"
		if !root.OutsideUnitCircle {
			mark = "✗"
		}
		fmt.Fprintf(&b, "  root %d: %s %s\n", i+1, root, mark)
	}
	return b.String()
}

// String renders the margin report.
func (m MarginReport) String() string {
	var b strings.Builder
	if m.Finite() {
		fmt.Fprintf(&b, "Stability margin: %.6f\n", m.Margin)
	} else {
		b.WriteString("Stability margin: inf (no roots)\n")
	}
	if m.ClosestRoot != nil {
		fmt.Fprintf(&b, "Closest root: %s\n", m.ClosestRoot)
	}
	fmt.Fprintf(&b, "Risk level: %s\n", m.Risk)
	return b.String()
}

// String renders the suggestions, one per line.
func (s *SuggestionReport) String() string {
	var b strings.Builder
	for _, line := range s.Suggestions {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	if s.Suggested != nil {
		parts := make([]string, len(s.Suggested))
		for i, c := range s.Suggested {
			parts[i] = fmt.Sprintf("%.4f", c)
		}
		fmt.Fprintf(&b, "Suggested coefficients: [%s]\n", strings.Join(parts, ", "))
	}
	return b.String()
}
