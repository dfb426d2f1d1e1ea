package diagnostic

import (
	"fmt"
	"math"

	"github.com/sartorproj/tsdiag/coeffs"
)

const (
	// ShrinkTarget replaces an order-1 coefficient whose magnitude is at
	// least 1, keeping its sign.
	ShrinkTarget = 0.95
	// ScaleFactor multiplies every coefficient of a failing higher-order
	// model. The result is not re-checked.
	ScaleFactor = 0.9
)

// SuggestionReport proposes coefficient changes for a failing model.
type SuggestionReport struct {
	Family             coeffs.Family `json:"family"`
	ModificationNeeded bool          `json:"is_modification_needed"`
	Original           coeffs.Vector `json:"original_coefficients"`
	ProblemRoots       int           `json:"problem_roots"`
	Suggestions        []string      `json:"suggestions"`
	// Suggested is nil when no heuristic applies.
	Suggested coeffs.Vector `json:"suggested_coefficients,omitempty"`
}

// Suggest classifies raw coefficients and, when the condition fails, proposes
// an adjusted vector.
func Suggest(raw any, fam coeffs.Family) (*SuggestionReport, error) {
	res, err := Classify(raw, fam)
	if err != nil {
		return nil, err
	}
	return SuggestFor(res), nil
}

// SuggestFor builds suggestions from an existing classification result.
func SuggestFor(res *Result) *SuggestionReport {
	fam := res.Family
	rep := &SuggestionReport{
		Family:             fam,
		ModificationNeeded: !res.Satisfied,
		Original:           res.Coefficients.Clone(),
		Suggestions:        []string{},
	}
	if res.Satisfied {
		rep.Suggestions = append(rep.Suggestions,
			fmt.Sprintf("model already satisfies the %s condition, no modification needed", fam.Condition()))
		return rep
	}

	rep.ProblemRoots = res.InsideCount()
	rep.Suggestions = append(rep.Suggestions,
		fmt.Sprintf("found %d problem root(s) inside or on the unit circle", rep.ProblemRoots))

	if len(res.Coefficients) == 1 {
		c := res.Coefficients[0]
		if math.Abs(c) >= 1 {
			next := math.Copysign(ShrinkTarget, c)
			rep.Suggestions = append(rep.Suggestions,
				fmt.Sprintf("adjust the %s(1) coefficient from %.3f to %.3f", fam, c, next))
			rep.Suggested = coeffs.Vector{next}
		}
		return rep
	}

	rep.Suggested = res.Coefficients.Scale(ScaleFactor)
	rep.Suggestions = append(rep.Suggestions,
		fmt.Sprintf("multiply all coefficients by %g to move toward %s", ScaleFactor, fam.Condition()))
	return rep
}
