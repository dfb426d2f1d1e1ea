// Package diagnostic classifies AR and MA models against the unit-circle
// condition and explains the outcome.
//
// # Classification
//
// An AR model is stationary, and an MA model invertible, when every root of
// its characteristic polynomial lies strictly outside the unit circle:
//
//	res, err := diagnostic.Stationarity([]float64{0.5, -0.3})
//	fmt.Println(res.Satisfied, res.Message)
//
//	res, err = diagnostic.Classify("0.8 0.15", coeffs.MA)
//
// # Stability Margin
//
// The margin is the smallest distance between a root magnitude and 1. It is
// negative when the condition fails and maps onto a coarse risk tier:
//
//	m, err := diagnostic.AnalyzeMargin([]float64{0.95}, coeffs.MA)
//	// m.Margin ≈ 0.0526, m.Risk == diagnostic.RiskMedium
//
// # Suggestions
//
// Suggest proposes adjusted coefficients for a failing model. Order-1 models
// shrink to ±0.95; higher orders are scaled by 0.9. The scaled vector is not
// re-checked and may need further adjustment:
//
//	s, err := diagnostic.Suggest([]float64{1.1}, coeffs.AR)
//	// s.Suggested == coeffs.Vector{0.95}
package diagnostic
