// Package arma analyzes AutoRegressive Moving Average (ARMA) models.
//
// An ARMA(p,q) model combines:
//   - AR(p): AutoRegressive component with p lags, which must be stationary
//   - MA(q): Moving Average component with q lags, which must be invertible
//
// # Basic Usage
//
// Create a model from its coefficients and analyze both parts:
//
//	model, err := arma.New([]float64{0.5, -0.3}, []float64{0.4})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	analysis, _ := model.Analyze()
//	fmt.Printf("valid=%v min margin=%.4f risk=%s\n",
//	    analysis.Overall.Valid, analysis.Overall.MinMargin, analysis.Overall.MaxRisk)
//
// Either part may be nil; Overall is only filled when both are present.
//
// # Quick Check
//
//	stationary, invertible, err := arma.QuickCheck("0.5 -0.3", "0.4")
package arma
