// Package tsdiag checks AR stationarity and MA invertibility from model
// coefficients.
//
// An AR(p) model is stationary, and an MA(q) model invertible, when every
// root of its characteristic polynomial lies strictly outside the unit
// circle. tsdiag builds the polynomial, finds its roots, and reports the
// verdict together with the distance of the closest root to the circle and
// suggested coefficient changes for failing models.
//
// # Features
//
//   - Coefficient input as numeric slices or delimited text ("0.5, -0.3")
//   - Characteristic roots via closed form (order 1) or companion-matrix eigenvalues
//   - Stability margin and low/medium/high risk tiers
//   - Coefficient suggestions for failing models
//   - Batch analysis and ranking of many models, loaded from YAML, JSON or CSV
//   - Combined ARMA analysis
//   - A command line tool and a REST API (cmd/tsdiag)
//
// # Quick Start
//
// Check an AR(2) model:
//
//	res, err := diagnostic.Stationarity([]float64{0.5, -0.3})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Satisfied, res.Message)
//
// Analyze both parts of an ARMA model:
//
//	analysis, _ := arma.Analyze("0.5 -0.3", "0.4")
//	fmt.Println(analysis.Overall.Valid, analysis.Overall.MaxRisk)
//
// Rank several AR models by margin:
//
//	cmp, _ := batch.Compare([]any{"0.9", "0.5", "1.1"}, nil, coeffs.AR, nil)
//	fmt.Println(cmp.Best.Name)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - coeffs: Coefficient validation, model families and characteristic polynomials
//   - roots: Polynomial root finding and unit-circle classification
//   - diagnostic: Classification, stability margins and suggestions
//   - arma: Combined ARMA analysis
//   - batch: Batch analysis, comparison and model file loading
//   - diagerr: Error kinds shared by all packages
//
// # References
//
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
//   - Box, G. E. P., & Jenkins, G. M. (1976). Time Series Analysis: Forecasting and Control
package tsdiag
