// Package coeffs validates raw model coefficients and builds characteristic
// polynomials from them.
//
// A coefficient Vector holds the lag coefficients of an AR(p) or MA(q) model,
// index 0 being the lag-1 coefficient. Raw input may be a numeric slice or
// delimited text:
//
//	v, err := coeffs.Normalize("0.5, -0.3 0.1", coeffs.AR)
//	// v == coeffs.Vector{0.5, -0.3, 0.1}
//
// The Family decides the sign convention of the characteristic polynomial:
//
//	AR(p): 1 - φ₁z - φ₂z² - ... - φₚzᵖ
//	MA(q): 1 + θ₁z + θ₂z² + ... + θ_q z^q
//
//	poly := coeffs.Characteristic(v, coeffs.AR)
//	// poly == coeffs.Polynomial{1, -0.5, 0.3, -0.1}
package coeffs
