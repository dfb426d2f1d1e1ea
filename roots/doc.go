// Package roots finds the complex roots of a characteristic polynomial and
// classifies each one against the unit circle.
//
// Polynomials are ordered from the constant term to the highest-degree term.
// A polynomial of degree n yields exactly n roots; repeated roots appear as
// separate entries.
//
//	rs, err := roots.Solve(coeffs.Polynomial{1, -0.5})
//	// rs[0].Value == 2, rs[0].OutsideUnitCircle == true
//
// A root counts as outside the unit circle only when its magnitude exceeds
// 1 + Tolerance, so a true unit root never classifies as outside because of
// rounding.
package roots
