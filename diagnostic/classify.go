package diagnostic

import (
	"fmt"

	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/roots"
)

// Result is the outcome of a stationarity or invertibility check.
type Result struct {
	Family       coeffs.Family     `json:"family"`
	Satisfied    bool              `json:"satisfied"`
	Roots        []roots.Root      `json:"roots"`
	Coefficients coeffs.Vector     `json:"coefficients"`
	Polynomial   coeffs.Polynomial `json:"characteristic_polynomial"`
	Message      string            `json:"message"`
}

// InsideCount returns the number of roots inside or on the unit circle.
func (r *Result) InsideCount() int {
	return roots.CountInside(r.Roots)
}

// Classify validates raw coefficients, builds the characteristic polynomial
// for fam and checks every root against the unit circle.
func Classify(raw any, fam coeffs.Family) (*Result, error) {
	v, err := coeffs.Normalize(raw, fam)
	if err != nil {
		return nil, err
	}
	return ClassifyVector(v, fam)
}

// ClassifyVector is Classify for an already validated vector.
func ClassifyVector(v coeffs.Vector, fam coeffs.Family) (*Result, error) {
	poly := coeffs.Characteristic(v, fam)
	rs, err := roots.Solve(poly)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Family:       fam,
		Satisfied:    roots.AllOutside(rs),
		Roots:        rs,
		Coefficients: v.Clone(),
		Polynomial:   poly,
	}
	if res.Satisfied {
		res.Message = fmt.Sprintf("model satisfies the %s condition: all characteristic roots lie outside the unit circle",
			fam.Condition())
	} else {
		res.Message = fmt.Sprintf("model does not satisfy the %s condition: %d root(s) inside or on the unit circle",
			fam.Condition(), res.InsideCount())
	}
	return res, nil
}

// Stationarity checks AR coefficients.
func Stationarity(raw any) (*Result, error) {
	return Classify(raw, coeffs.AR)
}

// Invertibility checks MA coefficients.
func Invertibility(raw any) (*Result, error) {
	return Classify(raw, coeffs.MA)
}

// IsStationary returns only the verdict of Stationarity.
func IsStationary(raw any) (bool, error) {
	res, err := Stationarity(raw)
	if err != nil {
		return false, err
	}
	return res.Satisfied, nil
}

// IsInvertible returns only the verdict of Invertibility.
func IsInvertible(raw any) (bool, error) {
	res, err := Invertibility(raw)
	if err != nil {
		return false, err
	}
	return res.Satisfied, nil
}
