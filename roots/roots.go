package roots

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/diagerr"
)

// Tolerance is the margin above 1 a root magnitude must exceed to count as
// outside the unit circle.
const Tolerance = 1e-10

// ErrNoConvergence is the cause attached when the eigenvalue routine fails.
var ErrNoConvergence = errors.New("eigenvalue decomposition did not converge")

// Root is one root of a characteristic polynomial.
type Root struct {
	Value             complex128
	Magnitude         float64
	OutsideUnitCircle bool
}

// NewRoot classifies z against the unit circle.
func NewRoot(z complex128) Root {
	m := cmplx.Abs(z)
	return Root{
		Value:             z,
		Magnitude:         m,
		OutsideUnitCircle: m > 1+Tolerance,
	}
}

// Distance is the signed distance from the unit circle, magnitude minus one.
func (r Root) Distance() float64 {
	return r.Magnitude - 1
}

// String renders the root as "re±imi (|z|=m)". The imaginary part is omitted
// for real roots.
func (r Root) String() string {
	s := fmt.Sprintf("%.6f", real(r.Value))
	if imag(r.Value) != 0 {
		s += fmt.Sprintf("%+.6fi", imag(r.Value))
	}
	return fmt.Sprintf("%s (|z|=%.6f)", s, r.Magnitude)
}

// Solve returns every root of p.
//
// Zero highest-degree terms are dropped first; each stands for a root at
// infinity and is not reported. Zero constant terms contribute roots at the
// origin. Degree 1 is solved in closed form, higher degrees through the
// eigenvalues of the companion matrix.
func Solve(p coeffs.Polynomial) ([]Root, error) {
	p = p.Trim()
	if len(p) <= 1 {
		return []Root{}, nil
	}

	// Leading zeros in constant-first order are roots at zero.
	zeros := 0
	for zeros < len(p) && p[zeros] == 0 {
		zeros++
	}
	out := make([]Root, 0, len(p)-1)
	rest := p[zeros:]

	switch {
	case len(rest) == 2:
		out = append(out, NewRoot(complex(-rest[0]/rest[1], 0)))
	case len(rest) > 2:
		vals, err := companionEigenvalues(rest)
		if err != nil {
			return nil, err
		}
		for _, z := range vals {
			out = append(out, NewRoot(z))
		}
	}

	for i := 0; i < zeros; i++ {
		out = append(out, NewRoot(0))
	}
	return out, nil
}

// companionEigenvalues builds the companion matrix of p (constant-first, no
// zero at either end) and returns its eigenvalues.
func companionEigenvalues(p coeffs.Polynomial) ([]complex128, error) {
	hi := p.Reversed()
	n := p.Degree()
	lead := hi[0]

	a := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		a.Set(0, j, -hi[j+1]/lead)
	}
	for i := 1; i < n; i++ {
		a.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		return nil, diagerr.Numerical(ErrNoConvergence, "root finding failed for degree %d", n)
	}
	vals := eig.Values(nil)
	for _, z := range vals {
		if cmplx.IsNaN(z) || cmplx.IsInf(z) {
			return nil, diagerr.Numerical(ErrNoConvergence, "root finding produced a non-finite root for degree %d", n)
		}
	}
	return vals, nil
}

// AllOutside reports whether every root lies strictly outside the unit
// circle. It is true for an empty set.
func AllOutside(rs []Root) bool {
	for _, r := range rs {
		if !r.OutsideUnitCircle {
			return false
		}
	}
	return true
}

// CountInside counts the roots inside or on the unit circle.
func CountInside(rs []Root) int {
	n := 0
	for _, r := range rs {
		if !r.OutsideUnitCircle {
			n++
		}
	}
	return n
}

type rootJSON struct {
	Real              float64 `json:"real"`
	Imag              float64 `json:"imag"`
	Magnitude         float64 `json:"magnitude"`
	OutsideUnitCircle bool    `json:"outside_unit_circle"`
	Display           string  `json:"display"`
}

// MarshalJSON encodes the complex value as separate real and imaginary parts.
func (r Root) MarshalJSON() ([]byte, error) {
	return json.Marshal(rootJSON{
		Real:              real(r.Value),
		Imag:              imag(r.Value),
		Magnitude:         r.Magnitude,
		OutsideUnitCircle: r.OutsideUnitCircle,
		Display:           r.String(),
	})
}
