package coeffs

// Polynomial holds real coefficients ordered from the constant term to the
// highest-degree term.
type Polynomial []float64

// Characteristic builds 1 + s·c₁z + s·c₂z² + ... where s is the family sign.
// The result always has len(v)+1 terms and a constant term of 1.
func Characteristic(v Vector, fam Family) Polynomial {
	sign := fam.Sign()
	poly := make(Polynomial, 0, len(v)+1)
	poly = append(poly, 1.0)
	for _, c := range v {
		poly = append(poly, sign*c)
	}
	return poly
}

// Degree returns the nominal degree, len(p)-1.
func (p Polynomial) Degree() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Trim drops zero highest-degree terms. Each dropped term stands for a root
// at infinity.
func (p Polynomial) Trim() Polynomial {
	n := len(p)
	for n > 1 && p[n-1] == 0 {
		n--
	}
	return p[:n]
}

// Reversed returns the coefficients ordered from the highest-degree term to
// the constant term.
func (p Polynomial) Reversed() []float64 {
	out := make([]float64, len(p))
	for i, c := range p {
		out[len(p)-1-i] = c
	}
	return out
}

// Eval evaluates the polynomial at a complex point using Horner's rule.
func (p Polynomial) Eval(z complex128) complex128 {
	var acc complex128
	for i := len(p) - 1; i >= 0; i-- {
		acc = acc*z + complex(p[i], 0)
	}
	return acc
}
