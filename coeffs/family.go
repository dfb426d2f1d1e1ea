package coeffs

import (
	"strings"

	"github.com/sartorproj/tsdiag/diagerr"
)

// Family is the model family whose unit-circle condition is checked.
type Family int

const (
	AR Family = iota // autoregressive, checked for stationarity
	MA               // moving average, checked for invertibility
)

// Sign is the multiplier applied to every coefficient before it enters the
// characteristic polynomial.
func (f Family) Sign() float64 {
	if f == AR {
		return -1
	}
	return 1
}

// String returns "AR" or "MA".
func (f Family) String() string {
	if f == AR {
		return "AR"
	}
	return "MA"
}

// Condition names the property the family must satisfy.
func (f Family) Condition() string {
	if f == AR {
		return "stationarity"
	}
	return "invertibility"
}

// Adjective describes a model that satisfies the condition.
func (f Family) Adjective() string {
	if f == AR {
		return "stationary"
	}
	return "invertible"
}

// ParseFamily accepts "ar" or "ma" in any case.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ar":
		return AR, nil
	case "ma":
		return MA, nil
	}
	return AR, diagerr.InputValue("unknown model family %q (expected ar or ma)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Family) UnmarshalText(text []byte) error {
	fam, err := ParseFamily(string(text))
	if err != nil {
		return err
	}
	*f = fam
	return nil
}
