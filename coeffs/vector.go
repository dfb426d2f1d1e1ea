package coeffs

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/sartorproj/tsdiag/diagerr"
)

// Vector is a validated, non-empty list of lag coefficients.
type Vector []float64

// Order returns the model order (number of coefficients).
func (v Vector) Order() int {
	return len(v)
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Scale returns a new vector with every coefficient multiplied by factor.
func (v Vector) Scale(factor float64) Vector {
	out := make(Vector, len(v))
	for i, c := range v {
		out[i] = c * factor
	}
	return out
}

// Normalize converts raw coefficient input into a Vector.
//
// Accepted inputs are numeric slices, []any holding numbers, json.Number or
// numeric strings, an existing Vector, and delimited text (see Parse). The
// family only labels error messages.
func Normalize(raw any, fam Family) (Vector, error) {
	switch v := raw.(type) {
	case string:
		return Parse(v, fam)
	case Vector:
		return FromFloats(v, fam)
	case []float64:
		return FromFloats(v, fam)
	case []float32:
		out := make([]float64, len(v))
		for i, c := range v {
			out[i] = float64(c)
		}
		return FromFloats(out, fam)
	case []int:
		out := make([]float64, len(v))
		for i, c := range v {
			out[i] = float64(c)
		}
		return FromFloats(out, fam)
	case []int64:
		out := make([]float64, len(v))
		for i, c := range v {
			out[i] = float64(c)
		}
		return FromFloats(out, fam)
	case []any:
		if len(v) == 0 {
			return nil, emptyError(fam)
		}
		out := make([]float64, len(v))
		for i, elem := range v {
			f, ok := toFloat(elem)
			if !ok {
				return nil, diagerr.InputValue("%s coefficients must all be numeric (element %d is %v)", fam, i, elem)
			}
			out[i] = f
		}
		return FromFloats(out, fam)
	default:
		return nil, diagerr.InputType("%s coefficients must be a numeric list or a delimited string, got %T", fam, raw)
	}
}

// FromFloats validates values and returns them as an independent Vector.
func FromFloats(values []float64, fam Family) (Vector, error) {
	if len(values) == 0 {
		return nil, emptyError(fam)
	}
	out := make(Vector, len(values))
	for i, c := range values {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, diagerr.InputValue("%s coefficients must be finite (element %d is %v)", fam, i, c)
		}
		out[i] = c
	}
	return out, nil
}

// Parse reads comma and/or whitespace separated numbers, e.g. "0.5,-0.3 0.1".
func Parse(text string, fam Family) (Vector, error) {
	tokens := strings.Fields(strings.ReplaceAll(text, ",", " "))
	if len(tokens) == 0 {
		return nil, emptyError(fam)
	}
	values := make([]float64, len(tokens))
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, diagerr.InputValue("cannot parse %s coefficient string %q: invalid number %q", fam, text, tok)
		}
		values[i] = f
	}
	return FromFloats(values, fam)
}

func emptyError(fam Family) error {
	return diagerr.InputValue("%s coefficients must not be empty", fam)
}

// toFloat converts a single loosely-typed element, as produced by JSON or YAML
// decoding, into a float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
