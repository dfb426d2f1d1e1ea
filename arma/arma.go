package arma

import (
	"encoding/json"
	"math"

	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/diagerr"
	"github.com/sartorproj/tsdiag/diagnostic"
)

// Order represents ARMA model order (p, q).
type Order struct {
	P int `json:"p"` // AR order
	Q int `json:"q"` // MA order
}

// Model represents an ARMA model given by its coefficients.
type Model struct {
	Order    Order
	ARCoeffs coeffs.Vector // AR coefficients (phi), nil when absent
	MACoeffs coeffs.Vector // MA coefficients (theta), nil when absent
}

// New creates a model from raw AR and MA coefficients. A nil argument marks
// that part as absent; at least one part is required.
func New(ar, ma any) (*Model, error) {
	if ar == nil && ma == nil {
		return nil, diagerr.InputValue("ARMA model needs AR or MA coefficients")
	}

	m := &Model{}
	if ar != nil {
		v, err := coeffs.Normalize(ar, coeffs.AR)
		if err != nil {
			return nil, err
		}
		m.ARCoeffs = v
		m.Order.P = v.Order()
	}
	if ma != nil {
		v, err := coeffs.Normalize(ma, coeffs.MA)
		if err != nil {
			return nil, err
		}
		m.MACoeffs = v
		m.Order.Q = v.Order()
	}
	return m, nil
}

// HasAR reports whether the model has an AR part.
func (m *Model) HasAR() bool { return m.ARCoeffs != nil }

// HasMA reports whether the model has an MA part.
func (m *Model) HasMA() bool { return m.MACoeffs != nil }

// Part is the full diagnosis of one side of the model.
type Part struct {
	Result     *diagnostic.Result           `json:"result"`
	Margin     *diagnostic.MarginReport     `json:"margin"`
	Suggestion *diagnostic.SuggestionReport `json:"suggestion"`
}

// Overall combines both parts. It is only set when both are present.
type Overall struct {
	Valid     bool                // stationary and invertible
	MinMargin float64             // smaller of the two margins
	MaxRisk   diagnostic.RiskTier // more severe of the two tiers
}

// MarshalJSON renders an infinite minimum margin as null.
func (o Overall) MarshalJSON() ([]byte, error) {
	var margin *float64
	if !math.IsInf(o.MinMargin, 0) {
		v := o.MinMargin
		margin = &v
	}
	return json.Marshal(struct {
		Valid     bool                `json:"model_valid"`
		MinMargin *float64            `json:"min_stability_margin"`
		MaxRisk   diagnostic.RiskTier `json:"max_risk_level"`
	}{o.Valid, margin, o.MaxRisk})
}

// Analysis is the outcome of Model.Analyze.
type Analysis struct {
	Order   Order    `json:"order"`
	AR      *Part    `json:"ar,omitempty"`
	MA      *Part    `json:"ma,omitempty"`
	Overall *Overall `json:"overall,omitempty"`
}

// Valid reports whether every present part satisfies its condition.
func (a *Analysis) Valid() bool {
	if a.AR != nil && !a.AR.Result.Satisfied {
		return false
	}
	if a.MA != nil && !a.MA.Result.Satisfied {
		return false
	}
	return true
}

// Analyze classifies each present part and derives margins and suggestions.
func (m *Model) Analyze() (*Analysis, error) {
	a := &Analysis{Order: m.Order}

	var err error
	if m.HasAR() {
		if a.AR, err = analyzePart(m.ARCoeffs, coeffs.AR); err != nil {
			return nil, err
		}
	}
	if m.HasMA() {
		if a.MA, err = analyzePart(m.MACoeffs, coeffs.MA); err != nil {
			return nil, err
		}
	}

	if a.AR != nil && a.MA != nil {
		a.Overall = &Overall{
			Valid:     a.AR.Result.Satisfied && a.MA.Result.Satisfied,
			MinMargin: math.Min(a.AR.Margin.Margin, a.MA.Margin.Margin),
			MaxRisk:   diagnostic.MaxRisk(a.AR.Margin.Risk, a.MA.Margin.Risk),
		}
	}
	return a, nil
}

func analyzePart(v coeffs.Vector, fam coeffs.Family) (*Part, error) {
	res, err := diagnostic.ClassifyVector(v, fam)
	if err != nil {
		return nil, err
	}
	return &Part{
		Result:     res,
		Margin:     diagnostic.Margin(res),
		Suggestion: diagnostic.SuggestFor(res),
	}, nil
}

// Analyze builds a model from raw coefficients and analyzes it.
func Analyze(ar, ma any) (*Analysis, error) {
	m, err := New(ar, ma)
	if err != nil {
		return nil, err
	}
	return m.Analyze()
}

// QuickCheck returns only the two verdicts. Both inputs are required.
func QuickCheck(ar, ma any) (stationary, invertible bool, err error) {
	if stationary, err = diagnostic.IsStationary(ar); err != nil {
		return false, false, err
	}
	if invertible, err = diagnostic.IsInvertible(ma); err != nil {
		return false, false, err
	}
	return stationary, invertible, nil
}

// Summary is a compact view of an analyzed model.
type Summary struct {
	Order      Order         `json:"order"`
	ARCoeffs   coeffs.Vector `json:"ar_coefficients,omitempty"`
	MACoeffs   coeffs.Vector `json:"ma_coefficients,omitempty"`
	ARChecked  bool          `json:"ar_checked"`
	MAChecked  bool          `json:"ma_checked"`
	Stationary bool          `json:"ar_stationary"`
	Invertible bool          `json:"ma_invertible"`
	ARNumRoots int           `json:"ar_num_roots"`
	MANumRoots int           `json:"ma_num_roots"`
	Valid      bool          `json:"arma_valid"`
}

// Summary returns a summary of the analysis.
func (a *Analysis) Summary() *Summary {
	s := &Summary{Order: a.Order, Valid: a.Valid()}
	if a.AR != nil {
		s.ARChecked = true
		s.ARCoeffs = a.AR.Result.Coefficients
		s.Stationary = a.AR.Result.Satisfied
		s.ARNumRoots = len(a.AR.Result.Roots)
	}
	if a.MA != nil {
		s.MAChecked = true
		s.MACoeffs = a.MA.Result.Coefficients
		s.Invertible = a.MA.Result.Satisfied
		s.MANumRoots = len(a.MA.Result.Roots)
	}
	return s
}
