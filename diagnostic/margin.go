package diagnostic

import (
	"encoding/json"
	"math"

	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/roots"
)

// RiskTier is a coarse bucket derived from the stability margin.
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// MediumRiskThreshold is the margin below which a valid model is still
// considered close to the unit circle.
const MediumRiskThreshold = 0.1

// RiskFromMargin maps a margin onto its tier: high when the margin is not
// positive, medium below MediumRiskThreshold, low otherwise.
func RiskFromMargin(margin float64) RiskTier {
	switch {
	case margin <= 0:
		return RiskHigh
	case margin < MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Rank orders tiers from low (0) to high (2).
func (t RiskTier) Rank() int {
	switch t {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	}
	return 0
}

// MaxRisk returns the more severe of two tiers.
func MaxRisk(a, b RiskTier) RiskTier {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// MarginReport quantifies how far the roots sit from the unit circle.
type MarginReport struct {
	Family coeffs.Family
	// Margin is min(|z|-1) over all roots, or +Inf when there are none.
	Margin      float64
	ClosestRoot *roots.Root
	Risk        RiskTier
	Distances   []float64
}

// Margin derives the margin report of a classification result. The first
// root in solver order wins ties.
func Margin(res *Result) *MarginReport {
	rep := &MarginReport{
		Family:    res.Family,
		Margin:    math.Inf(1),
		Risk:      RiskLow,
		Distances: make([]float64, len(res.Roots)),
	}
	if len(res.Roots) == 0 {
		return rep
	}

	best := 0
	for i, r := range res.Roots {
		rep.Distances[i] = r.Distance()
		if rep.Distances[i] < rep.Distances[best] {
			best = i
		}
	}
	closest := res.Roots[best]
	rep.Margin = rep.Distances[best]
	rep.ClosestRoot = &closest
	rep.Risk = RiskFromMargin(rep.Margin)
	return rep
}

// AnalyzeMargin classifies raw coefficients and returns their margin report.
func AnalyzeMargin(raw any, fam coeffs.Family) (*MarginReport, error) {
	res, err := Classify(raw, fam)
	if err != nil {
		return nil, err
	}
	return Margin(res), nil
}

// Finite reports whether the margin is a finite number.
func (m MarginReport) Finite() bool {
	return !math.IsInf(m.Margin, 0)
}

// MarginValue returns the margin as a pointer, nil when it is infinite.
func (m MarginReport) MarginValue() *float64 {
	if !m.Finite() {
		return nil
	}
	v := m.Margin
	return &v
}

type marginJSON struct {
	Family      coeffs.Family `json:"family"`
	Margin      *float64      `json:"stability_margin"`
	ClosestRoot *roots.Root   `json:"closest_root"`
	Risk        RiskTier      `json:"risk_level"`
	Distances   []float64     `json:"all_distances"`
}

// MarshalJSON renders an infinite margin as null.
func (m MarginReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(marginJSON{
		Family:      m.Family,
		Margin:      m.MarginValue(),
		ClosestRoot: m.ClosestRoot,
		Risk:        m.Risk,
		Distances:   m.Distances,
	})
}
