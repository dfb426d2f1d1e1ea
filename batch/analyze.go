package batch

import (
	"github.com/sartorproj/tsdiag/arma"
)

// Model is one named entry of a combined batch. AR and MA hold raw
// coefficients in any form coeffs.Normalize accepts; nil marks a part absent.
type Model struct {
	Name string `json:"name,omitempty" yaml:"name"`
	AR   any    `json:"ar,omitempty" yaml:"ar"`
	MA   any    `json:"ma,omitempty" yaml:"ma"`
}

// ModelResult is the per-model outcome of Analyze.
type ModelResult struct {
	Name     string         `json:"model_name"`
	Index    int            `json:"model_index"`
	Analysis *arma.Analysis `json:"analysis,omitempty"`
	Err      error          `json:"-"`
	Error    string         `json:"error,omitempty"`
}

// Summary counts outcomes across a combined batch.
type Summary struct {
	Total        int `json:"total_models"`
	Valid        int `json:"valid_models"`
	Errors       int `json:"error_models"`
	ARStationary int `json:"ar_stationary"`
	MAInvertible int `json:"ma_invertible"`
}

// Report is the outcome of Analyze.
type Report struct {
	Results []ModelResult `json:"results"`
	Summary Summary       `json:"summary"`
}

// Analyze runs the full AR and MA analysis on every model. When names is nil
// each model keeps its own Name, falling back to Model_i.
func Analyze(models []Model, names []string, opts *Options) (*Report, error) {
	if names == nil {
		defaults, _ := resolveNames(len(models), nil)
		for i, m := range models {
			if m.Name != "" {
				defaults[i] = m.Name
			}
		}
		names = defaults
	}
	names, err := resolveNames(len(models), names)
	if err != nil {
		return nil, err
	}

	results := make([]ModelResult, len(models))
	forEach(len(models), opts, func(i int) {
		r := ModelResult{Name: names[i], Index: i}
		a, err := arma.Analyze(models[i].AR, models[i].MA)
		if err != nil {
			r.Err = err
			r.Error = err.Error()
		} else {
			r.Analysis = a
		}
		results[i] = r
	})

	return &Report{Results: results, Summary: summarize(results)}, nil
}

func summarize(results []ModelResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Errors++
			continue
		}
		if r.Analysis.Valid() {
			s.Valid++
		}
		if r.Analysis.AR != nil && r.Analysis.AR.Result.Satisfied {
			s.ARStationary++
		}
		if r.Analysis.MA != nil && r.Analysis.MA.Result.Satisfied {
			s.MAInvertible++
		}
	}
	return s
}
