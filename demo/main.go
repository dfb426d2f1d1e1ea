// Package main demonstrates stationarity and invertibility diagnostics on a
// set of textbook ARMA models.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sartorproj/tsdiag/arma"
	"github.com/sartorproj/tsdiag/batch"
	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/diagnostic"
)

// Scenario defines a model to diagnose
type Scenario struct {
	Name        string // Display name
	Description string // Brief description
	AR          any    // AR coefficients (nil = no AR part)
	MA          any    // MA coefficients (nil = no MA part)
}

// ScenarioResult holds diagnostics for JSON export
type ScenarioResult struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description"`
	Analysis    *arma.Analysis                 `json:"analysis,omitempty"`
	Suggestions []*diagnostic.SuggestionReport `json:"suggestions,omitempty"`
	Rechecked   map[string]bool                `json:"rechecked,omitempty"` // verdict after applying suggestions
	Error       string                         `json:"error,omitempty"`
}

// OutputData holds all results for export
type OutputData struct {
	Scenarios   []ScenarioResult  `json:"scenarios"`
	ARRanking   *batch.Comparison `json:"ar_ranking"`
	MARanking   *batch.Comparison `json:"ma_ranking"`
	BatchReport *batch.Report     `json:"batch_report"`
}

func main() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("tsdiag Demonstration - AR stationarity / MA invertibility")
	fmt.Println(strings.Repeat("=", 80))

	// Define scenarios - all configuration in one place
	scenarios := []Scenario{
		{Name: "White-noise-like AR(1)", AR: []float64{0.5}, Description: "Root at 2, comfortably stationary"},
		{Name: "Persistent AR(1)", AR: []float64{0.95}, Description: "Root just outside the unit circle"},
		{Name: "Random walk", AR: []float64{1.0}, Description: "Unit root, not stationary"},
		{Name: "Explosive AR(1)", AR: []float64{1.1}, Description: "Root inside the unit circle"},
		{Name: "Cyclical AR(2)", AR: "0.5, -0.3", Description: "Complex conjugate roots"},
		{Name: "Near-unit AR(2)", AR: []float64{0.8, 0.15}, Description: "Largest root close to 1"},
		{Name: "Invertible MA(1)", MA: []float64{0.5}, Description: "Root at -2"},
		{Name: "Non-invertible MA(1)", MA: []float64{1.1}, Description: "Root inside the unit circle"},
		{Name: "ARMA(1,1)", AR: []float64{0.7}, MA: []float64{0.4}, Description: "Both parts valid"},
		{Name: "ARMA(2,2)", AR: "0.6 0.3", MA: "1.2 0.5", Description: "Valid AR, non-invertible MA"},
	}

	output := OutputData{Scenarios: []ScenarioResult{}}

	for i, sc := range scenarios {
		fmt.Printf("\n%s\n[%d/%d] %s\n%s\n", strings.Repeat("=", 80), i+1, len(scenarios), sc.Name, strings.Repeat("=", 80))
		output.Scenarios = append(output.Scenarios, diagnose(sc))
	}

	// Rank single-family models by margin
	fmt.Printf("\n%s\nRANKING BY STABILITY MARGIN\n%s\n", strings.Repeat("=", 80), strings.Repeat("=", 80))
	output.ARRanking = rank(scenarios, coeffs.AR)
	output.MARanking = rank(scenarios, coeffs.MA)

	// Full batch analysis
	fmt.Printf("\n%s\nBATCH ANALYSIS\n%s\n", strings.Repeat("=", 80), strings.Repeat("=", 80))
	output.BatchReport = analyzeAll(scenarios)

	// Export results
	fmt.Printf("\n%s\nEXPORTING RESULTS\n%s\n", strings.Repeat("=", 80), strings.Repeat("=", 80))

	if data, err := json.MarshalIndent(output, "", "  "); err == nil {
		os.WriteFile("diagnostic_results.json", data, 0644)
		fmt.Printf("Exported %d scenarios to diagnostic_results.json\n", len(output.Scenarios))
	}

	fmt.Println(strings.Repeat("=", 80))
}

// diagnose runs the full analysis on one scenario and re-checks suggestions
func diagnose(sc Scenario) ScenarioResult {
	result := ScenarioResult{Name: sc.Name, Description: sc.Description}
	fmt.Printf("   %s\n", sc.Description)

	a, err := arma.Analyze(sc.AR, sc.MA)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		result.Error = err.Error()
		return result
	}
	result.Analysis = a

	for _, part := range []*arma.Part{a.AR, a.MA} {
		if part == nil {
			continue
		}
		res := part.Result
		fmt.Printf("   %s%v: %s, margin=%s, risk=%s\n",
			res.Family, []float64(res.Coefficients), verdict(res), formatMargin(part.Margin), part.Margin.Risk)
		for _, r := range res.Roots {
			fmt.Printf("      root %s\n", r)
		}

		if part.Suggestion.ModificationNeeded {
			result.Suggestions = append(result.Suggestions, part.Suggestion)
			for _, s := range part.Suggestion.Suggestions {
				fmt.Printf("      - %s\n", s)
			}
			if part.Suggestion.Suggested != nil {
				recheck, err := diagnostic.ClassifyVector(part.Suggestion.Suggested, res.Family)
				if err == nil {
					if result.Rechecked == nil {
						result.Rechecked = make(map[string]bool)
					}
					result.Rechecked[res.Family.String()] = recheck.Satisfied
					fmt.Printf("      suggested %v re-checked: %s\n", []float64(part.Suggestion.Suggested), verdict(recheck))
				}
			}
		}
	}

	if a.Overall != nil {
		fmt.Printf("   Overall: valid=%t, max risk=%s\n", a.Overall.Valid, a.Overall.MaxRisk)
	}
	return result
}

// rank compares all scenarios that carry the given part
func rank(scenarios []Scenario, fam coeffs.Family) *batch.Comparison {
	var inputs []any
	var names []string
	for _, sc := range scenarios {
		raw := sc.AR
		if fam == coeffs.MA {
			raw = sc.MA
		}
		if raw == nil {
			continue
		}
		inputs = append(inputs, raw)
		names = append(names, sc.Name)
	}

	cmp, err := batch.Compare(inputs, names, fam, nil)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return nil
	}

	fmt.Printf("   %s models: %d, %s: %d (%.0f%%)\n", fam, cmp.Total, fam.Adjective(), cmp.Satisfied, 100*cmp.Rate)
	for i, it := range cmp.Ranking {
		fmt.Printf("   %2d. %-24s margin=%s\n", i+1, it.Name, formatMargin(it.Margin))
	}
	return cmp
}

// analyzeAll runs the combined batch over every scenario
func analyzeAll(scenarios []Scenario) *batch.Report {
	models := make([]batch.Model, len(scenarios))
	for i, sc := range scenarios {
		models[i] = batch.Model{Name: sc.Name, AR: sc.AR, MA: sc.MA}
	}

	report, err := batch.Analyze(models, nil, batch.DefaultOptions())
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return nil
	}

	s := report.Summary
	fmt.Printf("   Total: %d, Valid: %d, Errors: %d, AR stationary: %d, MA invertible: %d\n",
		s.Total, s.Valid, s.Errors, s.ARStationary, s.MAInvertible)
	return report
}

func verdict(res *diagnostic.Result) string {
	if res.Satisfied {
		return res.Family.Adjective()
	}
	return "not " + res.Family.Adjective()
}

func formatMargin(m *diagnostic.MarginReport) string {
	if !m.Finite() {
		return "inf"
	}
	return fmt.Sprintf("%.4f", m.Margin)
}
