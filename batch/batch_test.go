package batch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/diagerr"
)

func TestClassifyNamedModels(t *testing.T) {
	items, err := Classify([]any{[]float64{0.5}, []float64{1.1}}, []string{"A", "B"}, coeffs.AR, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "A", items[0].Name)
	assert.True(t, items[0].Satisfied)
	assert.Equal(t, 1, items[0].NumRoots)
	assert.Equal(t, "B", items[1].Name)
	assert.False(t, items[1].Satisfied)
	assert.Equal(t, 1, items[1].Index)
}

func TestClassifyDefaultNames(t *testing.T) {
	items, err := Classify([]any{"0.5", "0.2 0.1", []int{0}}, nil, coeffs.MA, nil)
	require.NoError(t, err)
	assert.Equal(t, "Model_1", items[0].Name)
	assert.Equal(t, "Model_3", items[2].Name)
}

func TestClassifyNameCountMismatch(t *testing.T) {
	inputs := []any{[]float64{0.5}, []float64{0.3}}

	_, err := Classify(inputs, []string{"only"}, coeffs.AR, nil)
	require.Error(t, err)
	assert.True(t, diagerr.IsCardinality(err))

	items, err := Classify(inputs, []string{"a", "b"}, coeffs.AR, nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestClassifyIsolatesItemErrors(t *testing.T) {
	inputs := []any{[]float64{0.5}, []float64{}, nil, "x y", []float64{0.9}}
	items, err := Classify(inputs, nil, coeffs.AR, &Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.True(t, items[0].OK())
	assert.True(t, diagerr.IsInputValue(items[1].Err))
	assert.True(t, diagerr.IsInputType(items[2].Err))
	assert.True(t, diagerr.IsInputValue(items[3].Err))
	assert.NotEmpty(t, items[3].Error)
	assert.False(t, items[3].Satisfied)
	assert.Nil(t, items[3].Margin)
	assert.True(t, items[4].OK())
}

func TestClassifyKeepsInputOrder(t *testing.T) {
	inputs := make([]any, 50)
	for i := range inputs {
		inputs[i] = []float64{float64(i) / 100}
	}
	items, err := Classify(inputs, nil, coeffs.AR, &Options{Workers: 8})
	require.NoError(t, err)
	for i, it := range items {
		assert.Equal(t, i, it.Index)
		assert.InDelta(t, float64(i)/100, it.Coefficients[0], 1e-15)
	}
}

func TestCompareBestWorst(t *testing.T) {
	cmp, err := Compare([]any{[]float64{0.5}, []float64{1.1}}, []string{"A", "B"}, coeffs.AR, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, cmp.Total)
	assert.Equal(t, 1, cmp.Satisfied)
	assert.Equal(t, 1, cmp.Unsatisfied)
	assert.InDelta(t, 0.5, cmp.Rate, 1e-12)
	require.NotNil(t, cmp.Best)
	require.NotNil(t, cmp.Worst)
	assert.Equal(t, "A", cmp.Best.Name)
	assert.Equal(t, "B", cmp.Worst.Name)
}

func TestCompareRankingAndTies(t *testing.T) {
	inputs := []any{[]float64{0.5}, []float64{0.9}, []float64{-0.5}, []float64{}, []float64{0.1}}
	cmp, err := Compare(inputs, []string{"a", "b", "c", "d", "e"}, coeffs.MA, nil)
	require.NoError(t, err)

	names := make([]string, len(cmp.Ranking))
	for i, it := range cmp.Ranking {
		names[i] = it.Name
	}
	// a and c have equal margins and keep input order; d failed.
	assert.Equal(t, []string{"e", "a", "c", "b"}, names)
	assert.Equal(t, 5, cmp.Total)
	assert.Equal(t, 4, cmp.Satisfied)
	assert.Equal(t, 1, cmp.Unsatisfied)
	assert.Len(t, cmp.Items, 5)
}

func TestCompareEmpty(t *testing.T) {
	cmp, err := Compare([]any{}, nil, coeffs.AR, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp.Total)
	assert.Equal(t, 0.0, cmp.Rate)
	assert.Nil(t, cmp.Best)
	assert.Nil(t, cmp.Worst)
	assert.Empty(t, cmp.Ranking)
}

func TestCompareInfiniteMarginRanksFirst(t *testing.T) {
	cmp, err := Compare([]any{[]float64{0.5}, []float64{0}}, []string{"finite", "none"}, coeffs.AR, nil)
	require.NoError(t, err)
	assert.Equal(t, "none", cmp.Best.Name)
	assert.True(t, math.IsInf(cmp.Best.Margin.Margin, 1))
}

func TestAnalyzeSummary(t *testing.T) {
	models := []Model{
		{Name: "good", AR: []float64{0.5}, MA: []float64{0.3}},
		{AR: []float64{1.2}, MA: []float64{0.3}},
		{MA: "0.95"},
		{Name: "empty"},
		{Name: "bad", AR: "abc"},
	}
	report, err := Analyze(models, nil, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, report.Results, 5)

	assert.Equal(t, "good", report.Results[0].Name)
	assert.Equal(t, "Model_2", report.Results[1].Name)
	assert.True(t, diagerr.IsInputValue(report.Results[3].Err))
	assert.True(t, diagerr.IsInputValue(report.Results[4].Err))

	s := report.Summary
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Valid)
	assert.Equal(t, 2, s.Errors)
	assert.Equal(t, 1, s.ARStationary)
	assert.Equal(t, 3, s.MAInvertible)
}

func TestAnalyzeExplicitNames(t *testing.T) {
	models := []Model{{Name: "ignored", AR: []float64{0.5}}, {MA: []float64{0.5}}}

	report, err := Analyze(models, []string{"x", "y"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", report.Results[0].Name)
	assert.Equal(t, "y", report.Results[1].Name)

	_, err = Analyze(models, []string{"x"}, nil)
	assert.True(t, diagerr.IsCardinality(err))
}
