package batch

import (
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/diagerr"
	"github.com/sartorproj/tsdiag/diagnostic"
)

// Options controls batch execution.
type Options struct {
	Workers int // Maximum items analyzed concurrently (default: GOMAXPROCS)
}

// DefaultOptions returns default batch options.
func DefaultOptions() *Options {
	return &Options{Workers: runtime.GOMAXPROCS(0)}
}

func (o *Options) workers() int {
	if o == nil || o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

// Item is the per-model outcome of a single-family batch.
type Item struct {
	Name         string                   `json:"model_name"`
	Index        int                      `json:"model_index"`
	Family       coeffs.Family            `json:"family"`
	Coefficients coeffs.Vector            `json:"coefficients"`
	Satisfied    bool                     `json:"satisfied"`
	NumRoots     int                      `json:"num_roots"`
	Margin       *diagnostic.MarginReport `json:"margin,omitempty"`
	Result       *diagnostic.Result       `json:"-"`
	Err          error                    `json:"-"`
	Error        string                   `json:"error,omitempty"`
}

// OK reports whether the item was analyzed without error.
func (it *Item) OK() bool {
	return it.Err == nil
}

// resolveNames returns names or, when nil, Model_1..Model_n.
func resolveNames(n int, names []string) ([]string, error) {
	if names == nil {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("Model_%d", i+1)
		}
		return out, nil
	}
	if len(names) != n {
		return nil, diagerr.Cardinality("number of model names (%d) must equal number of models (%d)", len(names), n)
	}
	return names, nil
}

// forEach runs fn for every index in [0, n) on a bounded number of
// goroutines. Each call writes only its own slot, so output order always
// matches input order.
func forEach(n int, opts *Options, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(opts.workers())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// Classify checks every input against the condition of fam. Per-item
// failures are recorded on the item and never abort the batch; only a
// name/model count mismatch fails the call.
func Classify(inputs []any, names []string, fam coeffs.Family, opts *Options) ([]Item, error) {
	names, err := resolveNames(len(inputs), names)
	if err != nil {
		return nil, err
	}

	items := make([]Item, len(inputs))
	forEach(len(inputs), opts, func(i int) {
		items[i] = classifyOne(inputs[i], names[i], i, fam)
	})
	return items, nil
}

func classifyOne(raw any, name string, index int, fam coeffs.Family) Item {
	it := Item{Name: name, Index: index, Family: fam}
	res, err := diagnostic.Classify(raw, fam)
	if err != nil {
		it.Err = err
		it.Error = err.Error()
		return it
	}
	it.Result = res
	it.Coefficients = res.Coefficients
	it.Satisfied = res.Satisfied
	it.NumRoots = len(res.Roots)
	it.Margin = diagnostic.Margin(res)
	return it
}

// Comparison ranks the items of a single-family batch by margin.
type Comparison struct {
	Family      coeffs.Family `json:"family"`
	Total       int           `json:"total_models"`
	Satisfied   int           `json:"satisfied_models"`
	Unsatisfied int           `json:"unsatisfied_models"`
	Rate        float64       `json:"satisfied_rate"`
	Best        *Item         `json:"best_model"`
	Worst       *Item         `json:"worst_model"`
	// Ranking holds the successfully analyzed items, largest margin first.
	Ranking []Item `json:"ranking"`
	Items   []Item `json:"all_results"`
}

// Compare classifies inputs and ranks them.
func Compare(inputs []any, names []string, fam coeffs.Family, opts *Options) (*Comparison, error) {
	items, err := Classify(inputs, names, fam, opts)
	if err != nil {
		return nil, err
	}
	return CompareItems(fam, items), nil
}

// CompareItems ranks already classified items. Failed items count as
// unsatisfied and are left out of the ranking. Equal margins keep input
// order.
func CompareItems(fam coeffs.Family, items []Item) *Comparison {
	c := &Comparison{
		Family:  fam,
		Total:   len(items),
		Items:   items,
		Ranking: []Item{},
	}
	for _, it := range items {
		if it.Satisfied {
			c.Satisfied++
		}
		if it.OK() {
			c.Ranking = append(c.Ranking, it)
		}
	}
	c.Unsatisfied = c.Total - c.Satisfied
	if c.Total > 0 {
		c.Rate = float64(c.Satisfied) / float64(c.Total)
	}

	sort.SliceStable(c.Ranking, func(i, j int) bool {
		return c.Ranking[i].Margin.Margin > c.Ranking[j].Margin.Margin
	})
	if n := len(c.Ranking); n > 0 {
		c.Best = &c.Ranking[0]
		c.Worst = &c.Ranking[n-1]
	}
	return c
}
