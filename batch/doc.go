// Package batch applies the unit-circle diagnostics to collections of named
// models.
//
// # Single Family
//
// Classify checks many coefficient vectors against one condition and Compare
// ranks them by stability margin:
//
//	cmp, err := batch.Compare(
//	    []any{[]float64{0.5}, []float64{1.1}},
//	    []string{"A", "B"},
//	    coeffs.AR, nil)
//	fmt.Println(cmp.Best.Name, cmp.Worst.Name) // A B
//
// A failing item carries its error and never aborts the batch. Only a
// mismatch between the number of names and models fails the whole call.
//
// # ARMA Models
//
// Analyze runs the full AR and MA analysis per model and counts the outcomes:
//
//	models, _ := batch.LoadFile("models.yaml")
//	report, err := batch.Analyze(models, nil, batch.DefaultOptions())
//	fmt.Printf("%d/%d valid\n", report.Summary.Valid, report.Summary.Total)
//
// Items are analyzed concurrently, bounded by Options.Workers. Results always
// come back in input order.
package batch
