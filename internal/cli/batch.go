package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sartorproj/tsdiag/arma"
	"github.com/sartorproj/tsdiag/batch"
	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/diagnostic"
	"github.com/sartorproj/tsdiag/internal/logging"
)

// analyzeReport wraps batch.Report for text output.
type analyzeReport struct {
	*batch.Report
}

func (r analyzeReport) String() string {
	rows := make([][]string, len(r.Results))
	for i, res := range r.Results {
		if res.Err != nil {
			rows[i] = []string{res.Name, "-", "-", "error", res.Error}
			continue
		}
		a := res.Analysis
		rows[i] = []string{
			res.Name,
			partCell(a.AR),
			partCell(a.MA),
			strconv.FormatBool(a.Valid()),
			minMargin(a),
		}
	}

	var b strings.Builder
	b.WriteString(FormatTable([]string{"MODEL", "AR", "MA", "VALID", "MIN MARGIN"}, rows))
	s := r.Summary
	fmt.Fprintf(&b, "\nTotal: %d  Valid: %d  Errors: %d  AR stationary: %d  MA invertible: %d\n",
		s.Total, s.Valid, s.Errors, s.ARStationary, s.MAInvertible)
	return b.String()
}

func partCell(p *arma.Part) string {
	if p == nil {
		return "-"
	}
	if p.Result.Satisfied {
		return p.Result.Family.Adjective()
	}
	return "not " + p.Result.Family.Adjective()
}

func minMargin(a *arma.Analysis) string {
	m := diagnostic.MarginReport{}
	switch {
	case a.Overall != nil:
		m.Margin = a.Overall.MinMargin
	case a.AR != nil:
		m = *a.AR.Margin
	case a.MA != nil:
		m = *a.MA.Margin
	}
	return formatMargin(m)
}

func formatMargin(m diagnostic.MarginReport) string {
	if !m.Finite() {
		return "inf"
	}
	return fmt.Sprintf("%.6f", m.Margin)
}

// compareReport wraps batch.Comparison for text output.
type compareReport struct {
	*batch.Comparison
}

func (r compareReport) String() string {
	rows := make([][]string, 0, len(r.Ranking))
	for i, it := range r.Ranking {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			it.Name,
			strconv.FormatBool(it.Satisfied),
			formatMargin(*it.Margin),
			string(it.Margin.Risk),
		})
	}

	var b strings.Builder
	b.WriteString(FormatTable([]string{"RANK", "MODEL", strings.ToUpper(r.Family.Adjective()), "MARGIN", "RISK"}, rows))
	for _, it := range r.Items {
		if !it.OK() {
			fmt.Fprintf(&b, "%s: error: %s\n", it.Name, it.Error)
		}
	}
	fmt.Fprintf(&b, "\n%s models: %d  %s: %d  rate: %.1f%%\n",
		r.Family, r.Total, r.Family.Adjective(), r.Satisfied, 100*r.Rate)
	if r.Best != nil {
		fmt.Fprintf(&b, "Best: %s  Worst: %s\n", r.Best.Name, r.Worst.Name)
	}
	return b.String()
}

func newBatchCmd() *cobra.Command {
	var (
		file    string
		compare string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Analyze many models from a YAML, JSON or CSV file",
		Long: "Analyze every model listed in a file. YAML and JSON files hold a list of\n" +
			"{name, ar, ma} entries; CSV files have name, ar and ma columns.\n" +
			"With --compare the models are ranked by the margin of one family.",
		Example: "  tsdiag batch --file models.yaml\n  tsdiag batch --file models.csv --compare ar",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return inputError(err)
			}
			logger := cliCtx.Logger.Named("batch")
			opts := &batch.Options{Workers: cliCtx.Config.Batch.Workers}

			models, err := batch.LoadFile(file)
			if err != nil {
				return inputError(err)
			}
			logger.Debug("models loaded", logging.String("file", file), logging.Int("count", len(models)))

			if compare != "" {
				var fam coeffs.Family
				if err := fam.UnmarshalText([]byte(compare)); err != nil {
					return inputError(err)
				}
				cmp, err := compareModels(models, fam, opts)
				if err != nil {
					return inputError(err)
				}
				return printOrFail(cmd, compareReport{cmp})
			}

			rep, err := batch.Analyze(models, nil, opts)
			if err != nil {
				return inputError(err)
			}
			return printOrFail(cmd, analyzeReport{rep})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "model file (.yaml, .yml, .json or .csv) [REQUIRED]")
	cmd.Flags().StringVar(&compare, "compare", "", "rank models by the margin of one family (ar or ma)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// compareModels ranks the fam part of every model. Models without that part
// are reported as per-item errors.
func compareModels(models []batch.Model, fam coeffs.Family, opts *batch.Options) (*batch.Comparison, error) {
	inputs := make([]any, len(models))
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("Model_%d", i+1)
		}
		if fam == coeffs.AR {
			inputs[i] = m.AR
		} else {
			inputs[i] = m.MA
		}
	}
	return batch.Compare(inputs, names, fam, opts)
}

func printOrFail(cmd *cobra.Command, data interface{}) error {
	if err := PrintResult(cmd, data); err != nil {
		return inputError(err)
	}
	return nil
}
