package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sartorproj/tsdiag/arma"
	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/diagnostic"
	"github.com/sartorproj/tsdiag/internal/logging"
)

type condition struct {
	use    string
	family coeffs.Family
	short  string
}

var (
	conditionStationarity  = condition{use: "stationarity", family: coeffs.AR, short: "Check AR model stationarity"}
	conditionInvertibility = condition{use: "invertibility", family: coeffs.MA, short: "Check MA model invertibility"}
)

// conditionReport is the output of the stationarity and invertibility
// commands.
type conditionReport struct {
	Result     *diagnostic.Result           `json:"result"`
	Margin     *diagnostic.MarginReport     `json:"margin,omitempty"`
	Suggestion *diagnostic.SuggestionReport `json:"suggestion,omitempty"`
}

func (r conditionReport) String() string {
	var b strings.Builder
	b.WriteString(r.Result.String())
	if r.Margin != nil {
		b.WriteString(banner("Stability margin analysis", 50))
		b.WriteString(r.Margin.String())
	}
	if r.Suggestion != nil {
		b.WriteString(banner("Suggested modifications", 50))
		b.WriteString(r.Suggestion.String())
	}
	return b.String()
}

func newConditionCmd(c condition) *cobra.Command {
	var (
		raw      string
		analysis bool
		suggest  bool
	)

	cmd := &cobra.Command{
		Use:   c.use,
		Short: c.short,
		Long: fmt.Sprintf("%s.\n\nThe %s(p) model satisfies the %s condition when every root of its\n"+
			"characteristic polynomial lies strictly outside the unit circle.",
			c.short, c.family, c.family.Condition()),
		Example: fmt.Sprintf("  tsdiag %s -c \"0.5,-0.3\"\n  tsdiag %s -c \"0.8,0.15\" --analysis --suggest", c.use, c.use),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return inputError(err)
			}
			logger := cliCtx.Logger.Named(c.use)

			res, err := diagnostic.Classify(raw, c.family)
			if err != nil {
				logger.Debug("classification failed", logging.Err(err))
				return inputError(err)
			}
			logger.Debug("classified",
				logging.String("family", c.family.String()),
				logging.Bool("satisfied", res.Satisfied),
				logging.Int("roots", len(res.Roots)),
			)

			report := conditionReport{Result: res}
			if analysis {
				report.Margin = diagnostic.Margin(res)
			}
			if suggest {
				report.Suggestion = diagnostic.SuggestFor(res)
			}
			if err := PrintResult(cmd, report); err != nil {
				return inputError(err)
			}

			if !res.Satisfied {
				return failed()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&raw, "coefficients", "c", "", fmt.Sprintf("%s coefficients separated by commas or spaces, e.g. \"0.5,-0.3,0.1\" [REQUIRED]", c.family))
	cmd.Flags().BoolVarP(&analysis, "analysis", "a", false, "show the stability margin analysis")
	cmd.Flags().BoolVarP(&suggest, "suggest", "s", false, "suggest coefficient changes for failing models")
	_ = cmd.MarkFlagRequired("coefficients")
	return cmd
}

// checkReport is the output of the check command.
type checkReport struct {
	Analysis *arma.Analysis `json:"analysis"`
	Valid    bool           `json:"all_passed"`
}

func (r checkReport) String() string {
	var b strings.Builder
	a := r.Analysis
	if a.AR != nil {
		b.WriteString("Checking AR model stationarity...\n")
		b.WriteString(a.AR.Result.String())
	}
	if a.MA != nil {
		if a.AR != nil {
			fmt.Fprintf(&b, "\n%s\n\n", strings.Repeat("=", 60))
		}
		b.WriteString("Checking MA model invertibility...\n")
		b.WriteString(a.MA.Result.String())
	}
	if a.Overall != nil {
		b.WriteString(banner("ARMA model summary", 60))
		fmt.Fprintf(&b, "AR part: %s\n", partStatus(a.AR.Result))
		fmt.Fprintf(&b, "MA part: %s\n", partStatus(a.MA.Result))
		if r.Valid {
			b.WriteString("✓ ARMA model satisfies all conditions\n")
		} else {
			b.WriteString("✗ ARMA model needs adjustment\n")
		}
	}
	return b.String()
}

func partStatus(res *diagnostic.Result) string {
	if res.Satisfied {
		return "✓ " + res.Family.Adjective()
	}
	return "✗ not " + res.Family.Adjective()
}

func newCheckCmd() *cobra.Command {
	var arRaw, maRaw string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check AR stationarity and MA invertibility together",
		Long:  "Check the AR part, the MA part, or both parts of an ARMA model.\nThe command succeeds only when every supplied part passes.",
		Example: "  tsdiag check --ar \"0.5,-0.3\" --ma \"0.4,0.2\"\n" +
			"  tsdiag check -a \"0.8\" -m \"0.6\"",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return inputError(err)
			}

			var ar, ma any
			if arRaw != "" {
				ar = arRaw
			}
			if maRaw != "" {
				ma = maRaw
			}
			if ar == nil && ma == nil {
				return inputError(errors.New("AR coefficients, MA coefficients, or both must be provided"))
			}

			a, err := arma.Analyze(ar, ma)
			if err != nil {
				return inputError(err)
			}
			cliCtx.Logger.Debug("ARMA check finished",
				logging.Int("p", a.Order.P),
				logging.Int("q", a.Order.Q),
				logging.Bool("valid", a.Valid()),
			)

			report := checkReport{Analysis: a, Valid: a.Valid()}
			if err := PrintResult(cmd, report); err != nil {
				return inputError(err)
			}
			if !report.Valid {
				return failed()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&arRaw, "ar", "a", "", "AR coefficients separated by commas or spaces")
	cmd.Flags().StringVarP(&maRaw, "ma", "m", "", "MA coefficients separated by commas or spaces")
	return cmd
}
