package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const examplesText = `
tsdiag usage examples

1. AR model stationarity:
   tsdiag stationarity -c "0.5,-0.3"
   tsdiag stationarity -c "0.8,0.15" --analysis --suggest

2. MA model invertibility:
   tsdiag invertibility -c "0.5,-0.3"
   tsdiag invertibility -c "0.8,0.15" --analysis --suggest

3. ARMA model check:
   tsdiag check --ar "0.5,-0.3" --ma "0.4,0.2"
   tsdiag check -a "0.8" -m "0.6"

4. Coefficient formats:
   - comma separated: "0.5,-0.3,0.1"
   - space separated: "0.5 -0.3 0.1"
   - mixed:           "0.5, -0.3 0.1"

5. Common AR(1) models:
   - stationary:     tsdiag stationarity -c "0.5"
   - non-stationary: tsdiag stationarity -c "1.1"
   - unit root:      tsdiag stationarity -c "1.0"

6. Common MA(1) models:
   - invertible:     tsdiag invertibility -c "0.5"
   - non-invertible: tsdiag invertibility -c "1.1"

7. Batch analysis:
   tsdiag batch --file models.yaml
   tsdiag batch --file models.csv --compare ar -o json

8. REST server:
   tsdiag serve --port 8000

Exit codes: 0 condition holds, 1 condition fails, 2 invalid input.
`

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show usage examples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), examplesText)
			return nil
		},
	}
}
