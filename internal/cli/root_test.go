package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	code := exitCode(cmd, cmd.Execute())
	return stdout.String(), stderr.String(), code
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommandStructure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "tsdiag", cmd.Use)

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"stationarity", "invertibility", "check", "batch", "serve", "examples"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}

	for _, flag := range []string{"config", "log-level", "output", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing flag %q", flag)
	}
}

func TestStationarityExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		coeffs string
		code   int
	}{
		{"stationary", "0.5", ExitOK},
		{"stationary ar2", "0.5,-0.3", ExitOK},
		{"unit root", "1.0", ExitFailed},
		{"explosive", "1.1", ExitFailed},
		{"invalid", "0.5,abc", ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, code := run(t, "stationarity", "-c", tt.coeffs)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestStationarityTextOutput(t *testing.T) {
	stdout, _, code := run(t, "stationarity", "-c", "1.2", "--analysis", "--suggest")
	assert.Equal(t, ExitFailed, code)
	assert.Contains(t, stdout, "Stationarity check: not stationary")
	assert.Contains(t, stdout, "Stability margin analysis")
	assert.Contains(t, stdout, "Risk level: high")
	assert.Contains(t, stdout, "Suggested coefficients: [0.9500]")
}

func TestInvalidInputWritesError(t *testing.T) {
	_, stderr, code := run(t, "invertibility", "-c", "x")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "Error:")
}

func TestMissingCoefficientsFlag(t *testing.T) {
	_, stderr, code := run(t, "stationarity")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "coefficients")
}

func TestInvertibilityJSONOutput(t *testing.T) {
	stdout, _, code := run(t, "invertibility", "-c", "0.5", "-o", "json", "--analysis")
	require.Equal(t, ExitOK, code)

	var out struct {
		Result struct {
			Family    string `json:"family"`
			Satisfied bool   `json:"satisfied"`
		} `json:"result"`
		Margin map[string]any `json:"margin"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "MA", out.Result.Family)
	assert.True(t, out.Result.Satisfied)
	assert.InDelta(t, 1.0, out.Margin["stability_margin"], 1e-9)
}

func TestUnsupportedOutputFormat(t *testing.T) {
	_, _, code := run(t, "stationarity", "-c", "0.5", "-o", "xml")
	assert.Equal(t, ExitError, code)
}

func TestCheck(t *testing.T) {
	stdout, _, code := run(t, "check", "--ar", "0.5,-0.3", "--ma", "0.4,0.2")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "ARMA model summary")
	assert.Contains(t, stdout, "✓ ARMA model satisfies all conditions")

	stdout, _, code = run(t, "check", "-a", "0.5", "-m", "1.5")
	assert.Equal(t, ExitFailed, code)
	assert.Contains(t, stdout, "MA part: ✗ not invertible")

	stdout, _, code = run(t, "check", "--ma", "0.4")
	assert.Equal(t, ExitOK, code)
	assert.NotContains(t, stdout, "ARMA model summary")
}

func TestCheckNeedsAPart(t *testing.T) {
	_, stderr, code := run(t, "check")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "must be provided")
}

func TestBatchYAML(t *testing.T) {
	path := writeFile(t, "models.yaml", `
models:
  - name: good
    ar: [0.5, -0.3]
    ma: [0.4]
  - name: explosive
    ar: "1.2"
  - name: broken
    ma: "abc"
`)

	stdout, _, code := run(t, "batch", "--file", path)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "good")
	assert.Contains(t, stdout, "explosive")
	assert.Contains(t, stdout, "Total: 3  Valid: 1  Errors: 1")
}

func TestBatchCompareJSON(t *testing.T) {
	path := writeFile(t, "models.csv", "name,ar,ma\nslow,0.9,\nfast,0.2,\nnone,,0.5\n")

	stdout, _, code := run(t, "batch", "--file", path, "--compare", "ar", "-o", "json")
	require.Equal(t, ExitOK, code)

	var out struct {
		Best struct {
			Name string `json:"model_name"`
		} `json:"best_model"`
		Total     int `json:"total_models"`
		Satisfied int `json:"satisfied_models"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "fast", out.Best.Name)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 2, out.Satisfied)
}

func TestBatchBadFile(t *testing.T) {
	_, _, code := run(t, "batch", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, ExitError, code)

	_, _, code = run(t, "batch", "--file", "models.txt")
	assert.Equal(t, ExitError, code)
}

func TestBatchCompareUnknownFamily(t *testing.T) {
	path := writeFile(t, "models.csv", "name,ar,ma\nslow,0.9,\n")

	_, stderr, code := run(t, "batch", "--file", path, "--compare", "arima")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "unknown model family")
}

func TestExamples(t *testing.T) {
	stdout, _, code := run(t, "examples")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "tsdiag check --ar")
}

func TestExitCodeError(t *testing.T) {
	cmd := NewRootCommand()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)

	assert.Equal(t, ExitOK, exitCode(cmd, nil))
	assert.Equal(t, ExitFailed, exitCode(cmd, failed()))
	assert.Empty(t, stderr.String())

	assert.Equal(t, ExitError, exitCode(cmd, errors.New("boom")))
	assert.Contains(t, stderr.String(), "Error: boom")
}

func TestFormatTable(t *testing.T) {
	out := FormatTable([]string{"A", "NAME"}, [][]string{{"1", "x"}, {"22", "longer"}})
	assert.Equal(t, "A   NAME  \n--  ------\n1   x     \n22  longer\n", out)
	assert.Empty(t, FormatTable(nil, nil))
}
