package batch

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

// CSVOptions holds options for CSV model loading.
type CSVOptions struct {
	NameColumn string // Column name for model names (default: "name")
	ARColumn   string // Column name for AR coefficients (default: "ar")
	MAColumn   string // Column name for MA coefficients (default: "ma")
	HasHeader  bool   // Whether CSV has header row (default: true)
	Delimiter  rune   // Field delimiter (default: ',')
	SkipRows   int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		NameColumn: "name",
		ARColumn:   "ar",
		MAColumn:   "ma",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// LoadCSV loads models from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) ([]Model, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads models from an io.Reader.
//
// Coefficient cells hold space or semicolon separated numbers, or a quoted
// comma separated list. An empty cell marks that part absent.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) ([]Model, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	// Skip rows if needed
	for i := 0; i < opts.SkipRows; i++ {
		_, err := reader.Read()
		if err != nil {
			return nil, err
		}
	}

	// No header - columns are name, ar, ma
	nameIdx, arIdx, maIdx := 0, 1, 2

	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}

		nameIdx, arIdx, maIdx = -1, -1, -1
		for i, h := range header {
			h = strings.ToLower(strings.TrimSpace(strings.Trim(h, "\"")))
			switch h {
			case strings.ToLower(opts.NameColumn):
				nameIdx = i
			case strings.ToLower(opts.ARColumn):
				arIdx = i
			case strings.ToLower(opts.MAColumn):
				maIdx = i
			}
		}
		if arIdx == -1 && maIdx == -1 {
			return nil, errors.New("CSV header has neither an AR nor an MA column")
		}
	}

	var models []Model
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(record) {
			continue
		}

		models = append(models, Model{
			Name: cell(record, nameIdx),
			AR:   coefficientCell(record, arIdx),
			MA:   coefficientCell(record, maIdx),
		})
	}

	if len(models) == 0 {
		return nil, errors.New("no models found in CSV")
	}
	return models, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(record[idx], "\""))
}

// coefficientCell returns the cell as a coefficient string, or nil when empty.
func coefficientCell(record []string, idx int) any {
	s := strings.ReplaceAll(cell(record, idx), ";", " ")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
