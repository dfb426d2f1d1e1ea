package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type modelFile struct {
	Models []Model `yaml:"models"`
}

// LoadYAML loads models from a YAML (or JSON) file of the form
//
//	models:
//	  - name: A
//	    ar: [0.5, -0.3]
//	    ma: "0.4"
func LoadYAML(filename string) ([]Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadYAMLFromReader(file)
}

// LoadYAMLFromReader loads models from an io.Reader.
func LoadYAMLFromReader(r io.Reader) ([]Model, error) {
	var doc modelFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no models found in YAML")
		}
		return nil, fmt.Errorf("decode models: %w", err)
	}
	if len(doc.Models) == 0 {
		return nil, errors.New("no models found in YAML")
	}
	return doc.Models, nil
}

// LoadFile picks the loader from the file extension: .csv, or .yaml, .yml
// and .json.
func LoadFile(filename string) ([]Model, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return LoadCSV(filename, nil)
	case ".yaml", ".yml", ".json":
		return LoadYAML(filename)
	}
	return nil, fmt.Errorf("unsupported model file %q (expected .csv, .yaml, .yml or .json)", filename)
}
