package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a bank file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// document is the on-disk shape of a bank file.
type document struct {
	Questions []Question `json:"questions" yaml:"questions"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported bank file extension %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// Parse decodes and validates a bank document.
func Parse(data []byte, format Format) ([]Question, error) {
	var doc document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml bank: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json bank: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown bank format %q", format)
	}

	if err := Validate(doc.Questions); err != nil {
		return nil, err
	}
	return doc.Questions, nil
}

// LoadFile reads a bank from a YAML or JSON file.
func LoadFile(path string) ([]Question, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	questions, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return questions, nil
}
