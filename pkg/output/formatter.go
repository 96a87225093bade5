// Package output renders resolved configuration for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter renders data to a writer.
type Formatter interface {
	// Format writes data to w according to cfg.
	Format(w io.Writer, data interface{}, cfg *FormatConfig) error

	// Name returns the format name used on the command line.
	Name() string
}

// FormatConfig contains options shared by all formatters.
type FormatConfig struct {
	// Pretty enables indentation for JSON.
	Pretty bool

	// Colors enables colored table output.
	Colors bool

	// ShowHeaders controls the table header row.
	ShowHeaders bool

	// Template is the expression template used by the template formatter.
	Template string
}

// NewFormatConfig creates a FormatConfig with sensible defaults.
func NewFormatConfig() *FormatConfig {
	return &FormatConfig{
		Pretty:      true,
		Colors:      true,
		ShowHeaders: true,
	}
}

// WithPretty sets the pretty-printing option.
func (c *FormatConfig) WithPretty(pretty bool) *FormatConfig {
	c.Pretty = pretty
	return c
}

// WithColors sets the colors option.
func (c *FormatConfig) WithColors(colors bool) *FormatConfig {
	c.Colors = colors
	return c
}

// WithHeaders sets the header option.
func (c *FormatConfig) WithHeaders(show bool) *FormatConfig {
	c.ShowHeaders = show
	return c
}

// WithTemplate sets the template.
func (c *FormatConfig) WithTemplate(tmpl string) *FormatConfig {
	c.Template = tmpl
	return c
}

// Normalize converts data to the generic form produced by encoding/json:
// maps become map[string]interface{} keyed by their JSON names, numbers
// become float64. Formatters use it so every format agrees on field names.
func Normalize(data interface{}) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to normalize output: %w", err)
	}
	return out, nil
}

// Fields normalizes data and requires the result to be an object.
func Fields(data interface{}) (map[string]interface{}, error) {
	v, err := Normalize(data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", v)
	}
	return m, nil
}
