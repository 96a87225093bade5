package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	indent string
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{indent: "  "}
}

// Name returns the formatter name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format encodes data as JSON followed by a newline.
func (f *JSONFormatter) Format(w io.Writer, data interface{}, cfg *FormatConfig) error {
	if cfg == nil {
		cfg = NewFormatConfig()
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if cfg.Pretty {
		encoder.SetIndent("", f.indent)
	}

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// SetIndent sets the indentation string for pretty printing.
func (f *JSONFormatter) SetIndent(indent string) *JSONFormatter {
	f.indent = indent
	return f
}
