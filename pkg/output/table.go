package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pterm/pterm"
)

// TableFormatter prints an object as a two column key/value table.
type TableFormatter struct {
	headers []string
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{headers: []string{"KEY", "VALUE"}}
}

// Name returns the formatter name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Format writes one row per top-level field, sorted by key. Scalars are
// printed as-is and nested values as compact JSON.
func (f *TableFormatter) Format(w io.Writer, data interface{}, cfg *FormatConfig) error {
	if cfg == nil {
		cfg = NewFormatConfig()
	}

	rows, err := f.rows(data)
	if err != nil {
		return err
	}

	tableData := make([][]string, 0, len(rows)+1)
	if cfg.ShowHeaders {
		tableData = append(tableData, f.headers)
	}
	tableData = append(tableData, rows...)

	table := pterm.DefaultTable.WithHasHeader(cfg.ShowHeaders).WithData(tableData)
	if cfg.Colors {
		table = table.WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold))
	} else {
		pterm.DisableColor()
		defer pterm.EnableColor()
	}

	rendered, err := table.Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err = fmt.Fprintln(w, rendered)
	return err
}

func (f *TableFormatter) rows(data interface{}) ([][]string, error) {
	fields, err := Fields(data)
	if err != nil {
		return nil, fmt.Errorf("table output: %w", err)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, Scalar(fields[k])})
	}
	return rows, nil
}

// Scalar renders a normalized value on one line.
func Scalar(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool, float64:
		return fmt.Sprint(val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	}
}
