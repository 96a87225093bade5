package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Manager is a registry of formatters keyed by name.
type Manager struct {
	formatters    map[string]Formatter
	defaultFormat string
	config        *FormatConfig
}

// NewManager creates a manager with the json, yaml, table and template
// formatters registered. The default format is json.
func NewManager() *Manager {
	m := &Manager{
		formatters:    make(map[string]Formatter),
		defaultFormat: "json",
		config:        NewFormatConfig(),
	}

	m.RegisterFormatter(NewJSONFormatter())
	m.RegisterFormatter(NewYAMLFormatter())
	m.RegisterFormatter(NewTableFormatter())
	m.RegisterFormatter(NewTemplateFormatter())

	return m
}

// RegisterFormatter registers a formatter, replacing any with the same name.
func (m *Manager) RegisterFormatter(formatter Formatter) {
	m.formatters[strings.ToLower(formatter.Name())] = formatter
}

// GetFormatter returns a formatter by name.
func (m *Manager) GetFormatter(name string) (Formatter, error) {
	formatter, ok := m.formatters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown output format '%s' (supported: %s)", name, strings.Join(m.SupportedFormats(), ", "))
	}
	return formatter, nil
}

// SetDefaultFormat sets the format used when none is given.
func (m *Manager) SetDefaultFormat(format string) {
	m.defaultFormat = format
}

// SetConfig sets the format configuration.
func (m *Manager) SetConfig(cfg *FormatConfig) {
	m.config = cfg
}

// Format formats data using the named format and the manager's config.
func (m *Manager) Format(w io.Writer, data interface{}, format string) error {
	return m.FormatWithConfig(w, data, format, m.config)
}

// FormatWithConfig formats data using the named format and cfg.
func (m *Manager) FormatWithConfig(w io.Writer, data interface{}, format string, cfg *FormatConfig) error {
	if format == "" {
		format = m.defaultFormat
	}

	formatter, err := m.GetFormatter(format)
	if err != nil {
		return err
	}
	return formatter.Format(w, data, cfg)
}

// IsFormatSupported checks if a format is registered.
func (m *Manager) IsFormatSupported(format string) bool {
	_, ok := m.formatters[strings.ToLower(format)]
	return ok
}

// SupportedFormats returns the registered format names, sorted.
func (m *Manager) SupportedFormats() []string {
	formats := make([]string, 0, len(m.formatters))
	for name := range m.formatters {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}
