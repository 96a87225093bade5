// Package logging wraps charmbracelet/log for cli-engine.
//
// All output goes to stderr so stdout stays clean for rendered configs.
// Call Setup once during command initialization, then create component
// loggers with New:
//
//	logging.Setup(logging.Options{Verbose: true})
//	logger := logging.New("config")
//	logger.Debug("reading manifest", "path", path)
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Options configures the default logger.
type Options struct {
	// Verbose lowers the level to debug.
	Verbose bool
	// Quiet raises the level to error. Quiet wins over Verbose.
	Quiet bool
	// JSON switches to the JSON formatter.
	JSON bool
	// Debug is a resolved config debug level; any value above 0 behaves like Verbose.
	Debug int
}

// Setup configures the global logging defaults.
func Setup(opts Options) {
	log.SetLevel(Level(opts))
	log.SetOutput(os.Stderr)

	if opts.JSON {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// Level returns the log level opts selects.
func Level(opts Options) log.Level {
	switch {
	case opts.Quiet:
		return log.ErrorLevel
	case opts.Verbose || opts.Debug > 0:
		return log.DebugLevel
	default:
		return log.WarnLevel
	}
}

// New creates a logger with the given component prefix. Child loggers copy
// the default logger's settings at creation time, so call Setup first.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// SetOutput overrides the default logger's writer. Tests use this with a
// bytes.Buffer and restore os.Stderr in t.Cleanup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
