package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DebugProbe reports whether debug output is enabled for a namespace.
type DebugProbe interface {
	Enabled(namespace string) (bool, error)
}

// DebugProbeFunc adapts a function to DebugProbe.
type DebugProbeFunc func(namespace string) (bool, error)

// Enabled calls f.
func (f DebugProbeFunc) Enabled(namespace string) (bool, error) {
	return f(namespace)
}

// EnvDebugProbe reads $DEBUG as a list of namespace globs separated by
// commas or spaces. A leading "-" excludes matching namespaces, and
// exclusions win over inclusions:
//
//	DEBUG=heroku,cli:*,-cli:hook:*
type EnvDebugProbe struct {
	env *Environment
}

// NewEnvDebugProbe returns a probe over env's DEBUG variable.
func NewEnvDebugProbe(env *Environment) *EnvDebugProbe {
	return &EnvDebugProbe{env: env}
}

// Enabled matches namespace against the DEBUG patterns. A malformed pattern
// is reported as an error.
func (p *EnvDebugProbe) Enabled(namespace string) (bool, error) {
	raw := p.env.Get("DEBUG")
	if raw == "" {
		return false, nil
	}

	enabled := false
	for _, pattern := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
		exclude := strings.HasPrefix(pattern, "-")
		pattern = strings.TrimPrefix(pattern, "-")
		if !doublestar.ValidatePattern(pattern) {
			return false, fmt.Errorf("invalid DEBUG pattern %q", pattern)
		}
		matched, err := doublestar.Match(pattern, namespace)
		if err != nil {
			return false, fmt.Errorf("invalid DEBUG pattern %q: %w", pattern, err)
		}
		if !matched {
			continue
		}
		if exclude {
			return false, nil
		}
		enabled = true
	}
	return enabled, nil
}
