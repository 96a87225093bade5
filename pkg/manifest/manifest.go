// Package manifest models the package.json a cli-engine CLI ships with.
//
// A manifest carries generic package metadata (name, version, dependencies)
// plus the "cli-engine" section holding CLI-specific settings such as the
// binary name, hook scripts, aliases and core plugins.
//
// # Loading
//
//	m, err := manifest.Load("/path/to/cli")
//	if errors.Is(err, manifest.ErrNotFound) {
//	    m = manifest.Default()
//	}
//
// Loaded manifests are layered over Default with Merge so every CLI field
// the project omits falls back to a documented default.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileName is the manifest file read from a CLI root.
const FileName = "package.json"

// SectionKey is the manifest key holding the CLI section.
const SectionKey = "cli-engine"

// Defaults applied when a manifest omits them.
const (
	DefaultName        = "cli-engine"
	DefaultVersion     = "0.0.0"
	DefaultCommand     = "help"
	DefaultNpmRegistry = "https://registry.yarnpkg.com"
)

// ErrNotFound is returned by Load when the root has no package.json.
var ErrNotFound = errors.New("manifest not found")

// Manifest is a parsed package.json.
type Manifest struct {
	Name         string            `json:"name,omitempty" yaml:"name,omitempty"`
	Version      string            `json:"version,omitempty" yaml:"version,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	CLI          *CLI              `json:"cli-engine,omitempty" yaml:"cli-engine,omitempty"`

	// Extra holds top-level keys this package does not model.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// CLI is the "cli-engine" section of a manifest.
type CLI struct {
	Bin                string                `json:"bin,omitempty" yaml:"bin,omitempty"`
	Dirname            string                `json:"dirname,omitempty" yaml:"dirname,omitempty"`
	DefaultCommand     string                `json:"defaultCommand,omitempty" yaml:"defaultCommand,omitempty"`
	Commands           string                `json:"commands,omitempty" yaml:"commands,omitempty"`
	NpmRegistry        string                `json:"npmRegistry,omitempty" yaml:"npmRegistry,omitempty"`
	S3                 *S3                   `json:"s3,omitempty" yaml:"s3,omitempty"`
	Hooks              map[string]StringList `json:"hooks,omitempty" yaml:"hooks,omitempty"`
	Aliases            map[string]StringList `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	UserPluginsEnabled *bool                 `json:"userPluginsEnabled,omitempty" yaml:"userPluginsEnabled,omitempty"`
	Plugins            []string              `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	Topics             Topics                `json:"topics,omitempty" yaml:"topics,omitempty"`
}

// S3 holds the update host configuration.
type S3 struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
}

// Default returns the manifest used when a CLI root has none.
func Default() *Manifest {
	disabled := false
	return &Manifest{
		Name:         DefaultName,
		Version:      DefaultVersion,
		Dependencies: map[string]string{},
		CLI: &CLI{
			DefaultCommand:     DefaultCommand,
			Hooks:              map[string]StringList{},
			UserPluginsEnabled: &disabled,
			S3:                 &S3{},
		},
	}
}

// Path returns the manifest path for a CLI root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads and parses <root>/package.json.
//
// A missing file yields an error wrapping ErrNotFound. Any other read or
// parse failure is returned as is, wrapped with the file path.
func Load(root string) (*Manifest, error) {
	path := Path(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest JSON.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UnmarshalJSON decodes the modelled keys and keeps the rest in Extra.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	type plain Manifest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range []string{"name", "version", "dependencies", SectionKey} {
		delete(raw, k)
	}
	if len(raw) > 0 {
		p.Extra = raw
	}

	*m = Manifest(p)
	return nil
}

// MarshalJSON writes the modelled keys followed by Extra.
func (m Manifest) MarshalJSON() ([]byte, error) {
	type plain Manifest
	base, err := json.Marshal(plain(m))
	if err != nil {
		return nil, err
	}
	if len(m.Extra) == 0 {
		return base, nil
	}

	extra, err := json.Marshal(m.Extra)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(base, []byte("{}")) {
		return extra, nil
	}
	// splice: {base...,extra...}
	out := make([]byte, 0, len(base)+len(extra))
	out = append(out, base[:len(base)-1]...)
	out = append(out, ',')
	out = append(out, extra[1:]...)
	return out, nil
}

// UnmarshalJSON accepts the legacy "userPlugins" key as userPluginsEnabled.
func (c *CLI) UnmarshalJSON(data []byte) error {
	type plain CLI
	var aux struct {
		plain
		UserPlugins *bool `json:"userPlugins,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = CLI(aux.plain)
	if c.UserPluginsEnabled == nil && aux.UserPlugins != nil {
		c.UserPluginsEnabled = aux.UserPlugins
	}
	return nil
}
