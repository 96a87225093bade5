// Package config resolves the runtime configuration of a cli-engine CLI.
//
// A Config is derived from four inputs, lowest priority first:
//
//   - OS facts (platform, arch, home directory)
//   - environment variables, including bin-scoped ones like MYCLI_DEBUG
//   - the CLI's package.json manifest, read from Options.Root
//   - caller supplied Options, which always win
//
// The process environment is passed in as an Environment snapshot rather
// than read ad hoc, so resolution is deterministic under test:
//
//	r := config.NewResolver(config.CurrentEnvironment())
//	cfg, err := r.Resolve(&config.Options{Root: "/usr/local/lib/mycli"})
//
// Resolving a Config's own Options returns the same Config.
package config

import (
	"github.com/cli-engine/cli-engine/pkg/manifest"
)

// SchemaVersion marks a Config as fully resolved.
const SchemaVersion = "1"

// DefaultChannel is the release channel when none is given.
const DefaultChannel = "stable"

// Config is a fully resolved CLI configuration.
type Config struct {
	SchemaVersion string `json:"_version" yaml:"_version"`

	// Identity
	Name    string `json:"name" yaml:"name"`
	Bin     string `json:"bin" yaml:"bin"`
	Dirname string `json:"dirname" yaml:"dirname"`
	Version string `json:"version" yaml:"version"`
	Channel string `json:"channel" yaml:"channel"`

	// Filesystem
	Root        string `json:"root,omitempty" yaml:"root,omitempty"`
	Home        string `json:"home" yaml:"home"`
	DataDir     string `json:"dataDir" yaml:"dataDir"`
	ConfigDir   string `json:"configDir" yaml:"configDir"`
	CacheDir    string `json:"cacheDir" yaml:"cacheDir"`
	CommandsDir string `json:"commandsDir,omitempty" yaml:"commandsDir,omitempty"`
	Errlog      string `json:"errlog" yaml:"errlog"`

	// Environment derived
	Platform       string `json:"platform" yaml:"platform"`
	Arch           string `json:"arch" yaml:"arch"`
	Windows        bool   `json:"windows" yaml:"windows"`
	Shell          string `json:"shell" yaml:"shell"`
	Debug          int    `json:"debug" yaml:"debug"`
	UserAgent      string `json:"userAgent" yaml:"userAgent"`
	NpmRegistry    string `json:"npmRegistry" yaml:"npmRegistry"`
	UpdateDisabled string `json:"updateDisabled,omitempty" yaml:"updateDisabled,omitempty"`
	ReexecBin      string `json:"reexecBin,omitempty" yaml:"reexecBin,omitempty"`

	// Manifest pass-through
	DefaultCommand     string              `json:"defaultCommand" yaml:"defaultCommand"`
	Hooks              map[string][]string `json:"hooks" yaml:"hooks"`
	Aliases            map[string][]string `json:"aliases" yaml:"aliases"`
	Topics             manifest.Topics     `json:"topics" yaml:"topics"`
	CorePlugins        []string            `json:"corePlugins" yaml:"corePlugins"`
	UserPluginsEnabled bool                `json:"userPluginsEnabled" yaml:"userPluginsEnabled"`
	S3                 manifest.S3         `json:"s3" yaml:"s3"`

	Argv     []string           `json:"argv,omitempty" yaml:"argv,omitempty"`
	Manifest *manifest.Manifest `json:"pjson" yaml:"pjson"`
}

// Options are caller overrides. Zero values mean "not set": empty strings,
// nil maps, nil slices and nil pointers are derived instead.
type Options struct {
	// SchemaVersion is set on Options built by Config.Options. Resolving such
	// Options short-circuits.
	SchemaVersion string

	// Root is the CLI's root directory. When set and Manifest is nil,
	// <Root>/package.json is read.
	Root string
	// Manifest replaces the manifest that would be read from Root.
	Manifest *manifest.Manifest

	Name    string
	Bin     string
	Dirname string
	Version string
	Channel string

	Home        string
	DataDir     string
	ConfigDir   string
	CacheDir    string
	CommandsDir string
	Errlog      string

	Platform       string
	Arch           string
	Windows        *bool
	Shell          string
	Debug          *int
	UserAgent      string
	NpmRegistry    string
	UpdateDisabled string
	ReexecBin      string

	DefaultCommand     string
	Hooks              map[string][]string
	Aliases            map[string][]string
	Topics             manifest.Topics
	CorePlugins        []string
	UserPluginsEnabled *bool
	S3                 *manifest.S3

	Argv []string

	resolved *Config
}

// Options returns Options that resolve back to c unchanged.
func (c *Config) Options() *Options {
	windows, debug, userPlugins, s3 := c.Windows, c.Debug, c.UserPluginsEnabled, c.S3
	return &Options{
		SchemaVersion:      c.SchemaVersion,
		Root:               c.Root,
		Manifest:           c.Manifest,
		Name:               c.Name,
		Bin:                c.Bin,
		Dirname:            c.Dirname,
		Version:            c.Version,
		Channel:            c.Channel,
		Home:               c.Home,
		DataDir:            c.DataDir,
		ConfigDir:          c.ConfigDir,
		CacheDir:           c.CacheDir,
		CommandsDir:        c.CommandsDir,
		Errlog:             c.Errlog,
		Platform:           c.Platform,
		Arch:               c.Arch,
		Windows:            &windows,
		Shell:              c.Shell,
		Debug:              &debug,
		UserAgent:          c.UserAgent,
		NpmRegistry:        c.NpmRegistry,
		UpdateDisabled:     c.UpdateDisabled,
		ReexecBin:          c.ReexecBin,
		DefaultCommand:     c.DefaultCommand,
		Hooks:              c.Hooks,
		Aliases:            c.Aliases,
		Topics:             c.Topics,
		CorePlugins:        c.CorePlugins,
		UserPluginsEnabled: &userPlugins,
		S3:                 &s3,
		Argv:               c.Argv,
		resolved:           c,
	}
}

// fromMarked rebuilds a Config verbatim from Options that already carry the
// schema marker but were not produced by Config.Options.
func fromMarked(o *Options) *Config {
	c := &Config{
		SchemaVersion:  o.SchemaVersion,
		Name:           o.Name,
		Bin:            o.Bin,
		Dirname:        o.Dirname,
		Version:        o.Version,
		Channel:        o.Channel,
		Root:           o.Root,
		Home:           o.Home,
		DataDir:        o.DataDir,
		ConfigDir:      o.ConfigDir,
		CacheDir:       o.CacheDir,
		CommandsDir:    o.CommandsDir,
		Errlog:         o.Errlog,
		Platform:       o.Platform,
		Arch:           o.Arch,
		Shell:          o.Shell,
		UserAgent:      o.UserAgent,
		NpmRegistry:    o.NpmRegistry,
		UpdateDisabled: o.UpdateDisabled,
		ReexecBin:      o.ReexecBin,
		DefaultCommand: o.DefaultCommand,
		Hooks:          o.Hooks,
		Aliases:        o.Aliases,
		Topics:         o.Topics,
		CorePlugins:    o.CorePlugins,
		Argv:           o.Argv,
		Manifest:       o.Manifest,
	}
	if o.Windows != nil {
		c.Windows = *o.Windows
	}
	if o.Debug != nil {
		c.Debug = *o.Debug
	}
	if o.UserPluginsEnabled != nil {
		c.UserPluginsEnabled = *o.UserPluginsEnabled
	}
	if o.S3 != nil {
		c.S3 = *o.S3
	}
	return c
}

// Resolve builds a Config from opts using the current process environment.
func Resolve(opts *Options) (*Config, error) {
	return NewResolver(CurrentEnvironment()).Resolve(opts)
}
