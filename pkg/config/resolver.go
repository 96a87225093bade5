package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cli-engine/cli-engine/internal/logging"
	"github.com/cli-engine/cli-engine/pkg/manifest"
)

// DefaultAliases are seeded under every manifest's aliases. Manifest entries
// replace them key by key.
var DefaultAliases = map[string][]string{
	"version": {"-v", "--version"},
	"help":    {"-h", "--help"},
}

// Resolver turns Options into a Config against a fixed Environment.
type Resolver struct {
	env            *Environment
	probe          DebugProbe
	logger         *log.Logger
	defaultAliases map[string][]string
	loadManifest   func(root string) (*manifest.Manifest, error)
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithDebugProbe replaces the DEBUG namespace probe.
func WithDebugProbe(p DebugProbe) ResolverOption {
	return func(r *Resolver) {
		r.probe = p
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(l *log.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// WithDefaultAliases replaces DefaultAliases. nil disables alias seeding.
func WithDefaultAliases(aliases map[string][]string) ResolverOption {
	return func(r *Resolver) {
		r.defaultAliases = aliases
	}
}

// WithManifestLoader replaces manifest.Load.
func WithManifestLoader(load func(root string) (*manifest.Manifest, error)) ResolverOption {
	return func(r *Resolver) {
		r.loadManifest = load
	}
}

// NewResolver creates a resolver over env. A nil env resolves as if the
// process had no environment variables and no discoverable home directory.
func NewResolver(env *Environment, opts ...ResolverOption) *Resolver {
	if env == nil {
		env = &Environment{}
	}
	r := &Resolver{
		env:            env,
		logger:         logging.New("config"),
		defaultAliases: DefaultAliases,
		loadManifest:   manifest.Load,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.probe == nil {
		r.probe = NewEnvDebugProbe(env)
	}
	return r
}

// Resolve derives a Config from opts. Options already carrying
// SchemaVersion are returned as built. A missing package.json is not an
// error; an unreadable or malformed one is returned unmodified.
func (r *Resolver) Resolve(opts *Options) (*Config, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.SchemaVersion == SchemaVersion {
		if opts.resolved != nil {
			return opts.resolved, nil
		}
		return fromMarked(opts), nil
	}

	m, err := r.acquireManifest(opts)
	if err != nil {
		return nil, err
	}

	d := &derivation{env: r.env, opts: opts, manifest: m, cli: m.CLI}
	c := d.config(r)
	c.SchemaVersion = SchemaVersion
	return c, nil
}

func (r *Resolver) acquireManifest(opts *Options) (*manifest.Manifest, error) {
	if opts.Manifest != nil {
		return manifest.Merge(manifest.Default(), opts.Manifest), nil
	}
	if opts.Root == "" {
		return manifest.Default(), nil
	}

	r.logger.Debug("reading manifest", "path", manifest.Path(opts.Root))
	loaded, err := r.loadManifest(opts.Root)
	if errors.Is(err, manifest.ErrNotFound) {
		r.logger.Debug("no manifest, using defaults", "root", opts.Root)
		return manifest.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return manifest.Merge(manifest.Default(), loaded), nil
}

// debugLevel is 1 when the bin's namespace is enabled in DEBUG, when the
// scoped DEBUG variable is truthy, or when DEBUG contains "*".
func (r *Resolver) debugLevel(bin string) int {
	enabled, err := r.probe.Enabled(bin)
	if err != nil {
		r.logger.Debug("debug probe failed", "err", err)
		enabled = false
	}
	if enabled || r.env.IsTrue(ScopedKey(bin, EnvDebug)) || strings.Contains(r.env.Get("DEBUG"), "*") {
		return 1
	}
	return 0
}

// derivation computes each Config field once, consulting the matching
// override first so later fields see overridden inputs.
type derivation struct {
	env      *Environment
	opts     *Options
	manifest *manifest.Manifest
	cli      *manifest.CLI
}

func (d *derivation) config(r *Resolver) *Config {
	o := d.opts
	c := &Config{
		Manifest: d.manifest,
		Root:     o.Root,
		Argv:     o.Argv,
	}

	c.Name = pick(o.Name, d.manifest.Name, manifest.DefaultName)
	c.Version = pick(o.Version, d.manifest.Version, manifest.DefaultVersion)
	c.Channel = pick(o.Channel, DefaultChannel)
	c.Bin = pick(o.Bin, d.cli.Bin, c.Name)
	c.Dirname = pick(o.Dirname, d.cli.Dirname, c.Bin)
	c.DefaultCommand = pick(o.DefaultCommand, d.cli.DefaultCommand, manifest.DefaultCommand)

	c.Platform = pick(o.Platform, d.env.Platform)
	c.Arch = pick(o.Arch, NormalizeArch(d.env.Arch))
	c.Windows = c.Platform == PlatformWindows
	if o.Windows != nil {
		c.Windows = *o.Windows
	}

	c.Home = pick(o.Home, homeDir(d.env, c.Windows))
	c.Shell = pick(o.Shell, shellName(d.env, c.Windows))
	if o.Debug != nil {
		c.Debug = *o.Debug
	} else {
		c.Debug = r.debugLevel(c.Bin)
	}
	c.UserAgent = pick(o.UserAgent, userAgent(c, d.env))

	dirs := dirResolver{env: d.env, home: c.Home, dirname: c.Dirname, platform: c.Platform, windows: c.Windows}
	c.DataDir = pick(o.DataDir, dirs.dir(categoryData))
	c.ConfigDir = pick(o.ConfigDir, dirs.dir(categoryConfig))
	c.CacheDir = pick(o.CacheDir, dirs.dir(categoryCache))
	c.Errlog = pick(o.Errlog, filepath.Join(c.CacheDir, "error.log"))
	c.CommandsDir = pick(o.CommandsDir, commandsDir(o.Root, d.cli.Commands))

	c.NpmRegistry = pick(o.NpmRegistry, d.env.Get(ScopedKey(c.Bin, EnvNpmRegistry)), d.cli.NpmRegistry, manifest.DefaultNpmRegistry)
	c.UpdateDisabled = pick(o.UpdateDisabled, updateDisabled(d.env, c.Bin))
	c.ReexecBin = pick(o.ReexecBin, d.env.Get(ScopedKey(c.Bin, EnvCLIBinPath)))

	if o.S3 != nil {
		c.S3 = *o.S3
	} else {
		if d.cli.S3 != nil {
			c.S3 = *d.cli.S3
		}
		c.S3.Host = pick(c.S3.Host, d.env.Get(ScopedKey(c.Bin, EnvS3Host)))
	}

	c.Hooks = o.Hooks
	if c.Hooks == nil {
		c.Hooks = manifest.NormalizeLists(d.cli.Hooks)
	}
	c.Aliases = o.Aliases
	if c.Aliases == nil {
		c.Aliases = seedAliases(r.defaultAliases, manifest.NormalizeLists(d.cli.Aliases))
	}
	c.Topics = o.Topics
	if c.Topics == nil {
		c.Topics = d.cli.Topics.Backfill()
	}
	c.CorePlugins = o.CorePlugins
	if c.CorePlugins == nil {
		c.CorePlugins = append([]string{}, d.cli.Plugins...)
	}
	switch {
	case o.UserPluginsEnabled != nil:
		c.UserPluginsEnabled = *o.UserPluginsEnabled
	case d.cli.UserPluginsEnabled != nil:
		c.UserPluginsEnabled = *d.cli.UserPluginsEnabled
	}

	return c
}

func updateDisabled(env *Environment, bin string) string {
	key := ScopedKey(bin, EnvSkipCoreUpdates)
	if v := env.Get(key); v != "" {
		return fmt.Sprintf("%s is set to %s", key, v)
	}
	return ""
}

func seedAliases(defaults, declared map[string][]string) map[string][]string {
	out := make(map[string][]string, len(defaults)+len(declared))
	for k, v := range defaults {
		out[k] = append([]string{}, v...)
	}
	for k, v := range declared {
		out[k] = v
	}
	return out
}

// pick returns the first non-empty value.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
