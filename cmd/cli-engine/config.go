package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cli-engine/cli-engine/internal/logging"
	"github.com/cli-engine/cli-engine/pkg/config"
	"github.com/cli-engine/cli-engine/pkg/manifest"
	"github.com/cli-engine/cli-engine/pkg/output"
	"github.com/cli-engine/cli-engine/pkg/userconfig"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Resolve and inspect CLI configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(a),
		newConfigGetCmd(a),
		newConfigPathsCmd(a),
		newConfigEnvCmd(a),
		newConfigValidateCmd(a),
		newConfigAnalyticsCmd(a),
	)

	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the fully resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.resolve()
			if err != nil {
				return err
			}
			return a.render(cmd, cfg)
		},
	}
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <field>",
		Short: "Print one field of the resolved configuration",
		Long: `Print one field of the resolved configuration by its JSON name.
Nested fields use dots, for example "s3.host" or "pjson.version".
Scalars are printed bare; objects and lists use --format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolve()
			if err != nil {
				return err
			}
			fields, err := output.Fields(cfg)
			if err != nil {
				return err
			}
			value, err := output.Lookup(fields, args[0])
			if err != nil {
				return err
			}

			switch value.(type) {
			case map[string]interface{}, []interface{}:
				return a.render(cmd, value)
			default:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), output.Scalar(value))
				return err
			}
		},
	}
}

// paths are the filesystem locations a CLI writes to.
type paths struct {
	Home        string `json:"home"`
	DataDir     string `json:"dataDir"`
	ConfigDir   string `json:"configDir"`
	CacheDir    string `json:"cacheDir"`
	Errlog      string `json:"errlog"`
	CommandsDir string `json:"commandsDir,omitempty"`
	UserConfig  string `json:"userConfig"`
}

func newConfigPathsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the directories and files the CLI uses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.resolve()
			if err != nil {
				return err
			}
			return a.render(cmd, paths{
				Home:        cfg.Home,
				DataDir:     cfg.DataDir,
				ConfigDir:   cfg.ConfigDir,
				CacheDir:    cfg.CacheDir,
				Errlog:      cfg.Errlog,
				CommandsDir: cfg.CommandsDir,
				UserConfig:  userconfig.Path(cfg),
			})
		},
	}
}

func newConfigEnvCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the bin-scoped environment variables and their values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.resolve()
			if err != nil {
				return err
			}
			vars := make(map[string]string)
			for _, key := range config.ScopedKeys(cfg.Bin) {
				vars[key] = a.env.Get(key)
			}
			return a.render(cmd, vars)
		},
	}
}

func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the CLI's package.json",
		Long: `Validate the package.json found in --root (default: the current directory).

This command checks:
  - the package name and semantic version
  - the bin and dirname are usable as file names
  - hooks, aliases, plugins and topics are well formed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := a.v.GetString("root")
			if root == "" {
				root = "."
			}

			logger := logging.New("validate")
			logger.Debug("loading manifest", "path", manifest.Path(root))
			m, err := manifest.Load(root)
			if err != nil {
				return fmt.Errorf("manifest validation failed: %w", err)
			}
			if err := manifest.Validate(m); err != nil {
				return fmt.Errorf("manifest validation failed: %w", err)
			}

			channel := a.v.GetString("channel")
			if channel == "" {
				channel = config.DefaultChannel
			}
			if v, err := manifest.ParseVersion(m.Version); err == nil && v.IsPrerelease() && channel == config.DefaultChannel {
				logger.Warn("prerelease version on the stable channel", "version", m.Version)
			}

			abs, err := filepath.Abs(manifest.Path(root))
			if err != nil {
				abs = manifest.Path(root)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", abs)
			return err
		},
	}
}

type analyticsStatus struct {
	Path          string `json:"path"`
	SkipAnalytics bool   `json:"skipAnalytics"`
	Install       string `json:"install,omitempty"`
}

func newConfigAnalyticsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "analytics [on|off]",
		Short:     "Show or change the analytics preference in the user config",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolve()
			if err != nil {
				return err
			}
			mgr, err := userconfig.NewManager(cfg, a.env, userconfig.WithLogger(logging.New("userconfig")))
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if err := mgr.SetSkipAnalytics(args[0] == "off"); err != nil {
					return err
				}
			}

			return a.render(cmd, analyticsStatus{
				Path:          mgr.Path(),
				SkipAnalytics: mgr.SkipAnalytics(),
				Install:       mgr.InstallID(),
			})
		},
	}
}
