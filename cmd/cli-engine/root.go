package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cli-engine/cli-engine/internal/logging"
	"github.com/cli-engine/cli-engine/pkg/config"
	"github.com/cli-engine/cli-engine/pkg/output"
)

// envPrefix scopes the binary's own flags: --root is also CLI_ENGINE_ROOT.
const envPrefix = "CLI_ENGINE"

// app carries what every subcommand needs.
type app struct {
	v      *viper.Viper
	env    *config.Environment
	out    *output.Manager
	stderr io.Writer
}

func newRootCmd(env *config.Environment) *cobra.Command {
	a := &app{
		v:   viper.New(),
		env: env,
		out: output.NewManager(),
	}

	cmd := &cobra.Command{
		Use:   "cli-engine",
		Short: "Inspect the resolved configuration of a cli-engine CLI",
		Long: `cli-engine resolves a CLI's runtime configuration from its package.json,
the environment and the host OS, and prints the result.

Point --root at the directory containing the CLI's package.json.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.stderr = cmd.ErrOrStderr()
			a.setupLogging(0)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("root", "", "CLI root directory containing package.json")
	flags.String("channel", "", "release channel (default \"stable\")")
	flags.StringP("format", "o", "", "output format: "+strings.Join(a.out.SupportedFormats(), ", "))
	flags.String("template", "", "template for --format template, e.g. '{bin} {{windows ? \"cmd\" : shell}}'")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log errors")
	a.bindFlags(flags)

	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

func (a *app) bindFlags(flags *pflag.FlagSet) {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	// BindPFlags only fails on a nil flag set.
	_ = a.v.BindPFlags(flags)
}

func (a *app) options() *config.Options {
	return &config.Options{
		Root:    a.v.GetString("root"),
		Channel: a.v.GetString("channel"),
	}
}

func (a *app) setupLogging(debug int) {
	logging.Setup(logging.Options{
		Verbose: a.v.GetBool("verbose"),
		Quiet:   a.v.GetBool("quiet"),
		Debug:   debug,
	})
	if a.stderr != nil {
		logging.SetOutput(a.stderr)
	}
}

// resolve runs the resolver twice: a silent pass learns the CLI's own debug
// level (MYCLI_DEBUG, DEBUG=mycli), which then sets the log level for the
// pass that is logged.
func (a *app) resolve() (*config.Config, error) {
	first, err := config.NewResolver(a.env, config.WithLogger(logging.Discard())).Resolve(a.options())
	if err != nil {
		return nil, err
	}
	a.setupLogging(first.Debug)

	r := config.NewResolver(a.env, config.WithLogger(logging.New("config")))
	return r.Resolve(a.options())
}

func (a *app) formatConfig() *output.FormatConfig {
	return output.NewFormatConfig().WithTemplate(a.v.GetString("template"))
}

func (a *app) render(cmd *cobra.Command, data interface{}) error {
	a.out.SetConfig(a.formatConfig())
	return a.out.Format(cmd.OutOrStdout(), data, a.v.GetString("format"))
}
