package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/stormterm/internal/config"
)

// globalOptions holds flags shared by all subcommands.
type globalOptions struct {
	configFile string
	configDir  string
	logLevel   string
	logFormat  string
	noEnv      bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "stormterm",
		Short: "Inspect and validate stormterm mouse settings",
		Long: `Inspect and validate the [mouse] section of the stormterm configuration.

The configuration is read from --config, or from the first of
stormterm.toml, stormterm.yaml, stormterm.yml and stormterm.json found in
the user config directory. STORMTERM_* environment variables override
file values.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "configuration file (missing file is an error)")
	flags.StringVar(&opts.configDir, "config-dir", "", "directory searched for stormterm.{toml,yaml,yml,json}")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	flags.BoolVar(&opts.noEnv, "no-env", false, "ignore STORMTERM_* environment variables")

	cmd.AddCommand(
		newCheckCmd(opts),
		newDefaultsCmd(),
		newLinksCmd(opts),
		newWatchCmd(opts),
	)
	return cmd
}

// logger builds the logger selected by the global flags, writing to w.
func (o *globalOptions) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", o.logLevel)
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(o.logFormat) {
	case "text":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q", o.logFormat)
	}
}

// configOptions translates the global flags into config options.
func (o *globalOptions) configOptions(logger *slog.Logger) []config.Option {
	opts := []config.Option{config.WithLogger(logger)}
	if o.configFile != "" {
		opts = append(opts, config.WithConfigFile(o.configFile))
	}
	if o.configDir != "" {
		opts = append(opts, config.WithUserConfigDir(o.configDir))
	}
	if o.noEnv {
		opts = append(opts, config.WithEnvPrefix(""))
	}
	return opts
}

// printIssues writes recovered field problems, one per line.
func printIssues(w io.Writer, issues []*config.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(w, "warning: %s: %v\n", issue.Path, issue)
	}
}
