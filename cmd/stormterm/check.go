package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/stormterm/internal/config"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and print the resolved mouse section",
		Args:  cobra.NoArgs,
		Long: `Load the configuration, report every field that fell back to its default,
and print the mouse section that would be used, in canonical TOML form.

An invalid url_pattern is fatal and makes check exit non-zero.

Examples:
  stormterm check                         # Search the user config directory
  stormterm check -c ~/stormterm.yaml     # Check a specific file
  stormterm check --strict                # Also fail on recovered fields`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			cfg := config.New(append(opts.configOptions(logger), config.WithWatcher(false))...)
			defer cfg.Close()

			if err := cfg.Load(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			source := cfg.Source()
			if source == "" {
				source = "no file found, using defaults"
			}
			fmt.Fprintf(out, "# source: %s\n", source)

			issues := cfg.Issues()
			printIssues(out, issues)

			text, err := cfg.Mouse().MarshalTOML()
			if err != nil {
				return fmt.Errorf("rendering mouse section: %w", err)
			}
			if _, err := out.Write(text); err != nil {
				return err
			}

			if strict && len(issues) > 0 {
				return fmt.Errorf("%d setting(s) fell back to defaults", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero if any field fell back to its default")
	return cmd
}
