package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/stormterm/internal/config"
)

func newDefaultsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default mouse section",
		Args:  cobra.NoArgs,
		Long: `Print the mouse section used when nothing is configured.

The launcher shown is the default for the platform this binary runs on.

Examples:
  stormterm defaults                 # TOML
  stormterm defaults --format yaml   # YAML`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := renderMouse(config.DefaultMouseConfig(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(text)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml or yaml")
	return cmd
}

// renderMouse renders m as a configuration document in format.
func renderMouse(m config.MouseConfig, format string) ([]byte, error) {
	switch format {
	case "toml":
		return m.MarshalTOML()
	case "yaml", "yml":
		return yaml.Marshal(map[string]any{config.SectionMouse: m.Raw()})
	default:
		return nil, fmt.Errorf("unsupported format %q (want toml or yaml)", format)
	}
}
