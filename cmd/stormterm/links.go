package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/stormterm/internal/config"
	"github.com/dshills/stormterm/internal/input/mouse"
)

func newLinksCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links [TEXT...]",
		Short: "Show the links the configured url_pattern finds",
		Long: `Run link detection over TEXT, or over standard input when no TEXT is
given, and print each match as LINE:START-END URL. Columns count runes.

Useful for trying out a url_pattern before relying on it.

Examples:
  stormterm links 'see https://example.com'
  git log | stormterm links`,
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

			// Detection only; a disabled launcher doesn't matter here.
			url := cfg.Mouse().URL
			launcher := config.DefaultLauncher()
			detector := mouse.NewHintDetector(config.NewURLConfig(&launcher, url.Mods(), url.Pattern))

			out := cmd.OutOrStdout()
			lineNo := 0
			report := func(line string) {
				lineNo++
				for _, h := range detector.Find(line) {
					fmt.Fprintf(out, "%d:%d-%d %s\n", lineNo, h.Start, h.End, h.URL)
				}
			}

			if len(args) > 0 {
				report(strings.Join(args, " "))
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for scanner.Scan() {
				report(scanner.Text())
			}
			return scanner.Err()
		},
	}
	return cmd
}
