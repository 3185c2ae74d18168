package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/stormterm/internal/config"
	"github.com/dshills/stormterm/internal/config/notify"
	"github.com/dshills/stormterm/internal/input/mouse"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the configuration on change and report the result",
		Args:  cobra.NoArgs,
		Long: `Load the configuration, then watch the file and reload it whenever it
changes. Each reload that changes the mouse section prints the new section;
a reload that fails keeps the previous settings and logs the error.

Stop with Ctrl+C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := config.New(append(opts.configOptions(logger), config.WithWatcher(true))...)
			defer cfg.Close()

			if err := cfg.Load(ctx); err != nil {
				return err
			}
			return watchLoop(ctx, cmd, cfg, logger)
		},
	}
	return cmd
}

// watchLoop keeps a mouse handler in sync with cfg until ctx is done.
func watchLoop(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	out := cmd.OutOrStdout()
	handler := mouse.NewHandler(cfg.Mouse(), mouse.WithLogger(logger))

	sub := cfg.SubscribePath(config.SectionMouse, func(change notify.Change) {
		switch change.Type {
		case notify.ChangeSection:
			handler.SetConfig(cfg.Mouse())
			text, err := cfg.Mouse().MarshalTOML()
			if err != nil {
				logger.Error("rendering mouse section", slog.String("error", err.Error()))
				return
			}
			fmt.Fprintf(out, "# reloaded from %s\n", change.Source)
			printIssues(out, cfg.Issues())
			_, _ = out.Write(text)
		case notify.ChangeError:
			fmt.Fprintf(out, "# reload failed, keeping previous settings: %v\n", change.Err)
		}
	})
	defer sub.Unsubscribe()

	source := cfg.Source()
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(out, "# watching %s\n", source)
	printIssues(out, cfg.Issues())

	<-ctx.Done()
	return nil
}
