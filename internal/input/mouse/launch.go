package mouse

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/dshills/stormterm/internal/config"
)

// LaunchFunc opens target with cmd.
type LaunchFunc func(ctx context.Context, cmd config.Command, target string) error

// Launch starts cmd with target appended and returns without waiting for it
// to finish. The child is reaped in the background; canceling ctx kills it.
func Launch(ctx context.Context, cmd config.Command, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	argv := cmd.Argv(target)
	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", cmd.Program, err)
	}

	go func() {
		_ = c.Wait()
	}()
	return nil
}
