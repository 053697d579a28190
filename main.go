package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samzong/hookmsg/cmd"
	"github.com/samzong/hookmsg/internal/hook"
	"github.com/samzong/hookmsg/internal/ui"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd.SetContext(ctx)

	if err := cmd.Execute(); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled")
			os.Exit(130) // Standard exit code for SIGINT
		}
		// The hook reports its own failures.
		var hookErr *hook.Error
		if !errors.As(err, &hookErr) {
			ui.NewReporter(os.Stderr).Fail(err)
		}
		os.Exit(1)
	}
}
