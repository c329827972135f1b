// Package main provides the entry point for popdemo, a terminal demo of
// anchored popovers built on Bubble Tea.
//
// Usage:
//
//	popdemo [--config file] [--log-file file] [-v]
//	popdemo resolve --rect 10,5,20,3 --size 12x4
//	popdemo config init
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riordanpawley/popover/internal/cli"
)

// Set via ldflags
var (
	version string
	commit  string
	date    string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
