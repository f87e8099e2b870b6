// ABOUTME: Entry point for the clientdesk CLI
// ABOUTME: Wires signal handling into the cobra command tree
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/clientdesk/cli"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version); err != nil {
		stop()
		os.Exit(1)
	}
}
