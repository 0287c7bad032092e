// dmclient - a command-line client for DMconnect chat servers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dmclient/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "dmclient: %v\n", err)
		os.Exit(1)
	}
}
