package main

import (
	"context"
	"fmt"
	"os"

	"elect/internal/app/bootstrap"
	"elect/internal/app/electctl"
)

// Administrator CLI. Point POSTGRES_DSN at the service database; the
// in-memory store does not outlive a single invocation.
func main() {
	module, closeStore, err := bootstrap.BuildModule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	cli := electctl.CLI{Module: module, Out: os.Stdout}
	if err := cli.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		_ = closeStore()
		os.Exit(1)
	}
}
