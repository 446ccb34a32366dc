// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command neo13 assembles and runs neo13 programs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	a := newApp()
	err := a.Command().ExecuteContext(ctx)
	a.Close()
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", os.Args[0], err)
		os.Exit(1)
	}
}
