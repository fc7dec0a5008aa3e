package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mamba-kebabs/ordering/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "kebabctl: %v\n", err)
		os.Exit(1)
	}
}
