package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/qawatake/md2markup/internal/cmd"
	"github.com/qawatake/md2markup/internal/derrors"
	"github.com/qawatake/md2markup/internal/verbose"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		if st := derrors.StackTraces(err); st != "" && verbose.Enabled {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", st)
		}
		os.Exit(1)
	}
}
