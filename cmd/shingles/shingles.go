package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/peco/shingles/internal/cli"
	"github.com/peco/shingles/internal/sighandler"
	"github.com/peco/shingles/internal/util"
)

func main() {
	ctx, cancel := sighandler.CancelOnSignal(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.New().Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		st, _ := util.GetExitStatus(err)
		cancel()
		os.Exit(st)
	}
}
