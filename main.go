package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oakwood-commons/searchbar/cmd"
	"github.com/oakwood-commons/searchbar/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitCode = 1
	}

	stop()
	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
