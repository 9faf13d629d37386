package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teranos/pysharp/cmd/pysharp/commands"
	"github.com/teranos/pysharp/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.RootCmd.ExecuteContext(ctx)
	stop()
	logger.Cleanup()

	if err != nil {
		fmt.Fprint(os.Stderr, commands.FormatError(err))
		os.Exit(1)
	}
}
