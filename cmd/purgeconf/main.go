package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{}
	if err := a.execute(ctx, newRootCmd(a)); err != nil {
		stop()
		os.Exit(1)
	}
}
