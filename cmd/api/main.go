package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := LoadConfiguration()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp(ctx, cfg)
	defer app.cleanup()

	app.InitializeServer()
	app.StartServer(ctx)
}
