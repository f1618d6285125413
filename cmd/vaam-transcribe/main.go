package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"vaamtranscribe/internal/cli"
	"vaamtranscribe/internal/config"
)

func main() {
	// A missing .env is fine; the key may come from the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	deps := &cli.Dependencies{
		Config: config.Load(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	code := cli.Execute(ctx, deps, os.Args[1:])
	stop()
	os.Exit(code)
}
