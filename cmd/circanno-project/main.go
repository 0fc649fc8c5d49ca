// cmd/circanno-project/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"circanno/internal/projectapp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	code := projectapp.RunContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
