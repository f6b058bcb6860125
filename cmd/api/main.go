package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandeepkv93/fraudguard/internal/di"
)

func main() {
	a, err := di.InitializeApp()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := a.Run(ctx)
	if runErr != nil {
		a.Logger.Error("server stopped", "error", runErr)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	a.Close(closeCtx)
	cancel()

	if runErr != nil {
		os.Exit(1)
	}
}
