package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/taskboard/taskboard-be/internal/client/api"
	"github.com/taskboard/taskboard-be/internal/client/cli"
	"github.com/taskboard/taskboard-be/internal/client/session"
)

func main() {
	serverURL := flag.String("server", envOr("TASKBOARD_SERVER", "http://localhost:8080"), "taskboard server base URL")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	fileStore, err := session.DefaultFileStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to locate session file: %v\n", err)
		os.Exit(1)
	}

	client := api.New(*serverURL)
	controller := session.NewController(client, fileStore)

	app := cli.NewApp(controller, client)
	app.Run(ctx)
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
