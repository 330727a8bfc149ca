package main

import (
	"log/slog"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/Lllllllleong/contentstatusflow/internal/services"
)

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.HTTP("HelloWorld", services.HandleGreeting)
}

// main is required by the Go Functions Framework.
func main() {}
