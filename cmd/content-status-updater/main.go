package main

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/Lllllllleong/contentstatusflow/internal/services"
)

var (
	updaterInstance *services.ContentUpdaterFunction
	once            sync.Once
	initErr         error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Bound to writes on content/{docId}.
	functions.CloudEvent("OnContentPendingAnalysis", onContentPendingAnalysis)
}

// main is required by the Go Functions Framework.
func main() {}

// onContentPendingAnalysis moves documents from "pending-analysis" to "completed".
func onContentPendingAnalysis(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		updaterInstance, initErr = services.NewContentUpdater(context.Background(), services.StatusGuard{})
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	return updaterInstance.Process(ctx, e)
}
