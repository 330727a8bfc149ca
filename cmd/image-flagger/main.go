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
	flaggerInstance *services.ContentUpdaterFunction
	once            sync.Once
	initErr         error
)

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.CloudEvent("OnContentImageURL", onContentImageURL)
}

func main() {}

// onContentImageURL sets ispythonexecuted on documents that carry an imageUrl.
func onContentImageURL(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		flaggerInstance, initErr = services.NewContentUpdater(context.Background(), services.ImageGuard{})
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	return flaggerInstance.Process(ctx, e)
}
