package services

import (
	"context"
	"log/slog"
)

// DryRunWriter logs the update it would have made and writes nothing.
type DryRunWriter struct {
	Logger *slog.Logger
}

func (w DryRunWriter) SetField(ctx context.Context, documentID, field string, value any) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Dry run: skipping update.", "documentId", documentID, "field", field, "value", value)
	return nil
}
