package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/Lllllllleong/contentstatusflow/internal/gcp"
	"github.com/Lllllllleong/contentstatusflow/internal/models"
)

// FieldWriter issues a partial update that sets one field on one document.
type FieldWriter interface {
	SetField(ctx context.Context, documentID, field string, value any) error
}

// ChangeHandler receives change events from an event source.
type ChangeHandler interface {
	Handle(ctx context.Context, event *models.ChangeEvent) models.Outcome
}

// ContentUpdaterFunction holds dependencies for the conditional update logic.
type ContentUpdaterFunction struct {
	guard  Guard
	writer FieldWriter
	path   models.DocumentPath
	config UpdaterConfig
	logger *slog.Logger
}

// NewContentUpdater creates a ContentUpdaterFunction from the environment,
// backed by a Firestore client.
func NewContentUpdater(ctx context.Context, guard Guard) (*ContentUpdaterFunction, error) {
	config, err := LoadUpdaterConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	firestoreClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID, config.DatabaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return NewContentUpdaterWithWriter(config, guard, gcp.NewFirestoreWriter(firestoreClient, config.Collection))
}

// NewContentUpdaterWithWriter creates a ContentUpdaterFunction around an existing writer.
func NewContentUpdaterWithWriter(config UpdaterConfig, guard Guard, writer FieldWriter) (*ContentUpdaterFunction, error) {
	if guard == nil || writer == nil {
		return nil, fmt.Errorf("guard and writer must be provided")
	}
	path, err := config.TriggerPath()
	if err != nil {
		return nil, fmt.Errorf("invalid trigger path: %w", err)
	}

	f := &ContentUpdaterFunction{
		guard:  guard,
		writer: writer,
		path:   path,
		config: config,
		logger: slog.Default(),
	}
	f.logger.Info("Content updater initialized.",
		"variant", guard.Name(),
		"trigger", path.String(),
		"region", config.Region,
		"database", config.DatabaseID,
	)
	return f, nil
}

// Process decodes a Firestore document event and hands it to Handle. It only
// returns an error when PropagateWriteErrors is set and the write failed.
func (f *ContentUpdaterFunction) Process(ctx context.Context, e cloudevents.Event) error {
	event, err := gcp.DecodeChangeEvent(e, f.path)
	if errors.Is(err, gcp.ErrUnwatchedDocument) {
		f.logger.Info("Event is not for a watched document. No action needed.", "eventId", e.ID(), "subject", e.Subject())
		return nil
	}
	if err != nil {
		f.logger.Warn("Could not decode event data. Treating as missing data.", "error", err, "eventId", e.ID(), "subject", e.Subject())
		return nil
	}

	if outcome := f.Handle(ctx, event); outcome == models.OutcomeWriteFailed && f.config.PropagateWriteErrors {
		return fmt.Errorf("update of document %s failed", event.DocumentID)
	}
	return nil
}

// Handle evaluates the guard against the post-write snapshot and issues at
// most one single-field update. Failures are logged, never returned.
func (f *ContentUpdaterFunction) Handle(ctx context.Context, event *models.ChangeEvent) models.Outcome {
	if event == nil {
		f.logger.Warn("No event data. Exiting function.")
		return models.OutcomeNoData
	}
	logCtx := f.logger.With("documentId", event.DocumentID, "variant", f.guard.Name())
	logCtx.Info("Function triggered for document.")

	if event.DocumentID == "" {
		logCtx.Warn("Event carries no document ID. No action needed.")
		return models.OutcomeNoData
	}
	if event.IsDeletion() {
		logCtx.Info("Document was deleted. No action needed.")
		return models.OutcomeDeleted
	}
	if len(event.After) == 0 {
		logCtx.Info("Document has no data. No action needed.")
		return models.OutcomeNoData
	}

	observed, holds := f.guard.Check(event.After)
	logCtx.Info("Observed guard field.", "field", f.guard.ObservedField(), "value", observed)
	if !holds {
		logCtx.Info("Guard not matched. No update required.")
		return models.OutcomeSkipped
	}

	field, value := f.guard.Update()
	logCtx.Info("Guard matched. Preparing to update.", "field", field, "value", value)
	if err := f.writer.SetField(ctx, event.DocumentID, field, value); err != nil {
		logCtx.Error("Error updating document.", "error", err, "notFound", gcp.IsNotFound(err))
		return models.OutcomeWriteFailed
	}

	logCtx.Info("Successfully updated document.", "field", field, "value", value)
	return models.OutcomeUpdated
}
