package gcp

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/Lllllllleong/contentstatusflow/internal/models"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewFirestoreClient creates and returns a new Firestore client for the given project and database.
// It centralizes client creation for all functions. An empty databaseID selects the default database.
func NewFirestoreClient(ctx context.Context, projectID, databaseID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return client, nil
}

// FirestoreWriter issues single-field partial updates against one collection.
type FirestoreWriter struct {
	collection *firestore.CollectionRef
}

// NewFirestoreWriter returns a writer bound to the named collection.
func NewFirestoreWriter(client *firestore.Client, collection string) *FirestoreWriter {
	return &FirestoreWriter{collection: client.Collection(collection)}
}

// SetField updates exactly one field of an existing document. Fields not named
// are left untouched. The update fails with NotFound if the document is gone.
func (w *FirestoreWriter) SetField(ctx context.Context, documentID, field string, value any) error {
	docRef := w.collection.Doc(documentID)
	if docRef == nil {
		return fmt.Errorf("invalid document ID %q", documentID)
	}
	if _, err := docRef.Update(ctx, []firestore.Update{{Path: field, Value: value}}); err != nil {
		return fmt.Errorf("failed to update %s on %s/%s: %w", field, w.collection.ID, documentID, err)
	}
	return nil
}

// IsNotFound reports whether err, possibly wrapped, is a gRPC NotFound.
func IsNotFound(err error) bool {
	var se interface{ GRPCStatus() *status.Status }
	if errors.As(err, &se) {
		return se.GRPCStatus().Code() == codes.NotFound
	}
	return false
}

// FirestoreScanner walks the documents of one collection, optionally narrowed
// by a single field filter.
type FirestoreScanner struct {
	query firestore.Query
}

// NewFirestoreScanner builds a scanner over collection. A zero filter scans every document.
func NewFirestoreScanner(client *firestore.Client, collection string, filter models.FieldFilter) *FirestoreScanner {
	query := client.Collection(collection).Query
	if filter.Path != "" {
		query = query.Where(filter.Path, filter.Op, filter.Value)
	}
	return &FirestoreScanner{query: query}
}

// Snapshots calls yield for each matching document, stopping at the first error.
func (s *FirestoreScanner) Snapshots(ctx context.Context, yield func(documentID string, fields models.Fields) error) error {
	it := s.query.Documents(ctx)
	defer it.Stop()

	for {
		doc, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to iterate documents: %w", err)
		}
		if err := yield(doc.Ref.ID, models.Fields(doc.Data())); err != nil {
			return err
		}
	}
}
