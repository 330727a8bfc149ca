package gcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/Lllllllleong/contentstatusflow/internal/models"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"not found", status.Error(codes.NotFound, "no document"), true},
		{"wrapped not found", fmt.Errorf("failed to update: %w", status.Error(codes.NotFound, "no document")), true},
		{"permission denied", status.Error(codes.PermissionDenied, "nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewFirestoreClientRequiresProject(t *testing.T) {
	if _, err := NewFirestoreClient(context.Background(), "", ""); err == nil {
		t.Error("expected an error for an empty project ID")
	}
}

// The tests below talk to the Firestore emulator and are skipped without it.
func emulatorClientWriter(t *testing.T, collection string) (*FirestoreWriter, *FirestoreScanner, func(id string) models.Fields, func(id string, f models.Fields)) {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := NewFirestoreClient(ctx, "content-test", "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { client.Close() })

	get := func(id string) models.Fields {
		snap, err := client.Collection(collection).Doc(id).Get(ctx)
		if err != nil {
			t.Fatalf("Get(%s): %v", id, err)
		}
		return models.Fields(snap.Data())
	}
	put := func(id string, f models.Fields) {
		if _, err := client.Collection(collection).Doc(id).Set(ctx, map[string]any(f)); err != nil {
			t.Fatalf("Set(%s): %v", id, err)
		}
	}
	filter := models.FieldFilter{Path: models.FieldStatus, Op: "==", Value: models.StatusPendingAnalysis}
	return NewFirestoreWriter(client, collection), NewFirestoreScanner(client, collection, filter), get, put
}

func TestFirestoreWriterSetFieldEmulator(t *testing.T) {
	collection := "content-" + t.Name()
	writer, _, get, put := emulatorClientWriter(t, collection)
	ctx := context.Background()

	put("doc1", models.Fields{"status": "pending-analysis", "title": "keep me"})
	if err := writer.SetField(ctx, "doc1", models.FieldStatus, models.StatusCompleted); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	want := models.Fields{"status": "completed", "title": "keep me"}
	if diff := cmp.Diff(want, get("doc1")); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}

	err := writer.SetField(ctx, "missing", models.FieldStatus, models.StatusCompleted)
	if !IsNotFound(err) {
		t.Errorf("SetField on a missing document: error = %v, want NotFound", err)
	}
}

func TestFirestoreScannerEmulator(t *testing.T) {
	collection := "content-" + t.Name()
	_, scanner, _, put := emulatorClientWriter(t, collection)

	put("a", models.Fields{"status": "pending-analysis"})
	put("b", models.Fields{"status": "completed"})
	put("c", models.Fields{"status": "pending-analysis"})

	got := map[string]bool{}
	err := scanner.Snapshots(context.Background(), func(id string, _ models.Fields) error {
		got[id] = true
		return nil
	})
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	if diff := cmp.Diff(map[string]bool{"a": true, "c": true}, got); diff != "" {
		t.Errorf("scanned ids mismatch (-want +got):\n%s", diff)
	}
}
