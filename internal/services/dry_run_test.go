package services

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDryRunWriter(t *testing.T) {
	var buf bytes.Buffer
	w := DryRunWriter{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	if err := w.SetField(context.Background(), "doc1", "status", "completed"); err != nil {
		t.Fatalf("SetField() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Dry run", "documentId=doc1", "field=status", "value=completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}
