package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr[T any](v T) *T { return &v }

func TestRecordFromFields(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   ContentRecord
	}{
		{"empty", Fields{}, ContentRecord{}},
		{"status only", Fields{"status": "pending-analysis"}, ContentRecord{Status: ptr("pending-analysis")}},
		{"wrong types are absent", Fields{"status": 3, "imageUrl": true, "ispythonexecuted": "yes"}, ContentRecord{}},
		{
			"all fields",
			Fields{"status": "completed", "imageUrl": "http://x/y.png", "ispythonexecuted": true, "title": "t"},
			ContentRecord{Status: ptr("completed"), ImageURL: ptr("http://x/y.png"), PythonExecuted: ptr(true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecordFromFields(tt.fields)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RecordFromFields() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChangeEventIsDeletion(t *testing.T) {
	if !(&ChangeEvent{DocumentID: "a"}).IsDeletion() {
		t.Error("event without After should be a deletion")
	}
	if (&ChangeEvent{DocumentID: "a", After: Fields{}}).IsDeletion() {
		t.Error("event with empty After should not be a deletion")
	}
}

func TestParseDocumentPath(t *testing.T) {
	tests := []struct {
		pattern string
		want    DocumentPath
		wantErr bool
	}{
		{"content/{doc_id}", DocumentPath{Collection: "content", Wildcard: "doc_id"}, false},
		{"/content/{docId}/", DocumentPath{Collection: "content", Wildcard: "docId"}, false},
		{"content", DocumentPath{}, true},
		{"content/abc", DocumentPath{}, true},
		{"content/{}", DocumentPath{}, true},
		{"{col}/{id}", DocumentPath{}, true},
		{"content/{id}/notes/{n}", DocumentPath{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := ParseDocumentPath(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDocumentPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDocumentPath() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDocumentPathMatch(t *testing.T) {
	p, err := CollectionPath("content")
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "content/{docId}" {
		t.Errorf("String() = %q, want content/{docId}", p.String())
	}

	tests := []struct {
		path   string
		wantID string
		wantOK bool
	}{
		{"content/abc", "abc", true},
		{"/content/abc", "abc", true},
		{"content/", "", false},
		{"content", "", false},
		{"contents/abc", "", false},
		{"content/abc/notes/n1", "", false},
		{"users/abc", "", false},
	}

	for _, tt := range tests {
		id, ok := p.Match(tt.path)
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.path, id, ok, tt.wantID, tt.wantOK)
		}
	}
}
