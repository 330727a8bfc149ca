package models

import (
	"fmt"
	"strings"
)

// Field names on documents in the content collection.
const (
	FieldStatus         = "status"
	FieldImageURL       = "imageUrl"
	FieldPythonExecuted = "ispythonexecuted"
)

// Status values the updater cares about. Any other value is left alone.
const (
	StatusPendingAnalysis = "pending-analysis"
	StatusCompleted       = "completed"
)

// Fields is the flat view of a Firestore document as delivered by a trigger.
type Fields map[string]any

// String returns the value at key if it is present and holds a string.
func (f Fields) String(key string) (string, bool) {
	v, ok := f[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the value at key if it is present and holds a bool.
func (f Fields) Bool(key string) (bool, bool) {
	v, ok := f[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// ContentRecord is the typed view of the few fields the functions consult.
// A nil pointer means the field is absent or not of the expected type.
type ContentRecord struct {
	Status         *string `firestore:"status,omitempty"`
	ImageURL       *string `firestore:"imageUrl,omitempty"`
	PythonExecuted *bool   `firestore:"ispythonexecuted,omitempty"`
}

// RecordFromFields builds a ContentRecord, ignoring every other field.
func RecordFromFields(f Fields) ContentRecord {
	var rec ContentRecord
	if s, ok := f.String(FieldStatus); ok {
		rec.Status = &s
	}
	if s, ok := f.String(FieldImageURL); ok {
		rec.ImageURL = &s
	}
	if b, ok := f.Bool(FieldPythonExecuted); ok {
		rec.PythonExecuted = &b
	}
	return rec
}

// ChangeEvent is one write notification for a single document.
// After is nil when the write was a deletion.
type ChangeEvent struct {
	DocumentID string
	Before     Fields
	After      Fields
}

// IsDeletion reports whether the event carries no post-write snapshot.
func (e *ChangeEvent) IsDeletion() bool {
	return e.After == nil
}

// Outcome is what a single invocation ended up doing.
type Outcome string

const (
	OutcomeDeleted     Outcome = "deleted"
	OutcomeNoData      Outcome = "no-data"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeUpdated     Outcome = "updated"
	OutcomeWriteFailed Outcome = "write-failed"
)

// FieldFilter is a single-field query predicate, e.g. status == "pending-analysis".
type FieldFilter struct {
	Path  string
	Op    string
	Value any
}

// DocumentPath is a trigger binding of the form "<collection>/{<wildcard>}".
type DocumentPath struct {
	Collection string
	Wildcard   string
}

// ParseDocumentPath parses a pattern such as "content/{docId}". Exactly one
// wildcard segment directly under one collection is supported.
func ParseDocumentPath(pattern string) (DocumentPath, error) {
	parts := strings.Split(strings.Trim(pattern, "/"), "/")
	if len(parts) != 2 {
		return DocumentPath{}, fmt.Errorf("document path %q must have exactly two segments", pattern)
	}
	collection, wildcard := parts[0], parts[1]
	if collection == "" || strings.ContainsAny(collection, "{}") {
		return DocumentPath{}, fmt.Errorf("document path %q has an invalid collection segment", pattern)
	}
	if len(wildcard) < 3 || wildcard[0] != '{' || wildcard[len(wildcard)-1] != '}' {
		return DocumentPath{}, fmt.Errorf("document path %q must end in a {wildcard} segment", pattern)
	}
	return DocumentPath{Collection: collection, Wildcard: wildcard[1 : len(wildcard)-1]}, nil
}

// CollectionPath returns the binding for every direct child of collection.
func CollectionPath(collection string) (DocumentPath, error) {
	return ParseDocumentPath(collection + "/{docId}")
}

func (p DocumentPath) String() string {
	return fmt.Sprintf("%s/{%s}", p.Collection, p.Wildcard)
}

// Match returns the document ID when path (relative to the database root,
// e.g. "content/abc") is a direct child of the bound collection.
func (p DocumentPath) Match(path string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.Trim(path, "/"), p.Collection+"/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
