package services

import (
	"fmt"

	"github.com/Lllllllleong/contentstatusflow/internal/models"
)

// Guard decides whether a document snapshot calls for an update, and which
// single field that update sets.
type Guard interface {
	// Name identifies the variant in logs and on the command line.
	Name() string
	// ObservedField is the field the guard reads.
	ObservedField() string
	// Check returns the raw observed value (nil when absent) and whether the guard holds.
	Check(fields models.Fields) (observed any, holds bool)
	// Update returns the one field and value written when the guard holds.
	Update() (field string, value any)
	// Filter narrows a collection scan to documents the guard may match.
	Filter() models.FieldFilter
}

// StatusGuard matches documents whose status is exactly "pending-analysis"
// and moves them to "completed".
type StatusGuard struct{}

func (StatusGuard) Name() string          { return "status" }
func (StatusGuard) ObservedField() string { return models.FieldStatus }

func (StatusGuard) Check(fields models.Fields) (any, bool) {
	rec := models.RecordFromFields(fields)
	return fields[models.FieldStatus], rec.Status != nil && *rec.Status == models.StatusPendingAnalysis
}

func (StatusGuard) Update() (string, any) {
	return models.FieldStatus, models.StatusCompleted
}

func (StatusGuard) Filter() models.FieldFilter {
	return models.FieldFilter{Path: models.FieldStatus, Op: "==", Value: models.StatusPendingAnalysis}
}

// ImageGuard matches documents with a non-empty imageUrl and flags them with
// ispythonexecuted = true.
type ImageGuard struct{}

func (ImageGuard) Name() string          { return "image" }
func (ImageGuard) ObservedField() string { return models.FieldImageURL }

func (ImageGuard) Check(fields models.Fields) (any, bool) {
	rec := models.RecordFromFields(fields)
	return fields[models.FieldImageURL], rec.ImageURL != nil && *rec.ImageURL != ""
}

func (ImageGuard) Update() (string, any) {
	return models.FieldPythonExecuted, true
}

func (ImageGuard) Filter() models.FieldFilter {
	return models.FieldFilter{Path: models.FieldImageURL, Op: "!=", Value: ""}
}

// GuardByName returns the guard registered under name.
func GuardByName(name string) (Guard, error) {
	switch name {
	case StatusGuard{}.Name():
		return StatusGuard{}, nil
	case ImageGuard{}.Name():
		return ImageGuard{}, nil
	default:
		return nil, fmt.Errorf("unknown guard %q (want status or image)", name)
	}
}
