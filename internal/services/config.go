package services

import (
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/Lllllllleong/contentstatusflow/internal/gcp"
	"github.com/Lllllllleong/contentstatusflow/internal/models"
)

// UpdaterConfig holds configuration for the content updater functions.
type UpdaterConfig struct {
	ProjectID  string
	DatabaseID string
	Collection string
	// Region is the region the trigger is registered in. It is only logged;
	// the binding itself is declared at deploy time.
	Region string
	// PropagateWriteErrors makes a failed write fail the invocation so the
	// platform retry policy applies. Off by default: failures are logged and swallowed.
	PropagateWriteErrors bool
}

// LoadUpdaterConfig loads and validates the updater configuration from the environment.
func LoadUpdaterConfig() (UpdaterConfig, error) {
	propagate, err := gcp.GetEnvBool("PROPAGATE_WRITE_ERRORS", false)
	if err != nil {
		return UpdaterConfig{}, err
	}

	config := UpdaterConfig{
		ProjectID:            gcp.ProjectID(),
		DatabaseID:           gcp.GetEnv("FIRESTORE_DATABASE", firestore.DefaultDatabaseID),
		Collection:           gcp.GetEnv("CONTENT_COLLECTION", "content"),
		Region:               gcp.GetEnv("FUNCTION_REGION", "us-central1"),
		PropagateWriteErrors: propagate,
	}
	if err := config.Validate(); err != nil {
		return UpdaterConfig{}, err
	}
	return config, nil
}

// Validate checks that the configuration can address a collection.
func (c UpdaterConfig) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("PROJECT_ID or GOOGLE_CLOUD_PROJECT environment variable must be set")
	}
	if c.DatabaseID == "" {
		return fmt.Errorf("FIRESTORE_DATABASE must not be empty")
	}
	if _, err := c.TriggerPath(); err != nil {
		return fmt.Errorf("invalid CONTENT_COLLECTION %q: %w", c.Collection, err)
	}
	return nil
}

// TriggerPath returns the document binding the functions are registered against.
func (c UpdaterConfig) TriggerPath() (models.DocumentPath, error) {
	return models.CollectionPath(c.Collection)
}
