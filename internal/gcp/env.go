package gcp

import (
	"fmt"
	"os"
	"strconv"
)

// GetEnv is a helper to read an environment variable or return a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvBool reads a boolean environment variable. Unset or empty yields fallback.
func GetEnvBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("%s must be a boolean, got %q: %w", key, value, err)
	}
	return b, nil
}

// ProjectID returns PROJECT_ID, falling back to the GOOGLE_CLOUD_PROJECT
// variable the functions runtime sets.
func ProjectID() string {
	if projectID := GetEnv("PROJECT_ID", ""); projectID != "" {
		return projectID
	}
	return GetEnv("GOOGLE_CLOUD_PROJECT", "")
}
