// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// IndexHTML is the shell written by StaticDir.
const IndexHTML = "<!doctype html><html><body><div id=\"root\"></div></body></html>"

// StaticDir creates a temporary web root holding index.html plus the given
// extra files, keyed by slash-separated path.
func StaticDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	WriteFile(t, filepath.Join(dir, "index.html"), IndexHTML)
	for name, content := range files {
		WriteFile(t, filepath.Join(dir, filepath.FromSlash(name)), content)
	}
	return dir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// DecodeFlights parses a JSON array of flights from an API response body.
func DecodeFlights(t *testing.T, body []byte) []domain.Flight {
	t.Helper()

	var flights []domain.Flight
	if err := json.Unmarshal(body, &flights); err != nil {
		t.Fatalf("Failed to decode flights %q: %v", body, err)
	}
	return flights
}

// IDs returns the string form of each flight's id, in order.
func IDs(flights []domain.Flight) []string {
	ids := make([]string, len(flights))
	for i, f := range flights {
		b, _ := json.Marshal(f.ID)
		ids[i] = string(b)
	}
	return ids
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}
