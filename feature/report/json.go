package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"vault-reconciler/feature/vault"
)

// JSONFileName returns the report file name for a given timestamp.
func JSONFileName(ts time.Time) string {
	return fmt.Sprintf("validation_report_%d.json", ts.Unix())
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(r *vault.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// SaveJSON writes the report into dir as a timestamped JSON file and
// returns the full path.
func SaveJSON(r *vault.Report, dir string) (string, error) {
	path := filepath.Join(dir, JSONFileName(r.FinishedAt))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(r, f); err != nil {
		return "", err
	}
	return path, nil
}
