package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vault-reconciler/feature/vault"

	"github.com/stretchr/testify/assert"
)

func TestJSONFileName(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	assert.Equal(t, "validation_report_1700000000.json", JSONFileName(ts))
}

func TestSaveJSON(t *testing.T) {
	dir := t.TempDir()
	rep := sampleReport()

	path, err := SaveJSON(rep, dir)
	assert.NoError(t, err)
	assert.Equal(t, JSONFileName(rep.FinishedAt), filepath.Base(path))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report file: %v", err)
	}
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"run_id\""))

	var got vault.Report
	assert.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, rep.RunID, got.RunID)
	assert.Len(t, got.Results, 2)
	assert.Equal(t, int64(5), *got.Results[0].TotalRowsLost)
	assert.Nil(t, got.Results[1].TotalRowsLost)
}

func TestSaveJSON_BadDir(t *testing.T) {
	_, err := SaveJSON(sampleReport(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create report file")
}
