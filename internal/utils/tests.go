package util

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// CreateTempFile writes content to a fresh file in the test's temp dir.
func CreateTempFile(t *testing.T, pattern string, content string) (string, func()) {
	t.Helper()
	tempDir := t.TempDir()
	tempFile := filepath.Join(tempDir, fmt.Sprintf(pattern, rand.Intn(100)+10))
	if err := os.WriteFile(tempFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return tempFile, func() {
		os.Remove(tempFile)
	}
}

// IntPtr is a shorthand for expected frame indexes in tests.
func IntPtr(v int) *int {
	return &v
}
