package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	// Create temp file for testing
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")
	os.WriteFile(existingFile, []byte("test"), 0644)

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "file exists",
			path:     existingFile,
			expected: true,
		},
		{
			name:     "file doesn't exist",
			path:     filepath.Join(tmpDir, "notfound.txt"),
			expected: false,
		},
		{
			name:     "path is directory",
			path:     tmpDir,
			expected: true, // FileExists returns true for both files and directories
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FileExists(tt.path)
			if result != tt.expected {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestDirExists(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file.txt")
	os.WriteFile(file, []byte("x"), 0644)

	if !DirExists(tmpDir) {
		t.Errorf("DirExists(%q) = false, want true", tmpDir)
	}
	if DirExists(file) {
		t.Errorf("DirExists(%q) = true, want false for a regular file", file)
	}
	if DirExists(filepath.Join(tmpDir, "missing")) {
		t.Error("DirExists() = true for a missing path")
	}
}

func TestMkdirAll(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name        string
		paths       []string
		expectError bool
	}{
		{
			name:        "create single directory",
			paths:       []string{filepath.Join(tmpDir, "single")},
			expectError: false,
		},
		{
			name:        "create nested directories",
			paths:       []string{filepath.Join(tmpDir, "a", "b", "c")},
			expectError: false,
		},
		{
			name:        "create multiple directories",
			paths:       []string{filepath.Join(tmpDir, "d1"), filepath.Join(tmpDir, "d2")},
			expectError: false,
		},
		{
			name:        "directory already exists",
			paths:       []string{tmpDir},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MkdirAll(tt.paths...)

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				// Verify all directories exist
				for _, path := range tt.paths {
					if _, err := os.Stat(path); os.IsNotExist(err) {
						t.Errorf("Directory not created: %s", path)
					}
				}
			}
		})
	}
}
