package fsops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRealFS_ValidateName(t *testing.T) {
	fs := &RealFS{}

	tests := []struct {
		name      string
		content   string
		wantError bool
	}{
		{
			name:      "master file",
			content:   "Morrowind.esm",
			wantError: false,
		},
		{
			name:      "name with spaces",
			content:   "Clean_Argonian Full Helms Lore Integrated.ESP",
			wantError: false,
		},
		{
			name:      "empty name",
			content:   "",
			wantError: true,
		},
		{
			name:      "blank name",
			content:   "   ",
			wantError: true,
		},
		{
			name:      "parent directory",
			content:   "..",
			wantError: true,
		},
		{
			name:      "path with separator",
			content:   "mods/lights.esp",
			wantError: true,
		},
		{
			name:      "path with backslash",
			content:   "mods\\lights.esp",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.ValidateName(tt.content)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateName(%q) error = %v, wantError %v", tt.content, err, tt.wantError)
			}
		})
	}
}

func TestRealFS_ExistsAndIsDir(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "exists.esp")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	t.Run("existing file", func(t *testing.T) {
		exists, err := fs.Exists(testFile)
		if err != nil {
			t.Errorf("Exists returned error: %v", err)
		}
		if !exists {
			t.Error("Exists should return true for existing file")
		}
		if fs.IsDir(testFile) {
			t.Error("IsDir should return false for a file")
		}
	})

	t.Run("non-existing file", func(t *testing.T) {
		nonExistent := filepath.Join(tmpDir, "does-not-exist.esp")
		exists, err := fs.Exists(nonExistent)
		if err != nil {
			t.Errorf("Exists returned error: %v", err)
		}
		if exists {
			t.Error("Exists should return false for non-existing file")
		}
		if fs.IsDir(nonExistent) {
			t.Error("IsDir should return false for a missing path")
		}
	})

	t.Run("existing directory", func(t *testing.T) {
		if !fs.IsDir(tmpDir) {
			t.Error("IsDir should return true for existing directory")
		}
	})
}

func TestRealFS_Stat(t *testing.T) {
	fs := &RealFS{}
	testFile := filepath.Join(t.TempDir(), "sized.esp")
	if err := os.WriteFile(testFile, []byte("12345"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	info, err := fs.Stat(testFile)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 5 {
		t.Errorf("expected size 5, got %d", info.Size())
	}
}

func TestRealFS_MkdirAll(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	nestedPath := filepath.Join(tmpDir, "a", "b", "c")
	if err := fs.MkdirAll(nestedPath, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if _, err := os.Stat(nestedPath); os.IsNotExist(err) {
		t.Error("Nested directory was not created")
	}

	// Create again - should not fail
	if err := fs.MkdirAll(nestedPath, 0755); err != nil {
		t.Errorf("Second MkdirAll should not fail: %v", err)
	}
}

func TestRealFS_AtomicWrite(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	t.Run("write to new file in new directory", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "out", "S3LightFixes.omwaddon")
		content := []byte("overlay")

		if err := fs.AtomicWrite(testFile, content, 0644); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}

		readContent, err := fs.ReadFile(testFile)
		if err != nil {
			t.Fatalf("failed to read written file: %v", err)
		}
		if string(readContent) != string(content) {
			t.Errorf("File content mismatch: got %q, want %q", readContent, content)
		}
	})

	t.Run("overwrite existing file", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "atomic-overwrite.yaml")
		if err := os.WriteFile(testFile, []byte("initial"), 0644); err != nil {
			t.Fatalf("failed to create initial file: %v", err)
		}

		newContent := []byte("overwritten")
		if err := fs.AtomicWrite(testFile, newContent, 0644); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}

		readContent, err := os.ReadFile(testFile)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(readContent) != string(newContent) {
			t.Errorf("File content not updated: got %q, want %q", readContent, newContent)
		}

		entries, err := os.ReadDir(tmpDir)
		if err != nil {
			t.Fatalf("failed to read dir: %v", err)
		}
		for _, e := range entries {
			if filepath.Ext(e.Name()) != ".yaml" && !e.IsDir() {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})
}

func TestRealFS_ReadFileMissing(t *testing.T) {
	fs := &RealFS{}
	_, err := fs.ReadFile(filepath.Join(t.TempDir(), "does-not-exist.esp"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestRealFS_Remove(t *testing.T) {
	fs := &RealFS{}
	testFile := filepath.Join(t.TempDir(), "remove-me.omwaddon")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if err := fs.Remove(testFile); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(testFile); !os.IsNotExist(err) {
		t.Error("File should have been removed")
	}
}
