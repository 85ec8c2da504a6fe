package credential

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "creds"))

	secret, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if secret != "" {
		t.Fatalf("expected empty secret, got %q", secret)
	}
}

func TestSaveThenLoadIsVerbatim(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "creds"))

	if err := s.Save("sk-test"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("sk-second"); err != nil {
		t.Fatalf("Save again: %v", err)
	}
	secret, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if secret != "sk-second" {
		t.Fatalf("expected overwritten secret, got %q", secret)
	}
}

func TestRemoveDeletesFileAndToleratesAbsence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds")
	s := New(path)
	if err := s.Save("sk-test"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file to be gone, stat err=%v", err)
	}
	if err := s.Remove(); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
}
