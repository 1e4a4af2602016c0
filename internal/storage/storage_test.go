package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestStore_RoundTripAndReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "portal.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if _, err := s.Get("auth-storage"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("first-run Get error = %v, want ErrNotFound", err)
	}

	if err := s.Set("auth-storage", []byte(`{"isAuthenticated":true}`)); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set("auth-storage", []byte(`{"isAuthenticated":false}`)); err != nil {
		t.Fatalf("overwrite returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	// Durability: a fresh handle sees the last write.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Get("auth-storage")
	if err != nil {
		t.Fatalf("Get after reopen returned error: %v", err)
	}
	if string(got) != `{"isAuthenticated":false}` {
		t.Fatalf("value = %s, want last write", got)
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	s, err := Open(filepath.Join(t.TempDir(), "portal.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Set("favorites", []byte(`[1,2]`)); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Delete("favorites"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := s.Delete("favorites"); err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
	if _, err := s.Get("favorites"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete error = %v, want ErrNotFound", err)
	}
}
