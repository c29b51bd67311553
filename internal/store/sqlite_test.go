// ABOUTME: Tests for the SQLite KV store
// ABOUTME: Uses a real SQLite database in a temp directory

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "portfolio.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "admin_attempts", "3"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "admin_attempts")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "3" {
		t.Errorf("expected 3, got %q", got)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "projects", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "projects", `[{"id":"x"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "projects")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `[{"id":"x"}]` {
		t.Errorf("unexpected value: %q", got)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "admin_token", "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete(ctx, "admin_token"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "admin_token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is not an error
	if err := s.Delete(ctx, "admin_token"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Set(ctx, "skills", `[{"id":"go"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s2.Close() }()

	got, err := s2.Get(ctx, "skills")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got != `[{"id":"go"}]` {
		t.Errorf("unexpected value after reopen: %q", got)
	}
}
