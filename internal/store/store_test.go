package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, err := kv.Get(ctx, KeyUserSettings); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unset key, got %v", err)
	}

	if err := kv.Set(ctx, KeyUserSettings, []byte(`{"unitSystem":"metric"}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := kv.Get(ctx, KeyUserSettings)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"unitSystem":"metric"}` {
		t.Fatalf("unexpected value: %s", got)
	}

	// Set replaces the previous value wholesale.
	if err := kv.Set(ctx, KeyUserSettings, []byte(`{"unitSystem":"imperial"}`)); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}
	got, err = kv.Get(ctx, KeyUserSettings)
	if err != nil {
		t.Fatalf("Get after overwrite failed: %v", err)
	}
	if string(got) != `{"unitSystem":"imperial"}` {
		t.Fatalf("unexpected value after overwrite: %s", got)
	}
}

func TestMemoryStore(t *testing.T) {
	testKV(t, NewMemoryStore())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	kv := NewMemoryStore()
	ctx := context.Background()

	val := []byte("original")
	if err := kv.Set(ctx, "k", val); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val[0] = 'X'

	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("store must not alias caller buffers, got %s", got)
	}
}

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_dashboard.db")

	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer s.Close()

	testKV(t, s)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_dashboard.db")
	ctx := context.Background()

	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	if err := s.Set(ctx, KeyCurrentWeather, []byte(`{"id":"snap"}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, KeyCurrentWeather)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(got) != `{"id":"snap"}` {
		t.Fatalf("unexpected value after reopen: %s", got)
	}
}
