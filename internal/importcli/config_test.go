package importcli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "importctl.json")
	t.Setenv("SMARTLER_CONFIG_PATH", path)
	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	want := Config{ServerURL: "http://localhost:8080", Token: "abc123"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Load(); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("err = %v, want ErrConfigNotFound", err)
	}
}

func TestStoreRejectsInvalidConfig(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(Config{Token: "abc"}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Save without server_url: err = %v, want ErrInvalidConfig", err)
	}

	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load garbage: err = %v, want ErrInvalidConfig", err)
	}
}
