package importcli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartler/internal/catalog"
)

func TestClientImportMenu(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		stats := catalog.NewImportStatistics()
		stats.ItemsCreated = 3
		_ = json.NewEncoder(w).Encode(stats)
	}))
	defer server.Close()

	client := NewClient(Config{ServerURL: server.URL + "/", Token: "tok"}, nil)
	stats, err := client.ImportMenu(context.Background(), "rest-1", []byte(`{"categories":[]}`))
	if err != nil {
		t.Fatalf("ImportMenu: %v", err)
	}

	if gotPath != "/restaurants/rest-1/menu/import" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if stats.ItemsCreated != 3 {
		t.Errorf("ItemsCreated = %d, want 3", stats.ItemsCreated)
	}
}

func TestClientSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid import payload"})
	}))
	defer server.Close()

	client := NewClient(Config{ServerURL: server.URL}, nil)
	_, err := client.ImportSystemMenu(context.Background(), []byte(`{}`))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "server returned 400: invalid import payload" {
		t.Errorf("err = %q", got)
	}
}
