package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartler/internal/audit"
	"smartler/internal/auth"
	"smartler/internal/catalog"
	"smartler/internal/importer"
	"smartler/internal/logger"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	store := catalog.NewMemoryStore()
	recorder := audit.NewMemoryRecorder()
	log := logger.NewWithOutput(logger.Config{Level: "error"}, io.Discard)

	return NewRouter(Handlers{
		Auth:    auth.NewHandler(auth.NewService(auth.NewInMemoryStaffRepository())),
		Catalog: catalog.NewHandler(catalog.NewService(store, recorder, log), nil),
		Import:  importer.NewHandler(importer.NewService(store, recorder, log)),
		Audit:   audit.NewHandler(recorder),
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/restaurants", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestLoginThenImportFlow(t *testing.T) {
	r := newTestRouter(t)

	// Register a manager and log in.
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "pw", "role": auth.RoleManager,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d (%s)", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "asha@example.com", "password": "pw",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d (%s)", w.Code, w.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatal(err)
	}

	// Create a restaurant, then import a menu into it.
	w = doJSON(t, r, http.MethodPost, "/restaurants", login.Token, gin.H{"name": "Cafe One"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create restaurant: status = %d (%s)", w.Code, w.Body.String())
	}
	var rest struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rest); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, r, http.MethodPost, "/restaurants/"+rest.ID+"/menu/import", login.Token, gin.H{
		"categories": []gin.H{
			{
				"name": "Beverages",
				"items": []gin.H{
					{"itemCode": "BEV-1", "name": "Espresso", "price": 3.5},
				},
			},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("import: status = %d (%s)", w.Code, w.Body.String())
	}
	var stats catalog.ImportStatistics
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.ItemsCreated != 1 || stats.CategoriesCreated != 1 {
		t.Errorf("stats = %+v", stats)
	}

	// Bad payload comes back as 400.
	w = doJSON(t, r, http.MethodPost, "/restaurants/"+rest.ID+"/menu/import", login.Token, gin.H{
		"categories": []gin.H{},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty import: status = %d, want 400", w.Code)
	}
}

func TestImportEndpointForbiddenForStaff(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"name": "Sam", "email": "sam@example.com", "password": "pw",
	})
	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "sam@example.com", "password": "pw",
	})
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, r, http.MethodPost, "/menu/import", login.Token, gin.H{})
	if w.Code != http.StatusForbidden {
		t.Errorf("staff import: status = %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/audit", login.Token, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("staff audit: status = %d, want 403", w.Code)
	}
}
