package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/teamsite/internal/config"
	"github.com/teamsite/internal/db"
	"github.com/teamsite/internal/storage"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouterTest(t *testing.T) *gin.Engine {
	t.Helper()

	if err := db.Init("", "file::memory:?cache=shared"); err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	cfg := config.AppConfig{
		SessionSecret:  "test-secret",
		StorageDriver:  "local",
		StorageBaseURL: "https://cdn.example.com",
		StorageBucket:  "image",
		UploadDir:      t.TempDir(),
		UploadURLPath:  "/uploads",
	}
	store, err := storage.FromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to build blob store: %v", err)
	}

	return Setup(cfg, store)
}

func TestPing(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAdminRoutesProtected(t *testing.T) {
	r := setupRouterTest(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/admin/dashboard"},
		{http.MethodPost, "/members"},
		{http.MethodDelete, "/gallery"},
		{http.MethodGet, "/contact"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, w.Code)
		}
	}
}

func TestPublicRoutesOpen(t *testing.T) {
	r := setupRouterTest(t)

	for _, path := range []string{"/members", "/gallery", "/news"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, w.Code)
		}
	}
}
