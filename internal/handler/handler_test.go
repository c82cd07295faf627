package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/teamsite/internal/db"
	"github.com/teamsite/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeBlobStore struct {
	puts    int
	lastKey string
	err     error
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, data []byte, contentType string, overwrite bool) (string, error) {
	f.puts++
	f.lastKey = key
	if f.err != nil {
		return "", f.err
	}
	return f.PublicURL(key), nil
}

func (f *fakeBlobStore) PublicURL(key string) string {
	return "https://cdn.example.com/storage/v1/object/public/image/" + key
}

func setupHandlerTest(t *testing.T) (*gin.Engine, *fakeBlobStore, func()) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Member{}, &db.GalleryItem{}, &db.NewsArticle{}, &db.ContactMessage{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb
	if err := db.EnsureUser("admin", "secret"); err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}

	store := &fakeBlobStore{}
	normalizer := storage.Normalizer{BaseURL: "https://cdn.example.com", Bucket: "image"}
	api := NewAPI(gdb, store, normalizer)

	r := gin.New()
	r.Use(sessions.Sessions("teamsite_session", cookie.NewStore([]byte("test-secret"))))

	r.GET("/members", api.ListMembers)
	r.GET("/gallery", api.ListGallery)
	r.GET("/news", api.ListNews)
	r.GET("/news/:slug", api.GetNewsArticle)
	r.POST("/contact", api.CreateContact)
	r.POST("/admin/login", api.Login)
	r.POST("/admin/logout", api.Logout)

	auth := r.Group("")
	auth.Use(AuthRequired())
	{
		auth.GET("/admin/dashboard", api.Dashboard)
		auth.POST("/members", api.CreateMember)
		auth.DELETE("/members", api.DeleteMember)
		auth.POST("/gallery", api.CreateGalleryItem)
		auth.DELETE("/gallery", api.DeleteGalleryItem)
		auth.POST("/news", api.CreateNewsArticle)
		auth.DELETE("/news", api.DeleteNewsArticle)
		auth.GET("/contact", api.ListContacts)
		auth.DELETE("/contact", api.DeleteContact)
		auth.DELETE("/contact/:id", api.DeleteContactByID)
		auth.PUT("/contact/:id/read", api.MarkContactRead)
	}

	return r, store, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAdmin(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/admin/login", `{"username":"admin","password":"secret"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName, fileType string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	if fileField != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, fileName))
		header.Set("Content-Type", fileType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write(fileData); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestMutationsRequireAuth(t *testing.T) {
	r, store, cleanup := setupHandlerTest(t)
	defer cleanup()

	w := doJSON(t, r, http.MethodPost, "/members", `{"name":"Ana","role":"Designer"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}

	var count int64
	db.DB.Model(&db.Member{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no member created, got %d", count)
	}
	if store.puts != 0 {
		t.Fatalf("expected no uploads, got %d", store.puts)
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	r, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	w := doJSON(t, r, http.MethodPost, "/admin/login", `{"username":"admin","password":"wrong"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", w.Code)
	}

	cookies := loginAdmin(t, r)

	w = doJSON(t, r, http.MethodGet, "/admin/dashboard", "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected dashboard after login, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/admin/logout", "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("logout failed with %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/admin/dashboard", "", w.Result().Cookies())
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestCreateMemberMultipart(t *testing.T) {
	r, store, cleanup := setupHandlerTest(t)
	defer cleanup()

	cookies := loginAdmin(t, r)

	body, contentType := multipartBody(t, map[string]string{
		"name":    "Ana",
		"role":    "Designer",
		"bio":     "makes things pretty",
		"socials": `{"github":"https://github.com/ana"}`,
	}, "photo", "ana.jpg", "image/jpeg", []byte("jpeg-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/members", body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Message string `json:"message"`
		ID      uint   `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.ID == 0 {
		t.Fatalf("expected created id in response, got %s", w.Body.String())
	}
	if store.puts != 1 {
		t.Fatalf("expected one upload, got %d", store.puts)
	}

	w = doJSON(t, r, http.MethodGet, "/members", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed with %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), store.PublicURL(store.lastKey)) {
		t.Fatalf("expected listed photo url, got %s", w.Body.String())
	}
}

func TestCreateMemberValidation(t *testing.T) {
	r, store, cleanup := setupHandlerTest(t)
	defer cleanup()

	cookies := loginAdmin(t, r)

	w := doJSON(t, r, http.MethodPost, "/members", `{"role":"Designer"}`, cookies)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", w.Code)
	}
	if store.puts != 0 {
		t.Fatalf("expected no uploads on validation failure, got %d", store.puts)
	}
}

func TestCreateNewsDerivesSlug(t *testing.T) {
	r, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	cookies := loginAdmin(t, r)

	w := doJSON(t, r, http.MethodPost, "/news", `{"title":"Team Retro #1!","summary":"what went well"}`, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var article db.NewsArticle
	if err := db.DB.First(&article).Error; err != nil {
		t.Fatalf("failed to load article: %v", err)
	}
	if article.Slug != "team-retro-1" {
		t.Fatalf("expected slug team-retro-1, got %s", article.Slug)
	}
	if !article.IsPublished {
		t.Fatalf("expected article published on create")
	}
}

func TestNewsDetailRendersContent(t *testing.T) {
	r, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	cookies := loginAdmin(t, r)

	w := doJSON(t, r, http.MethodPost, "/news", `{"title":"Season Opener","content":"We won **3-0**."}`, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("create failed with %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/news/season-opener", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail failed with %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "<strong>3-0</strong>") {
		t.Fatalf("expected rendered content_html, got %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/news/not-there", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown slug, got %d", w.Code)
	}
}

func TestContactRejectsInvalidEmail(t *testing.T) {
	r, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	w := doJSON(t, r, http.MethodPost, "/contact", `{"name":"Ana","email":"not-an-email","message":"hi"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.DB.Model(&db.ContactMessage{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no contact record, got %d", count)
	}
}

func TestContactInboxFlow(t *testing.T) {
	r, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	// Submitting the form needs no session.
	w := doJSON(t, r, http.MethodPost, "/contact", `{"name":"Ana","email":"ana@example.com","subject":"booking","message":"hello"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("contact create failed with %d: %s", w.Code, w.Body.String())
	}

	// Reading the inbox does.
	if w := doJSON(t, r, http.MethodGet, "/contact", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous inbox read, got %d", w.Code)
	}

	cookies := loginAdmin(t, r)

	var msg db.ContactMessage
	if err := db.DB.First(&msg).Error; err != nil {
		t.Fatalf("failed to load message: %v", err)
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/contact/%d/read", msg.ID), "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("mark read failed with %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/contact/9999/read", "", cookies)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing message, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/contact/%d", msg.ID), "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("delete failed with %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/contact/%d", msg.ID), "", cookies)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %d", w.Code)
	}
}

func TestDeleteMemberNotFoundIsDeterministic(t *testing.T) {
	r, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	cookies := loginAdmin(t, r)

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodDelete, "/members", `{"id":4242}`, cookies)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 on attempt %d, got %d", i+1, w.Code)
		}
	}
}

func TestGalleryJSONModeSkipsUpload(t *testing.T) {
	r, store, cleanup := setupHandlerTest(t)
	defer cleanup()

	cookies := loginAdmin(t, r)

	w := doJSON(t, r, http.MethodPost, "/gallery", `{"file_path":"team/pitch.jpg","caption":"our pitch","metadata":{"width":800,"height":600}}`, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if store.puts != 0 {
		t.Fatalf("expected no uploads in JSON mode, got %d", store.puts)
	}

	var item db.GalleryItem
	if err := db.DB.First(&item).Error; err != nil {
		t.Fatalf("failed to load item: %v", err)
	}
	if item.Metadata != `{"height":600,"width":800}` && item.Metadata != `{"width":800,"height":600}` {
		t.Fatalf("expected client metadata stored, got %s", item.Metadata)
	}
}

func TestGalleryMultipartRequiresFile(t *testing.T) {
	r, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	cookies := loginAdmin(t, r)

	body, contentType := multipartBody(t, map[string]string{"caption": "no file"}, "", "", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/gallery", body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d: %s", w.Code, w.Body.String())
	}
}
