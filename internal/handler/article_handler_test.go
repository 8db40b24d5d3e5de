package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/guoguo/blog-backend/internal/db"
)

func setupHandlerTest(t *testing.T) (*gorm.DB, *API, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	api := NewAPI(gdb, zerolog.Nop())

	r := gin.New()
	articles := r.Group("/api/articles")
	{
		articles.GET("", api.ListArticles)
		articles.GET("/:id", api.GetArticle)
		articles.POST("", api.CreateArticle)
		articles.DELETE("/:id", api.DeleteArticle)
		articles.POST("/:id/like", api.ToggleArticleLike)
	}
	return gdb, api, r
}

func seedHandlerUser(t *testing.T, gdb *gorm.DB, username string) db.User {
	t.Helper()
	user := db.User{Username: username, Password: "secret"}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func performJSON(r *gin.Engine, method, path string, userID uint, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-User-ID", strconv.FormatUint(uint64(userID), 10))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateArticleRequiresIdentity(t *testing.T) {
	_, _, r := setupHandlerTest(t)

	w := performJSON(r, http.MethodPost, "/api/articles", 0, gin.H{
		"title": "t", "content": "c",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCreateArticleValidatesBody(t *testing.T) {
	gdb, _, r := setupHandlerTest(t)
	user := seedHandlerUser(t, gdb, "writer")

	w := performJSON(r, http.MethodPost, "/api/articles", user.ID, gin.H{"title": "no content"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateAndFetchArticle(t *testing.T) {
	gdb, _, r := setupHandlerTest(t)
	user := seedHandlerUser(t, gdb, "writer")

	w := performJSON(r, http.MethodPost, "/api/articles", user.ID, gin.H{
		"title":   "Hello World",
		"content": "# hi",
		"status":  "PUBLISHED",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		Code int `json:"code"`
		Data struct {
			ID   uint   `json:"id"`
			Slug string `json:"slug"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Code != 0 || created.Data.Slug != "hello-world" {
		t.Fatalf("unexpected payload %s", w.Body.String())
	}

	get := performJSON(r, http.MethodGet, fmt.Sprintf("/api/articles/%d", created.Data.ID), 0, nil)
	if get.Code != http.StatusOK {
		t.Fatalf("anonymous fetch of public article should succeed, got %d", get.Code)
	}
}

func TestGetArticleMapsServiceErrors(t *testing.T) {
	gdb, _, r := setupHandlerTest(t)
	user := seedHandlerUser(t, gdb, "writer")

	w := performJSON(r, http.MethodPost, "/api/articles", user.ID, gin.H{
		"title": "Secret Draft", "content": "hidden",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create draft: %d", w.Code)
	}
	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if w := performJSON(r, http.MethodGet, fmt.Sprintf("/api/articles/%d", created.Data.ID), 0, nil); w.Code != http.StatusForbidden {
		t.Fatalf("anonymous draft fetch should be 403, got %d", w.Code)
	}
	if w := performJSON(r, http.MethodGet, "/api/articles/99999", 0, nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing article should be 404, got %d", w.Code)
	}
	if w := performJSON(r, http.MethodGet, "/api/articles/not-a-number", 0, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id should be 400, got %d", w.Code)
	}
}

func TestToggleLikeDraftForbidden(t *testing.T) {
	gdb, _, r := setupHandlerTest(t)
	author := seedHandlerUser(t, gdb, "writer")
	reader := seedHandlerUser(t, gdb, "reader")

	w := performJSON(r, http.MethodPost, "/api/articles", author.ID, gin.H{
		"title": "Draft", "content": "c",
	})
	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	like := performJSON(r, http.MethodPost, fmt.Sprintf("/api/articles/%d/like", created.Data.ID), reader.ID, nil)
	if like.Code != http.StatusForbidden {
		t.Fatalf("liking a draft should be 403, got %d", like.Code)
	}
}
