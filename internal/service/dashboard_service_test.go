package service

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/guoguo/blog-backend/internal/db"
)

func setupDashboardServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:dashboard-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestDashboardService_Overview(t *testing.T) {
	gdb := setupDashboardServiceTestDB(t)
	svc := NewDashboardService(gdb)
	articles := NewArticleService(gdb)
	author := createTestUser(t, gdb, "writer")
	reader := createTestUser(t, gdb, "reader")

	published, err := articles.Create(author.ID, ArticleInput{Title: "One", Content: "a", Status: "PUBLISHED"})
	if err != nil {
		t.Fatalf("create published: %v", err)
	}
	if _, err := articles.Create(author.ID, ArticleInput{Title: "Two", Content: "b"}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	if err := gdb.Model(&db.Article{}).Where("id = ?", published.ID).Update("view_count", 7).Error; err != nil {
		t.Fatalf("seed views: %v", err)
	}
	if _, err := articles.ToggleLike(reader.ID, published.ID); err != nil {
		t.Fatalf("toggle like: %v", err)
	}
	if _, err := articles.ToggleCollect(author.ID, published.ID); err != nil {
		t.Fatalf("toggle collect: %v", err)
	}
	if err := articles.RecordView(author.ID, published.ID, nil); err != nil {
		t.Fatalf("record view: %v", err)
	}

	overview, err := svc.Overview(author.ID)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.TotalViews != 8 {
		t.Fatalf("expected 8 total views, got %d", overview.TotalViews)
	}
	if overview.TotalLikes != 1 {
		t.Fatalf("expected 1 total like, got %d", overview.TotalLikes)
	}
	if overview.PublishedCount != 1 || overview.DraftCount != 1 {
		t.Fatalf("unexpected article counts %d/%d", overview.PublishedCount, overview.DraftCount)
	}
	if overview.CollectionCount != 1 || overview.HistoryCount != 1 {
		t.Fatalf("unexpected collection/history counts %d/%d", overview.CollectionCount, overview.HistoryCount)
	}
}

func TestDashboardService_OverviewEmptyUser(t *testing.T) {
	gdb := setupDashboardServiceTestDB(t)
	svc := NewDashboardService(gdb)

	overview, err := svc.Overview(9999)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.TotalViews != 0 || overview.TotalLikes != 0 || overview.PublishedCount != 0 {
		t.Fatalf("expected zeroed overview, got %+v", overview)
	}
}
