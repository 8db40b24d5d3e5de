package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/guoguo/blog-backend/internal/db"
)

func setupTagServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:tag-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
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

func TestTagService_CreateAndDuplicate(t *testing.T) {
	gdb := setupTagServiceTestDB(t)
	svc := NewTagService(gdb)

	dto, err := svc.Create(TagInput{Name: "Go Lang"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if dto.Slug != "go-lang" {
		t.Fatalf("expected slug go-lang, got %s", dto.Slug)
	}

	if _, err := svc.Create(TagInput{Name: "Go Lang"}); !errors.Is(err, ErrTagExists) {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
}

func TestTagService_PopularOrdersByUsage(t *testing.T) {
	gdb := setupTagServiceTestDB(t)
	svc := NewTagService(gdb)
	articles := NewArticleService(gdb)
	author := createTestUser(t, gdb, "writer")

	rare, err := svc.Create(TagInput{Name: "Rare"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	hot, err := svc.Create(TagInput{Name: "Hot"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	for i := 0; i < 3; i++ {
		input := ArticleInput{
			Title:   fmt.Sprintf("Hot Article %d", i),
			Content: "a",
			TagIDs:  []uint{hot.ID},
		}
		if i == 0 {
			input.TagIDs = append(input.TagIDs, rare.ID)
		}
		if _, err := articles.Create(author.ID, input); err != nil {
			t.Fatalf("create article %d: %v", i, err)
		}
	}

	popular, err := svc.Popular(10)
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	if len(popular) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(popular))
	}
	if popular[0].ID != hot.ID || popular[0].ArticleCount != 3 {
		t.Fatalf("expected hot tag first with count 3, got %+v", popular[0])
	}
	if popular[1].ArticleCount != 1 {
		t.Fatalf("expected rare tag count 1, got %d", popular[1].ArticleCount)
	}
}

func TestTagService_DeleteRefusedWhenInUse(t *testing.T) {
	gdb := setupTagServiceTestDB(t)
	svc := NewTagService(gdb)
	articles := NewArticleService(gdb)
	author := createTestUser(t, gdb, "writer")

	dto, err := svc.Create(TagInput{Name: "Sticky"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if _, err := articles.Create(author.ID, ArticleInput{
		Title: "Tagged", Content: "a", TagIDs: []uint{dto.ID},
	}); err != nil {
		t.Fatalf("create article: %v", err)
	}

	if err := svc.Delete(dto.ID); !errors.Is(err, ErrTagInUse) {
		t.Fatalf("expected ErrTagInUse, got %v", err)
	}
}

func TestTagService_GetByIDsFailsOnMissing(t *testing.T) {
	gdb := setupTagServiceTestDB(t)
	svc := NewTagService(gdb)

	dto, err := svc.Create(TagInput{Name: "Present"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	if _, err := svc.GetByIDs([]uint{dto.ID, 9999}); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}

	tags, err := svc.GetByIDs([]uint{dto.ID})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(tags) != 1 || tags[0].ID != dto.ID {
		t.Fatalf("unexpected result %+v", tags)
	}
}

func TestTagService_SearchMatchesName(t *testing.T) {
	gdb := setupTagServiceTestDB(t)
	svc := NewTagService(gdb)

	if _, err := svc.Create(TagInput{Name: "Golang"}); err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if _, err := svc.Create(TagInput{Name: "Rustacean"}); err != nil {
		t.Fatalf("create tag: %v", err)
	}

	tags, err := svc.Search("lang", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "Golang" {
		t.Fatalf("unexpected search result %+v", tags)
	}

	empty, err := svc.Search("   ", 10)
	if err != nil {
		t.Fatalf("blank search: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("blank keyword should return empty list")
	}
}
