package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/guoguo/blog-backend/internal/db"
)

// CollectionService 管理用户的文章收藏列表。
type CollectionService struct {
	db *gorm.DB
}

// NewCollectionService creates a CollectionService instance.
func NewCollectionService(gdb *gorm.DB) *CollectionService {
	return &CollectionService{db: gdb}
}

// CollectionItem 单条收藏及其文章投影。
type CollectionItem struct {
	ID          uint            `json:"id"`
	CollectedAt time.Time       `json:"collectedAt"`
	Article     ArticleListItem `json:"article"`
}

// CollectionPage aggregates paginated collection data.
type CollectionPage struct {
	Page  int              `json:"page"`
	Size  int              `json:"size"`
	Total int64            `json:"total"`
	List  []CollectionItem `json:"list"`
}

// ListMyCollections 按收藏时间降序分页返回收藏。
func (s *CollectionService) ListMyCollections(userID uint, page, size int) (*CollectionPage, error) {
	if size < 1 {
		size = 1
	}
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.Model(&db.ArticleCollection{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var collections []db.ArticleCollection
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Limit(size).
		Offset(offset).
		Find(&collections).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(collections))
	for _, c := range collections {
		ids = append(ids, c.ArticleID)
	}

	articleByID := make(map[uint]db.Article, len(ids))
	if len(ids) > 0 {
		var articles []db.Article
		if err := s.db.Preload("Author").Preload("Category").
			Where("id IN ?", ids).
			Find(&articles).Error; err != nil {
			return nil, err
		}
		for _, article := range articles {
			articleByID[article.ID] = article
		}
	}

	list := make([]CollectionItem, 0, len(collections))
	for _, c := range collections {
		article, ok := articleByID[c.ArticleID]
		if !ok {
			continue
		}
		list = append(list, CollectionItem{
			ID:          c.ID,
			CollectedAt: c.CreatedAt,
			Article:     toListItem(article, nil),
		})
	}

	return &CollectionPage{Page: page, Size: size, Total: total, List: list}, nil
}

// RemoveMyCollection 取消一篇文章的收藏并重算其收藏计数。
func (s *CollectionService) RemoveMyCollection(userID, articleID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ? AND user_id = ?", articleID, userID).
			Delete(&db.ArticleCollection{}).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&db.ArticleCollection{}).
			Where("article_id = ?", articleID).
			Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&db.Article{}).
			Where("id = ?", articleID).
			Update("collect_count", count).Error
	})
}
