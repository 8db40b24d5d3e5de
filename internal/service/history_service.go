package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/guoguo/blog-backend/internal/db"
)

var ErrHistoryNotFound = errors.New("read history not found")

// HistoryService 管理用户的阅读历史。
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService creates a HistoryService instance.
func NewHistoryService(gdb *gorm.DB) *HistoryService {
	return &HistoryService{db: gdb}
}

// HistoryItem 单条阅读历史及其文章投影。
type HistoryItem struct {
	ID         uint            `json:"id"`
	Progress   float64         `json:"progress"`
	LastReadAt time.Time       `json:"lastReadAt"`
	Article    ArticleListItem `json:"article"`
}

// HistoryPage aggregates paginated history data.
type HistoryPage struct {
	Page  int           `json:"page"`
	Size  int           `json:"size"`
	Total int64         `json:"total"`
	List  []HistoryItem `json:"list"`
}

// ListMyHistory 按最近阅读时间降序分页返回历史记录。
func (s *HistoryService) ListMyHistory(userID uint, page, size int) (*HistoryPage, error) {
	if size < 1 {
		size = 1
	}
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.Model(&db.ArticleReadHistory{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var records []db.ArticleReadHistory
	if err := s.db.Where("user_id = ?", userID).
		Order("last_read_at desc").
		Limit(size).
		Offset(offset).
		Find(&records).Error; err != nil {
		return nil, err
	}

	articleByID, err := s.loadArticles(historyArticleIDs(records))
	if err != nil {
		return nil, err
	}

	list := make([]HistoryItem, 0, len(records))
	for _, record := range records {
		article, ok := articleByID[record.ArticleID]
		if !ok {
			continue
		}
		list = append(list, HistoryItem{
			ID:         record.ID,
			Progress:   record.Progress,
			LastReadAt: record.LastReadAt,
			Article:    toListItem(article, nil),
		})
	}

	return &HistoryPage{Page: page, Size: size, Total: total, List: list}, nil
}

// RemoveMyHistory 删除自己的一条阅读记录。
func (s *HistoryService) RemoveMyHistory(userID, historyID uint) error {
	var record db.ArticleReadHistory
	if err := s.db.Where("id = ? AND user_id = ?", historyID, userID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHistoryNotFound
		}
		return err
	}
	return s.db.Delete(&record).Error
}

// ClearMyHistory 清空自己的全部阅读记录。
func (s *HistoryService) ClearMyHistory(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&db.ArticleReadHistory{}).Error
}

func (s *HistoryService) loadArticles(ids []uint) (map[uint]db.Article, error) {
	result := make(map[uint]db.Article, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var articles []db.Article
	if err := s.db.Preload("Author").Preload("Category").
		Where("id IN ?", ids).
		Find(&articles).Error; err != nil {
		return nil, err
	}
	for _, article := range articles {
		result[article.ID] = article
	}
	return result, nil
}

func historyArticleIDs(records []db.ArticleReadHistory) []uint {
	ids := make([]uint, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ArticleID)
	}
	return ids
}
