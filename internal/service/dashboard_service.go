package service

import (
	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/guoguo/blog-backend/internal/db"
)

// DashboardService 聚合作者维度的创作数据概览。
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a DashboardService instance.
func NewDashboardService(gdb *gorm.DB) *DashboardService {
	return &DashboardService{db: gdb}
}

// DashboardOverview 作者创作概览。
type DashboardOverview struct {
	TotalViews      int64 `json:"totalViews"`
	TotalLikes      int64 `json:"totalLikes"`
	PublishedCount  int64 `json:"publishedCount"`
	DraftCount      int64 `json:"draftCount"`
	CollectionCount int64 `json:"collectionCount"`
	HistoryCount    int64 `json:"historyCount"`
}

// Overview 汇总某用户的浏览/点赞总量、文章状态计数与收藏、
// 阅读历史数量。聚合 SQL 由 squirrel 构建后经 gorm 执行。
func (s *DashboardService) Overview(userID uint) (*DashboardOverview, error) {
	overview := &DashboardOverview{}

	sums := sq.Select(
		"COALESCE(SUM(view_count), 0) AS total_views",
		"COALESCE(SUM(like_count), 0) AS total_likes",
	).From("articles").Where(sq.Eq{
		"user_id": userID,
		"status":  string(db.StatusPublished),
	})
	query, args, err := sums.ToSql()
	if err != nil {
		return nil, err
	}
	var totals struct {
		TotalViews int64
		TotalLikes int64
	}
	if err := s.db.Raw(query, args...).Scan(&totals).Error; err != nil {
		return nil, err
	}
	overview.TotalViews = totals.TotalViews
	overview.TotalLikes = totals.TotalLikes

	published, err := s.countArticles(userID, db.StatusPublished)
	if err != nil {
		return nil, err
	}
	overview.PublishedCount = published

	drafts, err := s.countArticles(userID, db.StatusDraft)
	if err != nil {
		return nil, err
	}
	overview.DraftCount = drafts

	collections, err := s.countRows("article_collections", userID)
	if err != nil {
		return nil, err
	}
	overview.CollectionCount = collections

	history, err := s.countRows("article_read_history", userID)
	if err != nil {
		return nil, err
	}
	overview.HistoryCount = history

	return overview, nil
}

func (s *DashboardService) countArticles(userID uint, status db.ArticleStatus) (int64, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("articles").
		Where(sq.Eq{"user_id": userID, "status": string(status)}).
		ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := s.db.Raw(query, args...).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *DashboardService) countRows(table string, userID uint) (int64, error) {
	query, args, err := sq.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := s.db.Raw(query, args...).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
