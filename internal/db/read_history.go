package db

import "time"

// ArticleReadHistory 每个 (article, user) 一行阅读进度，
// 每次上报浏览时 upsert。
type ArticleReadHistory struct {
	ID           uint    `gorm:"primaryKey"`
	ArticleID    uint    `gorm:"uniqueIndex:uk_history_article_user;index;not null"`
	UserID       uint    `gorm:"uniqueIndex:uk_history_article_user;index;not null"`
	Progress     float64 `gorm:"type:decimal(5,2);default:0"`
	LastPosition int     `gorm:"default:0"`
	ReadDuration int     `gorm:"default:0"`
	LastReadAt   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName 指定自定义表名。
func (ArticleReadHistory) TableName() string {
	return "article_read_history"
}
