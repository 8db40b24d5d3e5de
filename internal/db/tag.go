package db

import "time"

// Tag 定义了标签模型
type Tag struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:50;uniqueIndex;not null"`
	Slug        string `gorm:"size:100;uniqueIndex;not null"`
	Description string `gorm:"size:500"`
	Icon        string `gorm:"size:100"`
	Color       string `gorm:"size:20"`
	Recommended bool   `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// ArticleCount 由使用次数统计查询填充，不建列。
	ArticleCount int64 `gorm:"->;-:migration"`
}
