package db

import "time"

// Category 文章分类，多篇文章共享同一分类。
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:50;uniqueIndex;not null"`
	Slug        string `gorm:"size:100;uniqueIndex;not null"`
	Description string `gorm:"size:500"`
	Icon        string `gorm:"size:100"`
	SortOrder   int    `gorm:"default:0"`
	ParentID    *uint  `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 指定自定义表名，避免自动复数化导致的歧义。
func (Category) TableName() string {
	return "categories"
}
