package db

import "time"

// ArticleLike 点赞关系，(article, user) 唯一；存在即已点赞。
type ArticleLike struct {
	ID        uint `gorm:"primaryKey"`
	ArticleID uint `gorm:"uniqueIndex:uk_like_article_user;index;not null"`
	UserID    uint `gorm:"uniqueIndex:uk_like_article_user;index;not null"`
	CreatedAt time.Time
}

// TableName 指定自定义表名。
func (ArticleLike) TableName() string {
	return "article_likes"
}

// ArticleCollection 收藏关系，(article, user) 唯一。
type ArticleCollection struct {
	ID        uint `gorm:"primaryKey"`
	ArticleID uint `gorm:"uniqueIndex:uk_collect_article_user;index;not null"`
	UserID    uint `gorm:"uniqueIndex:uk_collect_article_user;index;not null"`
	CreatedAt time.Time
}

// TableName 指定自定义表名。
func (ArticleCollection) TableName() string {
	return "article_collections"
}
