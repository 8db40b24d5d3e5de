package db

import "time"

// ArticleStatus 文章生命周期状态。
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusPublished ArticleStatus = "PUBLISHED"
	StatusPrivate   ArticleStatus = "PRIVATE"
	StatusDeleted   ArticleStatus = "DELETED"
)

// ArticleVisibility 已发布文章的受众范围。
type ArticleVisibility string

const (
	VisibilityPublic   ArticleVisibility = "PUBLIC"
	VisibilityPrivate  ArticleVisibility = "PRIVATE"
	VisibilityPassword ArticleVisibility = "PASSWORD"
	VisibilityPaid     ArticleVisibility = "PAID"
)

// Article 定义了文章模型。
// 软删除通过 status=DELETED + deleted_at 实现，不使用 gorm 自带的
// DeletedAt，以便被删除的行仍可参与 slug 唯一性判定。
type Article struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;not null"`
	Author       User   `gorm:"foreignKey:UserID"`
	Title        string `gorm:"size:200;not null"`
	Slug         string `gorm:"size:200;uniqueIndex;not null"`
	CoverImage   string `gorm:"size:500"`
	Summary      string
	Content      string            `gorm:"not null"`
	HTMLContent  string            `gorm:"column:html_content"`
	Status       ArticleStatus     `gorm:"size:20;index;not null;default:DRAFT"`
	Visibility   ArticleVisibility `gorm:"size:20;not null;default:PUBLIC"`
	Password     string            `gorm:"size:100"`
	Price        float64           `gorm:"type:decimal(10,2);default:0"`
	CategoryID   *uint             `gorm:"index"`
	Category     *Category
	ViewCount    int64 `gorm:"default:0"`
	LikeCount    int64 `gorm:"default:0"`
	CollectCount int64 `gorm:"default:0"`
	CommentCount int64 `gorm:"default:0"`
	ShareCount   int64 `gorm:"default:0"`
	PublishedAt  *time.Time
	ScheduledAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// TableName 指定自定义表名。
func (Article) TableName() string {
	return "articles"
}

// ArticleTag 文章与标签的关联，整组随文章更新原子替换。
type ArticleTag struct {
	ID        uint `gorm:"primaryKey"`
	ArticleID uint `gorm:"uniqueIndex:uk_article_tag;index;not null"`
	TagID     uint `gorm:"uniqueIndex:uk_article_tag;not null"`
	CreatedAt time.Time
}

// TableName 指定自定义表名。
func (ArticleTag) TableName() string {
	return "article_tags"
}
