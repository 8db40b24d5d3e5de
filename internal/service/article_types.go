package service

import (
	"time"

	"github.com/jinzhu/copier"

	"github.com/guoguo/blog-backend/internal/db"
)

// ArticleInput represents fields accepted when creating or updating an article.
// Status 与 Visibility 为自由文本，进入核心前必须通过 resolve 校验。
type ArticleInput struct {
	Title       string     `json:"title" binding:"required"`
	Slug        string     `json:"slug"`
	CoverImage  string     `json:"coverImage"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content" binding:"required"`
	Status      string     `json:"status"`
	Visibility  string     `json:"visibility"`
	Password    string     `json:"password"`
	Price       float64    `json:"price"`
	CategoryID  *uint      `json:"categoryId"`
	TagIDs      []uint     `json:"tagIds"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// ViewInput carries optional read-progress fields reported with a view.
type ViewInput struct {
	Progress     *float64 `json:"progress"`
	LastPosition *int     `json:"lastPosition"`
	ReadDuration *int     `json:"readDuration"`
}

// AuthorDTO 文章作者的公开信息。
type AuthorDTO struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl"`
	Bio         string    `json:"bio"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CategoryDTO 分类的对外表示。
type CategoryDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	SortOrder    int       `json:"sortOrder"`
	ParentID     *uint     `json:"parentId"`
	ArticleCount int64     `json:"articleCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TagDTO 标签的对外表示。
type TagDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	Color        string    `json:"color"`
	Recommended  bool      `json:"recommended"`
	ArticleCount int64     `json:"articleCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ArticleListItem 列表场景的文章投影，不携带正文。
type ArticleListItem struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	CoverImage   string       `json:"coverImage"`
	Summary      string       `json:"summary"`
	Status       string       `json:"status"`
	Visibility   string       `json:"visibility"`
	Author       AuthorDTO    `json:"author"`
	Category     *CategoryDTO `json:"category"`
	Tags         []TagDTO     `json:"tags"`
	ViewCount    int64        `json:"viewCount"`
	LikeCount    int64        `json:"likeCount"`
	CommentCount int64        `json:"commentCount"`
	PublishedAt  *time.Time   `json:"publishedAt"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// ArticleDetail 详情场景的完整文章视图。
type ArticleDetail struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	CoverImage   string       `json:"coverImage"`
	Summary      string       `json:"summary"`
	Content      string       `json:"content"`
	HTMLContent  string       `json:"htmlContent"`
	Status       string       `json:"status"`
	Visibility   string       `json:"visibility"`
	Price        float64      `json:"price"`
	Author       AuthorDTO    `json:"author"`
	Category     *CategoryDTO `json:"category"`
	Tags         []TagDTO     `json:"tags"`
	ViewCount    int64        `json:"viewCount"`
	LikeCount    int64        `json:"likeCount"`
	CollectCount int64        `json:"collectCount"`
	CommentCount int64        `json:"commentCount"`
	ShareCount   int64        `json:"shareCount"`
	PublishedAt  *time.Time   `json:"publishedAt"`
	ScheduledAt  *time.Time   `json:"scheduledAt"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Liked        bool         `json:"liked"`
	Collected    bool         `json:"collected"`
}

// ArticlePage aggregates paginated list data.
type ArticlePage struct {
	Page  int               `json:"page"`
	Size  int               `json:"size"`
	Total int64             `json:"total"`
	List  []ArticleListItem `json:"list"`
}

func toAuthorDTO(u db.User) AuthorDTO {
	var dto AuthorDTO
	_ = copier.Copy(&dto, &u)
	dto.Roles = u.RoleList()
	return dto
}

func toCategoryDTO(c *db.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	var dto CategoryDTO
	_ = copier.Copy(&dto, c)
	return &dto
}

func toTagDTO(t db.Tag) TagDTO {
	var dto TagDTO
	_ = copier.Copy(&dto, &t)
	return dto
}

func toListItem(a db.Article, tags []TagDTO) ArticleListItem {
	var item ArticleListItem
	_ = copier.Copy(&item, &a)
	item.Status = string(a.Status)
	item.Visibility = string(a.Visibility)
	item.Author = toAuthorDTO(a.Author)
	item.Category = toCategoryDTO(a.Category)
	if tags == nil {
		tags = []TagDTO{}
	}
	item.Tags = tags
	return item
}

func toDetail(a db.Article, tags []TagDTO) *ArticleDetail {
	var detail ArticleDetail
	_ = copier.Copy(&detail, &a)
	detail.Status = string(a.Status)
	detail.Visibility = string(a.Visibility)
	detail.Author = toAuthorDTO(a.Author)
	detail.Category = toCategoryDTO(a.Category)
	if tags == nil {
		tags = []TagDTO{}
	}
	detail.Tags = tags
	return &detail
}
