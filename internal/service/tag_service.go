package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/guoguo/blog-backend/internal/db"
)

var (
	ErrTagExists = errors.New("tag already exists")
	ErrTagInUse  = errors.New("tag is associated with articles")
)

// TagService wraps tag related operations.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// TagInput represents fields accepted when creating or updating a tag.
type TagInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Recommended bool   `json:"recommended"`
}

// List 返回全部标签及其关联文章数。
func (s *TagService) List() ([]TagDTO, error) {
	var tags []db.Tag
	if err := s.db.
		Model(&db.Tag{}).
		Select("tags.*, COUNT(article_tags.article_id) AS article_count").
		Joins("LEFT JOIN article_tags ON article_tags.tag_id = tags.id").
		Group("tags.id").
		Order("tags.name asc").
		Order("tags.id asc").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return toTagDTOs(tags), nil
}

// Popular 按文章使用次数降序返回标签。
func (s *TagService) Popular(limit int) ([]TagDTO, error) {
	if limit < 1 {
		limit = 1
	}
	var tags []db.Tag
	if err := s.db.
		Model(&db.Tag{}).
		Select("tags.*, COUNT(article_tags.article_id) AS article_count").
		Joins("LEFT JOIN article_tags ON article_tags.tag_id = tags.id").
		Group("tags.id").
		Order("article_count desc").
		Order("tags.id asc").
		Limit(limit).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return toTagDTOs(tags), nil
}

// Search 按名称模糊匹配标签。
func (s *TagService) Search(keyword string, limit int) ([]TagDTO, error) {
	trimmed := strings.TrimSpace(keyword)
	if trimmed == "" {
		return []TagDTO{}, nil
	}
	if limit < 1 {
		limit = 1
	}

	var tags []db.Tag
	if err := s.db.
		Where("name LIKE ?", "%"+trimmed+"%").
		Order("name asc").
		Limit(limit).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return toTagDTOs(tags), nil
}

// GetByIDs 按 id 集合加载标签，任一 id 缺失即失败。
func (s *TagService) GetByIDs(ids []uint) ([]TagDTO, error) {
	if len(ids) == 0 {
		return []TagDTO{}, nil
	}

	var tags []db.Tag
	if err := s.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}

	found := make(map[uint]struct{}, len(tags))
	for _, tag := range tags {
		found[tag.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrTagNotFound, id)
		}
	}
	return toTagDTOs(tags), nil
}

// Create inserts a new tag with unique name and slug.
func (s *TagService) Create(input TagInput) (*TagDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("tag name is required")
	}

	var existing db.Tag
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrTagExists
	}

	slug, err := s.resolveSlug(0, input.Slug, name)
	if err != nil {
		return nil, err
	}

	tag := db.Tag{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
		Recommended: input.Recommended,
	}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}

	dto := toTagDTO(tag)
	return &dto, nil
}

// Update changes tag fields while keeping uniqueness.
func (s *TagService) Update(id uint, input TagInput) (*TagDTO, error) {
	var tag db.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("tag name is required")
	}

	var existing db.Tag
	if err := s.db.Where("name = ? AND id <> ?", name, id).First(&existing).Error; err == nil {
		return nil, ErrTagExists
	}

	slug, err := s.resolveSlug(id, input.Slug, name)
	if err != nil {
		return nil, err
	}

	tag.Name = name
	tag.Slug = slug
	tag.Description = input.Description
	tag.Icon = input.Icon
	tag.Color = input.Color
	tag.Recommended = input.Recommended
	if err := s.db.Save(&tag).Error; err != nil {
		return nil, err
	}

	count, err := s.articleUsageCount(id)
	if err != nil {
		return nil, err
	}
	tag.ArticleCount = count

	dto := toTagDTO(tag)
	return &dto, nil
}

// Delete removes a tag if it is not associated with articles.
func (s *TagService) Delete(id uint) error {
	var tag db.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	count, err := s.articleUsageCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrTagInUse
	}

	return s.db.Delete(&tag).Error
}

func (s *TagService) resolveSlug(id uint, slug, name string) (string, error) {
	candidate := Slugify(name)
	if strings.TrimSpace(slug) != "" {
		candidate = Slugify(slug)
	}

	var existing db.Tag
	query := s.db.Where("slug = ?", candidate)
	if id != 0 {
		query = query.Where("id <> ?", id)
	}
	if err := query.First(&existing).Error; err == nil {
		return "", ErrTagExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return candidate, nil
}

func (s *TagService) articleUsageCount(id uint) (int64, error) {
	var count int64
	if err := s.db.Model(&db.ArticleTag{}).
		Where("tag_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toTagDTOs(tags []db.Tag) []TagDTO {
	dtos := make([]TagDTO, 0, len(tags))
	for _, tag := range tags {
		dtos = append(dtos, toTagDTO(tag))
	}
	return dtos
}
