package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/guoguo/blog-backend/internal/db"
)

var (
	ErrCategoryExists = errors.New("category already exists")
	ErrCategoryInUse  = errors.New("category is referenced by articles")
)

// CategoryService wraps category related operations.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// CategoryInput represents fields accepted when creating or updating a category.
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sortOrder"`
	ParentID    *uint  `json:"parentId"`
}

// List 返回全部分类及其未删除文章数，按 sort_order 排序。
func (s *CategoryService) List() ([]CategoryDTO, error) {
	var categories []db.Category
	if err := s.db.Order("sort_order asc").Order("name asc").Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}

	counts, err := s.articleCounts()
	if err != nil {
		return nil, err
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dto := toCategoryDTO(&c)
		dto.ArticleCount = counts[c.ID]
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

// Get fetches a single category by id.
func (s *CategoryService) Get(id uint) (*CategoryDTO, error) {
	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	dto := toCategoryDTO(&category)
	count, err := s.articleCount(id)
	if err != nil {
		return nil, err
	}
	dto.ArticleCount = count
	return dto, nil
}

// Create inserts a new category with unique name and slug.
func (s *CategoryService) Create(input CategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	var existing db.Category
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrCategoryExists
	}

	slug, err := s.resolveSlug(0, input.Slug, name)
	if err != nil {
		return nil, err
	}

	category := db.Category{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		Icon:        input.Icon,
		SortOrder:   input.SortOrder,
		ParentID:    input.ParentID,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}

	return toCategoryDTO(&category), nil
}

// Update changes category fields while keeping name and slug unique.
func (s *CategoryService) Update(id uint, input CategoryInput) (*CategoryDTO, error) {
	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	var existing db.Category
	if err := s.db.Where("name = ? AND id <> ?", name, id).First(&existing).Error; err == nil {
		return nil, ErrCategoryExists
	}

	slug, err := s.resolveSlug(id, input.Slug, name)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Slug = slug
	category.Description = input.Description
	category.Icon = input.Icon
	category.SortOrder = input.SortOrder
	category.ParentID = input.ParentID
	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}

	dto := toCategoryDTO(&category)
	count, err := s.articleCount(id)
	if err != nil {
		return nil, err
	}
	dto.ArticleCount = count
	return dto, nil
}

// Delete removes a category if no article references it.
func (s *CategoryService) Delete(id uint) error {
	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.articleCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.db.Delete(&category).Error
}

func (s *CategoryService) resolveSlug(id uint, slug, name string) (string, error) {
	candidate := Slugify(name)
	if strings.TrimSpace(slug) != "" {
		candidate = Slugify(slug)
	}

	var existing db.Category
	query := s.db.Where("slug = ?", candidate)
	if id != 0 {
		query = query.Where("id <> ?", id)
	}
	if err := query.First(&existing).Error; err == nil {
		return "", ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return candidate, nil
}

func (s *CategoryService) articleCount(id uint) (int64, error) {
	var count int64
	if err := s.db.Model(&db.Article{}).
		Where("category_id = ? AND status <> ?", id, db.StatusDeleted).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *CategoryService) articleCounts() (map[uint]int64, error) {
	var rows []struct {
		CategoryID uint
		Count      int64
	}
	if err := s.db.Model(&db.Article{}).
		Select("category_id, COUNT(*) AS count").
		Where("category_id IS NOT NULL AND status <> ?", db.StatusDeleted).
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}
