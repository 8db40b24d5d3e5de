package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/guoguo/blog-backend/internal/db"
	"github.com/guoguo/blog-backend/internal/markdown"
)

// summaryLength 未提供摘要时从正文提取的最大字符数。
const summaryLength = 120

// slugProbeLimit slug 冲突探测的尝试上限。
const slugProbeLimit = 1000

// ArticleService 承载文章生命周期、可见性与列表查询的全部操作。
type ArticleService struct {
	db *gorm.DB
}

// NewArticleService creates an ArticleService instance.
func NewArticleService(gdb *gorm.DB) *ArticleService {
	return &ArticleService{db: gdb}
}

// ArticleListParams describes filters for listing articles.
// 零值表示未设置；ViewerID 为 0 表示匿名访问者。
type ArticleListParams struct {
	ViewerID   uint
	Page       int
	Size       int
	SortBy     string
	Order      string
	Status     string
	CategoryID uint
	TagID      uint
	AuthorID   uint
	Keyword    string
}

// Create 创建文章（默认草稿，可直接发布），返回完整详情。
func (s *ArticleService) Create(authorID uint, input ArticleInput) (*ArticleDetail, error) {
	if err := s.ensureUserExists(authorID); err != nil {
		return nil, err
	}
	if err := s.ensureCategoryExists(input.CategoryID); err != nil {
		return nil, err
	}

	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}
	visibility, err := resolveVisibility(input.Visibility)
	if err != nil {
		return nil, err
	}
	slug, err := s.resolveUniqueSlug(0, input.Slug, input.Title)
	if err != nil {
		return nil, err
	}

	summary := input.Summary
	if strings.TrimSpace(summary) == "" {
		summary = markdown.ExtractSummary(input.Content, summaryLength)
	}

	article := db.Article{
		UserID:      authorID,
		Title:       input.Title,
		Slug:        slug,
		CoverImage:  input.CoverImage,
		Summary:     summary,
		Content:     input.Content,
		HTMLContent: markdown.ToHTML(input.Content),
		Status:      status,
		Visibility:  visibility,
		Password:    input.Password,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		ScheduledAt: input.ScheduledAt,
	}
	if status == db.StatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&article).Error; err != nil {
			return err
		}
		return s.replaceTags(tx, article.ID, input.TagIDs)
	}); err != nil {
		return nil, err
	}

	return s.Detail(authorID, article.ID)
}

// Update 全量覆盖文章可变字段，仅作者可操作。
// 状态首次进入 PUBLISHED 时记录 publishedAt，此后不再改动。
func (s *ArticleService) Update(authorID, articleID uint, input ArticleInput) (*ArticleDetail, error) {
	article, err := s.loadArticle(articleID)
	if err != nil {
		return nil, err
	}
	if article.UserID != authorID {
		return nil, ErrForbidden
	}
	if article.Status == db.StatusDeleted {
		return nil, ErrArticleDeleted
	}

	if err := s.ensureCategoryExists(input.CategoryID); err != nil {
		return nil, err
	}
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}
	visibility, err := resolveVisibility(input.Visibility)
	if err != nil {
		return nil, err
	}
	slug, err := s.resolveUniqueSlug(articleID, input.Slug, input.Title)
	if err != nil {
		return nil, err
	}

	summary := input.Summary
	if strings.TrimSpace(summary) == "" {
		summary = markdown.ExtractSummary(input.Content, summaryLength)
	}

	article.Title = input.Title
	article.Slug = slug
	article.CoverImage = input.CoverImage
	article.Summary = summary
	article.Content = input.Content
	article.HTMLContent = markdown.ToHTML(input.Content)
	article.Visibility = visibility
	article.Password = input.Password
	article.Price = input.Price
	article.CategoryID = input.CategoryID
	article.ScheduledAt = input.ScheduledAt

	oldStatus := article.Status
	article.Status = status
	if oldStatus != db.StatusPublished && status == db.StatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}
		return s.replaceTags(tx, article.ID, input.TagIDs)
	}); err != nil {
		return nil, err
	}

	return s.Detail(authorID, articleID)
}

// Delete 软删除：status 置为 DELETED 并记录 deletedAt，不做物理删除。
func (s *ArticleService) Delete(authorID, articleID uint) error {
	article, err := s.loadArticle(articleID)
	if err != nil {
		return err
	}
	if article.UserID != authorID {
		return ErrForbidden
	}

	now := time.Now()
	return s.db.Model(&db.Article{}).Where("id = ?", article.ID).Updates(map[string]interface{}{
		"status":     db.StatusDeleted,
		"deleted_at": now,
	}).Error
}

// Detail 返回文章详情；已删除的文章一律拒绝，未通过可见性判定的
// 返回 ErrForbidden。viewerID 非 0 时附带 liked/collected 状态。
func (s *ArticleService) Detail(viewerID, articleID uint) (*ArticleDetail, error) {
	var article db.Article
	if err := s.db.Preload("Author").Preload("Category").First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	if article.Status == db.StatusDeleted {
		return nil, ErrArticleDeleted
	}
	if !CanView(viewerID, &article) {
		return nil, ErrForbidden
	}

	tagsMap, err := s.loadTagsMap([]uint{article.ID})
	if err != nil {
		return nil, err
	}

	detail := toDetail(article, tagsMap[article.ID])

	if viewerID != 0 {
		var liked, collected int64
		if err := s.db.Model(&db.ArticleLike{}).
			Where("article_id = ? AND user_id = ?", articleID, viewerID).
			Count(&liked).Error; err != nil {
			return nil, err
		}
		if err := s.db.Model(&db.ArticleCollection{}).
			Where("article_id = ? AND user_id = ?", articleID, viewerID).
			Count(&collected).Error; err != nil {
			return nil, err
		}
		detail.Liked = liked > 0
		detail.Collected = collected > 0
	}

	return detail, nil
}

// List provides paginated articles based on filters.
// 除非查询目标作者就是访问者本人，结果集一律锁定为公开已发布。
func (s *ArticleService) List(params ArticleListParams) (*ArticlePage, error) {
	statusFilter, err := resolveStatusOptional(params.Status)
	if err != nil {
		return nil, err
	}

	size := params.Size
	if size < 1 {
		size = 1
	}
	offset := (params.Page - 1) * size
	if offset < 0 {
		offset = 0
	}

	countQuery := s.applyListFilters(s.db.Model(&db.Article{}), params, statusFilter)
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var articles []db.Article
	dataQuery := s.applyListFilters(
		s.db.Model(&db.Article{}).Preload("Author").Preload("Category"),
		params, statusFilter,
	)
	if err := dataQuery.
		Order(buildSort(params.SortBy, params.Order)).
		Limit(size).
		Offset(offset).
		Find(&articles).Error; err != nil {
		return nil, err
	}

	list, err := s.toListItems(articles)
	if err != nil {
		return nil, err
	}

	return &ArticlePage{Page: params.Page, Size: params.Size, Total: total, List: list}, nil
}

// Drafts 返回作者本人的草稿，按最近更新排序。
func (s *ArticleService) Drafts(authorID uint, page, size int) (*ArticlePage, error) {
	if size < 1 {
		size = 1
	}
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.Model(&db.Article{}).
		Where("user_id = ? AND status = ?", authorID, db.StatusDraft).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var articles []db.Article
	if err := s.db.Model(&db.Article{}).
		Preload("Author").Preload("Category").
		Where("user_id = ? AND status = ?", authorID, db.StatusDraft).
		Order("updated_at desc").
		Limit(size).
		Offset(offset).
		Find(&articles).Error; err != nil {
		return nil, err
	}

	list, err := s.toListItems(articles)
	if err != nil {
		return nil, err
	}

	return &ArticlePage{Page: page, Size: size, Total: total, List: list}, nil
}

// Trending 公开已发布文章按浏览量降序。
func (s *ArticleService) Trending(limit int) ([]ArticleListItem, error) {
	if limit < 1 {
		limit = 1
	}
	page, err := s.List(ArticleListParams{
		Page:   1,
		Size:   limit,
		SortBy: "viewCount",
		Order:  "desc",
		Status: string(db.StatusPublished),
	})
	if err != nil {
		return nil, err
	}
	return page.List, nil
}

// Search 在公开已发布文章中按关键字匹配标题或摘要，
// 按发布时间降序返回。
func (s *ArticleService) Search(viewerID uint, keyword string, page, size int) (*ArticlePage, error) {
	return s.List(ArticleListParams{
		ViewerID: viewerID,
		Page:     page,
		Size:     size,
		SortBy:   "publishedAt",
		Order:    "desc",
		Status:   string(db.StatusPublished),
		Keyword:  keyword,
	})
}

// Related 返回与指定文章共享至少一个标签的公开已发布文章，
// 不含其自身；源文章没有标签时返回空列表。
func (s *ArticleService) Related(viewerID, articleID uint, limit int) ([]ArticleListItem, error) {
	var tagIDs []uint
	if err := s.db.Model(&db.ArticleTag{}).
		Where("article_id = ?", articleID).
		Pluck("tag_id", &tagIDs).Error; err != nil {
		return nil, err
	}
	if len(tagIDs) == 0 {
		return []ArticleListItem{}, nil
	}

	if limit < 1 {
		limit = 1
	}

	subQuery := s.db.Model(&db.ArticleTag{}).
		Select("article_id").
		Where("tag_id IN ?", tagIDs)

	var articles []db.Article
	if err := s.db.Model(&db.Article{}).
		Preload("Author").Preload("Category").
		Where("articles.id IN (?)", subQuery).
		Where("articles.id <> ?", articleID).
		Where("articles.status = ? AND articles.visibility = ?", db.StatusPublished, db.VisibilityPublic).
		Order("articles.published_at desc").
		Limit(limit).
		Find(&articles).Error; err != nil {
		return nil, err
	}

	return s.toListItems(articles)
}

// ToggleLike 点赞或取消点赞，仅对公开已发布文章开放。
// 计数以关系表 count(*) 重算，而非增减，保证并发下最终一致。
func (s *ArticleService) ToggleLike(userID, articleID uint) (*ArticleDetail, error) {
	article, err := s.loadArticle(articleID)
	if err != nil {
		return nil, err
	}
	if article.Status != db.StatusPublished || article.Visibility != db.VisibilityPublic {
		return nil, ErrForbidden
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var like db.ArticleLike
		err := tx.Where("article_id = ? AND user_id = ?", articleID, userID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := s.ensureUserExistsTx(tx, userID); err != nil {
				return err
			}
			if err := tx.Create(&db.ArticleLike{ArticleID: articleID, UserID: userID}).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var count int64
		if err := tx.Model(&db.ArticleLike{}).Where("article_id = ?", articleID).Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&db.Article{}).Where("id = ?", articleID).Update("like_count", count).Error
	}); err != nil {
		return nil, err
	}

	return s.Detail(userID, articleID)
}

// ToggleCollect 收藏或取消收藏，规则与点赞一致。
func (s *ArticleService) ToggleCollect(userID, articleID uint) (*ArticleDetail, error) {
	article, err := s.loadArticle(articleID)
	if err != nil {
		return nil, err
	}
	if article.Status != db.StatusPublished || article.Visibility != db.VisibilityPublic {
		return nil, ErrForbidden
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var collection db.ArticleCollection
		err := tx.Where("article_id = ? AND user_id = ?", articleID, userID).First(&collection).Error
		switch {
		case err == nil:
			if err := tx.Delete(&collection).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := s.ensureUserExistsTx(tx, userID); err != nil {
				return err
			}
			if err := tx.Create(&db.ArticleCollection{ArticleID: articleID, UserID: userID}).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var count int64
		if err := tx.Model(&db.ArticleCollection{}).Where("article_id = ?", articleID).Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&db.Article{}).Where("id = ?", articleID).Update("collect_count", count).Error
	}); err != nil {
		return nil, err
	}

	return s.Detail(userID, articleID)
}

// RecordView 浏览计数加一并更新登录用户的阅读进度。
// 对非公开发布的文章静默跳过（已删除的除外），重复浏览不去重。
func (s *ArticleService) RecordView(viewerID, articleID uint, input *ViewInput) error {
	article, err := s.loadArticle(articleID)
	if err != nil {
		return err
	}
	if article.Status == db.StatusDeleted {
		return ErrArticleDeleted
	}
	if article.Status != db.StatusPublished || article.Visibility != db.VisibilityPublic {
		return nil
	}

	if err := s.db.Model(&db.Article{}).
		Where("id = ?", articleID).
		Update("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		return err
	}

	if viewerID == 0 {
		return nil
	}

	var history db.ArticleReadHistory
	err = s.db.Where("article_id = ? AND user_id = ?", articleID, viewerID).First(&history).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.ensureUserExists(viewerID); err != nil {
			return err
		}
		history = db.ArticleReadHistory{ArticleID: articleID, UserID: viewerID}
	} else if err != nil {
		return err
	}

	if input != nil {
		if input.Progress != nil {
			history.Progress = *input.Progress
		}
		if input.LastPosition != nil {
			history.LastPosition = *input.LastPosition
		}
		if input.ReadDuration != nil {
			history.ReadDuration = *input.ReadDuration
		}
	}
	history.LastReadAt = time.Now()

	return s.db.Save(&history).Error
}

func (s *ArticleService) loadArticle(articleID uint) (*db.Article, error) {
	var article db.Article
	if err := s.db.First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (s *ArticleService) ensureUserExists(userID uint) error {
	return s.ensureUserExistsTx(s.db, userID)
}

func (s *ArticleService) ensureUserExistsTx(tx *gorm.DB, userID uint) error {
	var count int64
	if err := tx.Model(&db.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *ArticleService) ensureCategoryExists(categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	var count int64
	if err := s.db.Model(&db.Category{}).Where("id = ?", *categoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// resolveUniqueSlug 以候选 slug 为基础探测唯一值：被其它文章占用时
// 依次追加 -1、-2…，超过探测上限返回 ErrSlugConflict。更新场景下
// 文章自己占用的 slug 不视为冲突。
func (s *ArticleService) resolveUniqueSlug(articleID uint, slug, title string) (string, error) {
	base := Slugify(title)
	if strings.TrimSpace(slug) != "" {
		base = Slugify(slug)
	}

	candidate := base
	for attempt := 0; attempt < slugProbeLimit; attempt++ {
		var existing db.Article
		err := s.db.Select("id").Where("slug = ?", candidate).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		if articleID != 0 && existing.ID == articleID {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt+1)
	}
	return "", ErrSlugConflict
}

// replaceTags 原子替换文章的标签集合：先删旧关联再插入新集合。
func (s *ArticleService) replaceTags(tx *gorm.DB, articleID uint, tagIDs []uint) error {
	if err := tx.Where("article_id = ?", articleID).Delete(&db.ArticleTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	var tags []db.Tag
	if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return err
	}
	found := make(map[uint]struct{}, len(tags))
	for _, tag := range tags {
		found[tag.ID] = struct{}{}
	}
	links := make([]db.ArticleTag, 0, len(tagIDs))
	seen := make(map[uint]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		if _, ok := found[id]; !ok {
			return fmt.Errorf("%w: %d", ErrTagNotFound, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		links = append(links, db.ArticleTag{ArticleID: articleID, TagID: id})
	}

	return tx.Create(&links).Error
}

// loadTagsMap 针对一批文章一次性加载标签，避免 N+1 查询。
func (s *ArticleService) loadTagsMap(articleIDs []uint) (map[uint][]TagDTO, error) {
	result := make(map[uint][]TagDTO)
	if len(articleIDs) == 0 {
		return result, nil
	}

	var links []db.ArticleTag
	if err := s.db.Where("article_id IN ?", articleIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return result, nil
	}

	tagIDs := make([]uint, 0, len(links))
	for _, link := range links {
		tagIDs = append(tagIDs, link.TagID)
	}
	var tags []db.Tag
	if err := s.db.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return nil, err
	}
	tagByID := make(map[uint]db.Tag, len(tags))
	for _, tag := range tags {
		tagByID[tag.ID] = tag
	}

	for _, link := range links {
		tag, ok := tagByID[link.TagID]
		if !ok {
			continue
		}
		result[link.ArticleID] = append(result[link.ArticleID], toTagDTO(tag))
	}
	return result, nil
}

func (s *ArticleService) toListItems(articles []db.Article) ([]ArticleListItem, error) {
	ids := make([]uint, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	tagsMap, err := s.loadTagsMap(ids)
	if err != nil {
		return nil, err
	}

	list := make([]ArticleListItem, 0, len(articles))
	for _, a := range articles {
		list = append(list, toListItem(a, tagsMap[a.ID]))
	}
	return list, nil
}

// applyListFilters 组合列表查询的全部谓词。statusFilter 为已校验的
// 显式状态过滤；只有访问者查询自己名下的文章时才放开公开锁定。
func (s *ArticleService) applyListFilters(query *gorm.DB, params ArticleListParams, statusFilter *db.ArticleStatus) *gorm.DB {
	query = query.Where("articles.status <> ?", db.StatusDeleted)

	if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("(articles.title LIKE ? OR articles.summary LIKE ?)", like, like)
	}
	if params.CategoryID != 0 {
		query = query.Where("articles.category_id = ?", params.CategoryID)
	}
	if params.AuthorID != 0 {
		query = query.Where("articles.user_id = ?", params.AuthorID)
	}
	if params.TagID != 0 {
		subQuery := s.db.Model(&db.ArticleTag{}).
			Select("article_id").
			Where("tag_id = ?", params.TagID)
		query = query.Where("articles.id IN (?)", subQuery)
	}
	if statusFilter != nil {
		query = query.Where("articles.status = ?", *statusFilter)
	}

	selfQuery := params.ViewerID != 0 && params.AuthorID != 0 && params.ViewerID == params.AuthorID
	if !selfQuery {
		query = query.
			Where("articles.status = ?", db.StatusPublished).
			Where("articles.visibility = ?", db.VisibilityPublic)
	}

	return query
}

// buildSort 将排序字段限定在允许列表内，未知字段回退 created_at；
// 方向仅在收到 asc（忽略大小写）时才为升序。
func buildSort(sortBy, order string) string {
	column := "articles.created_at"
	switch strings.TrimSpace(sortBy) {
	case "publishedAt", "published_at":
		column = "articles.published_at"
	case "viewCount", "view_count":
		column = "articles.view_count"
	case "likeCount", "like_count":
		column = "articles.like_count"
	case "commentCount", "comment_count":
		column = "articles.comment_count"
	}

	direction := "desc"
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		direction = "asc"
	}

	return fmt.Sprintf("%s %s, articles.id %s", column, direction, direction)
}

// resolveStatus 解析状态字符串，空值默认 DRAFT。
func resolveStatus(status string) (db.ArticleStatus, error) {
	parsed, err := resolveStatusOptional(status)
	if err != nil {
		return "", err
	}
	if parsed == nil {
		return db.StatusDraft, nil
	}
	return *parsed, nil
}

// resolveStatusOptional 空值返回 nil，未知值返回 ErrInvalidStatus。
func resolveStatusOptional(status string) (*db.ArticleStatus, error) {
	trimmed := strings.TrimSpace(status)
	if trimmed == "" {
		return nil, nil
	}
	parsed := db.ArticleStatus(strings.ToUpper(trimmed))
	switch parsed {
	case db.StatusDraft, db.StatusPublished, db.StatusPrivate, db.StatusDeleted:
		return &parsed, nil
	}
	return nil, ErrInvalidStatus
}

// resolveVisibility 解析可见性字符串，空值默认 PUBLIC。
func resolveVisibility(visibility string) (db.ArticleVisibility, error) {
	trimmed := strings.TrimSpace(visibility)
	if trimmed == "" {
		return db.VisibilityPublic, nil
	}
	parsed := db.ArticleVisibility(strings.ToUpper(trimmed))
	switch parsed {
	case db.VisibilityPublic, db.VisibilityPrivate, db.VisibilityPassword, db.VisibilityPaid:
		return parsed, nil
	}
	return "", ErrInvalidVisibility
}
