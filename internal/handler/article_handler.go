package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guoguo/blog-backend/internal/service"
)

// ListArticles 文章列表，支持状态、分类、标签、作者与关键字过滤。
func (a *API) ListArticles(c *gin.Context) {
	page, size := parsePagination(c)
	params := service.ArticleListParams{
		ViewerID:   currentUserID(c),
		Page:       page,
		Size:       size,
		SortBy:     c.Query("sortBy"),
		Order:      c.Query("order"),
		Status:     c.Query("status"),
		CategoryID: parseUintQuery(c, "categoryId"),
		TagID:      parseUintQuery(c, "tagId"),
		AuthorID:   parseUintQuery(c, "authorId"),
		Keyword:    c.Query("keyword"),
	}

	result, err := a.articles.List(params)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, result)
}

// GetArticle 文章详情。
func (a *API) GetArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := a.articles.Detail(currentUserID(c), id)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, detail)
}

// CreateArticle 创建文章。
func (a *API) CreateArticle(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var input service.ArticleInput
	if !bindJSON(c, &input, "title and content are required") {
		return
	}

	detail, err := a.articles.Create(userID, input)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, detail)
}

// UpdateArticle 更新文章，仅作者可操作。
func (a *API) UpdateArticle(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var input service.ArticleInput
	if !bindJSON(c, &input, "title and content are required") {
		return
	}

	detail, err := a.articles.Update(userID, id, input)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, detail)
}

// DeleteArticle 软删除文章。
func (a *API) DeleteArticle(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.articles.Delete(userID, id); err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, nil)
}

// ListDrafts 当前用户的草稿箱。
func (a *API) ListDrafts(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	page, size := parsePagination(c)

	result, err := a.articles.Drafts(userID, page, size)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, result)
}

// ListTrending 按浏览量排序的热门文章。
func (a *API) ListTrending(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 10)

	result, err := a.articles.Trending(limit)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, result)
}

// SearchArticles 关键字搜索公开已发布文章。
func (a *API) SearchArticles(c *gin.Context) {
	page, size := parsePagination(c)

	result, err := a.articles.Search(currentUserID(c), c.Query("keyword"), page, size)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, result)
}

// ListRelatedArticles 按共享标签返回相关文章。
func (a *API) ListRelatedArticles(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	limit := parseIntQuery(c, "limit", 5)

	result, err := a.articles.Related(currentUserID(c), id, limit)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, result)
}

// ToggleArticleLike 点赞或取消点赞。
func (a *API) ToggleArticleLike(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := a.articles.ToggleLike(userID, id)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, detail)
}

// ToggleArticleCollect 收藏或取消收藏。
func (a *API) ToggleArticleCollect(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := a.articles.ToggleCollect(userID, id)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, detail)
}

// RecordArticleView 上报一次浏览，可附带阅读进度。
func (a *API) RecordArticleView(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var input service.ViewInput
	// 浏览上报允许空请求体。
	_ = c.ShouldBindJSON(&input)

	if err := a.articles.RecordView(currentUserID(c), id, &input); err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, nil)
}
