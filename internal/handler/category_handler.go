package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guoguo/blog-backend/internal/service"
)

// ListCategories 全部分类及其文章数。
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, categories)
}

// GetCategory 单个分类。
func (a *API) GetCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := a.categories.Get(id)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, category)
}

// CreateCategory 新建分类。
func (a *API) CreateCategory(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	var input service.CategoryInput
	if !bindJSON(c, &input, "category name is required") {
		return
	}

	category, err := a.categories.Create(input)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, category)
}

// UpdateCategory 更新分类。
func (a *API) UpdateCategory(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var input service.CategoryInput
	if !bindJSON(c, &input, "category name is required") {
		return
	}

	category, err := a.categories.Update(id, input)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, category)
}

// DeleteCategory 删除未被引用的分类。
func (a *API) DeleteCategory(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.categories.Delete(id); err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, nil)
}
