package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guoguo/blog-backend/internal/service"
)

// ListTags 全部标签及其使用次数。
func (a *API) ListTags(c *gin.Context) {
	tags, err := a.tags.List()
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, tags)
}

// ListPopularTags 按使用次数降序的标签。
func (a *API) ListPopularTags(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 10)

	tags, err := a.tags.Popular(limit)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, tags)
}

// SearchTags 按名称模糊匹配标签。
func (a *API) SearchTags(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 10)

	tags, err := a.tags.Search(c.Query("keyword"), limit)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, tags)
}

// CreateTag 新建标签。
func (a *API) CreateTag(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	var input service.TagInput
	if !bindJSON(c, &input, "tag name is required") {
		return
	}

	tag, err := a.tags.Create(input)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, tag)
}

// UpdateTag 更新标签。
func (a *API) UpdateTag(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var input service.TagInput
	if !bindJSON(c, &input, "tag name is required") {
		return
	}

	tag, err := a.tags.Update(id, input)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, tag)
}

// DeleteTag 删除未被引用的标签。
func (a *API) DeleteTag(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.tags.Delete(id); err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, nil)
}
