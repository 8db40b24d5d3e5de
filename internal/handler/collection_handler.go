package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListMyCollections 当前用户的收藏列表。
func (a *API) ListMyCollections(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	page, size := parsePagination(c)

	result, err := a.collections.ListMyCollections(userID, page, size)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, result)
}

// RemoveMyCollection 取消收藏指定文章。
func (a *API) RemoveMyCollection(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	articleID, err := parseUintParam(c, "articleId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.collections.RemoveMyCollection(userID, articleID); err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, nil)
}
