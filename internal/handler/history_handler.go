package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListMyHistory 当前用户的阅读历史。
func (a *API) ListMyHistory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	page, size := parsePagination(c)

	result, err := a.history.ListMyHistory(userID, page, size)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, result)
}

// RemoveMyHistory 删除一条阅读记录。
func (a *API) RemoveMyHistory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.history.RemoveMyHistory(userID, id); err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, nil)
}

// ClearMyHistory 清空阅读历史。
func (a *API) ClearMyHistory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := a.history.ClearMyHistory(userID); err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, nil)
}
