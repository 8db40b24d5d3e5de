package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guoguo/blog-backend/internal/service"
)

// userIDHeader 由接入网关注入，0 或缺失代表匿名访问者。
const userIDHeader = "X-User-ID"

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "ok", "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"code": status, "message": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parseUintQuery(c *gin.Context, key string) uint {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(parsed)
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func parsePagination(c *gin.Context) (page, size int) {
	page = parseIntQuery(c, "page", 1)
	size = parseIntQuery(c, "size", 10)
	if size > 100 {
		size = 100
	}
	return page, size
}

// currentUserID reads the viewer identity injected by the gateway.
func currentUserID(c *gin.Context) uint {
	raw := strings.TrimSpace(c.GetHeader(userIDHeader))
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(parsed)
}

func requireUser(c *gin.Context) (uint, bool) {
	userID := currentUserID(c)
	if userID == 0 {
		respondError(c, http.StatusUnauthorized, "login required")
		return 0, false
	}
	return userID, true
}

// respondServiceError 将服务层哨兵错误映射为 HTTP 状态码。
func (a *API) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrArticleNotFound),
		errors.Is(err, service.ErrArticleDeleted),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrHistoryNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidVisibility),
		errors.Is(err, service.ErrInvalidYearMonth),
		errors.Is(err, service.ErrSlugConflict):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrTagExists),
		errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, service.ErrTagInUse),
		errors.Is(err, service.ErrAlreadyCheckedIn):
		respondError(c, http.StatusConflict, err.Error())
	default:
		a.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
