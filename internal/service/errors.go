package service

import "errors"

// 文章核心操作对外暴露的错误类别，调用方用 errors.Is 区分。
var (
	ErrArticleNotFound   = errors.New("article not found")
	ErrArticleDeleted    = errors.New("article already deleted")
	ErrForbidden         = errors.New("operation not allowed")
	ErrUserNotFound      = errors.New("user not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrTagNotFound       = errors.New("tag not found")
	ErrInvalidStatus     = errors.New("invalid article status")
	ErrInvalidVisibility = errors.New("invalid article visibility")
	ErrSlugConflict      = errors.New("slug conflict, adjust title or custom slug")
)
