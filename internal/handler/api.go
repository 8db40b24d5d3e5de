package handler

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/guoguo/blog-backend/internal/service"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	log         zerolog.Logger
	articles    *service.ArticleService
	categories  *service.CategoryService
	tags        *service.TagService
	users       *service.UserService
	history     *service.HistoryService
	collections *service.CollectionService
	checkins    *service.CheckinService
	dashboard   *service.DashboardService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, log zerolog.Logger) *API {
	return &API{
		db:          db,
		log:         log,
		articles:    service.NewArticleService(db),
		categories:  service.NewCategoryService(db),
		tags:        service.NewTagService(db),
		users:       service.NewUserService(db),
		history:     service.NewHistoryService(db),
		collections: service.NewCollectionService(db),
		checkins:    service.NewCheckinService(db),
		dashboard:   service.NewDashboardService(db),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
