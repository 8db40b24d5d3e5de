package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guoguo/blog-backend/internal/handler"
)

const requestIDHeader = "X-Request-ID"

// SetupRouter 配置 Gin 引擎和路由。
func SetupRouter(api *handler.API, log zerolog.Logger) *gin.Engine {
	r := gin.New()

	r.Use(recoveryMiddleware(log))
	r.Use(requestIDMiddleware())
	r.Use(loggingMiddleware(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().Format(time.RFC3339)})
	})

	apiGroup := r.Group("/api")
	{
		articles := apiGroup.Group("/articles")
		{
			articles.GET("", api.ListArticles)
			articles.GET("/trending", api.ListTrending)
			articles.GET("/search", api.SearchArticles)
			articles.GET("/drafts", api.ListDrafts)
			articles.GET("/:id", api.GetArticle)
			articles.GET("/:id/related", api.ListRelatedArticles)
			articles.POST("", api.CreateArticle)
			articles.PUT("/:id", api.UpdateArticle)
			articles.DELETE("/:id", api.DeleteArticle)
			articles.POST("/:id/like", api.ToggleArticleLike)
			articles.POST("/:id/collect", api.ToggleArticleCollect)
			articles.POST("/:id/view", api.RecordArticleView)
		}

		categories := apiGroup.Group("/categories")
		{
			categories.GET("", api.ListCategories)
			categories.GET("/:id", api.GetCategory)
			categories.POST("", api.CreateCategory)
			categories.PUT("/:id", api.UpdateCategory)
			categories.DELETE("/:id", api.DeleteCategory)
		}

		tags := apiGroup.Group("/tags")
		{
			tags.GET("", api.ListTags)
			tags.GET("/popular", api.ListPopularTags)
			tags.GET("/search", api.SearchTags)
			tags.POST("", api.CreateTag)
			tags.PUT("/:id", api.UpdateTag)
			tags.DELETE("/:id", api.DeleteTag)
		}

		apiGroup.GET("/users/:id", api.GetUser)

		history := apiGroup.Group("/history")
		{
			history.GET("", api.ListMyHistory)
			history.DELETE("/:id", api.RemoveMyHistory)
			history.DELETE("", api.ClearMyHistory)
		}

		collections := apiGroup.Group("/collections")
		{
			collections.GET("", api.ListMyCollections)
			collections.DELETE("/:articleId", api.RemoveMyCollection)
		}

		checkin := apiGroup.Group("/checkin")
		{
			checkin.POST("", api.Checkin)
			checkin.GET("/status", api.CheckinStatus)
			checkin.GET("/calendar", api.CheckinCalendar)
		}

		apiGroup.GET("/dashboard/overview", api.DashboardOverview)
	}

	return r
}

func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"code":    http.StatusInternalServerError,
					"message": "internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id")).
			Msg("request completed")
	}
}
