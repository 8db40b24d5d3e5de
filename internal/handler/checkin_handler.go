package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/guoguo/blog-backend/internal/service"
)

// Checkin 每日签到。
func (a *API) Checkin(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var input service.CheckinInput
	// 签到附加信息可选。
	_ = c.ShouldBindJSON(&input)

	result, err := a.checkins.Checkin(userID, input, c.ClientIP())
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, result)
}

// CheckinStatus 签到累计视图。
func (a *API) CheckinStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	status, err := a.checkins.Status(userID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, status)
}

// CheckinCalendar 指定月份的签到日历。
func (a *API) CheckinCalendar(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	calendar, err := a.checkins.Calendar(userID, c.Query("yearMonth"))
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, calendar)
}
