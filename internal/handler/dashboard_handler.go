package handler

import "github.com/gin-gonic/gin"

// DashboardOverview 当前用户的创作数据概览。
func (a *API) DashboardOverview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	overview, err := a.dashboard.Overview(userID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, overview)
}
