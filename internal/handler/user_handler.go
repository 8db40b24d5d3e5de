package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetUser 用户公开信息。
func (a *API) GetUser(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.users.GetUser(id)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondOK(c, user)
}
