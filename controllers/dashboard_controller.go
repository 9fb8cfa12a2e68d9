package controllers

import (
	"net/http"
	"strconv"

	"github.com/juud-8/buildledger02/config"
	"github.com/juud-8/buildledger02/service"
	"github.com/juud-8/buildledger02/utils"

	"github.com/gin-gonic/gin"
)

func GetDashboard(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	stats, err := service.Dashboard(c.Request.Context(), config.DB, uid)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not load dashboard", err)
		return
	}
	utils.Success(c, "Dashboard loaded", stats)
}

func GetQuotesAnalytics(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	window, _ := strconv.Atoi(c.DefaultQuery("window_days", "90"))
	analytics, err := service.QuotesAnalytics(c.Request.Context(), config.DB, uid, window)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not load quote analytics", err)
		return
	}
	utils.Success(c, "Quote analytics loaded", analytics)
}
