package handlers

import (
	"net/http"

	"musicminds/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency snapshot. The gateway itself is up
// whenever it answers, so the status code stays 200.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	state := "ok"
	if !status.Healthy() {
		state = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    state,
		"services":  status.Services,
		"checkedAt": status.CheckedAt,
	})
}
