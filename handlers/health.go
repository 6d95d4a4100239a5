package handlers

import (
	"net/http"

	"localconnect/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health with the last dependency snapshot taken
// by utils.StartHealthMonitor.
func HealthHandler(c *gin.Context) {
	snapshot := utils.GetHealthStatus()

	status := "ok"
	for _, up := range snapshot.Mongo {
		if !up {
			status = "degraded"
		}
	}
	for _, up := range snapshot.Redis {
		if !up {
			status = "degraded"
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "services": snapshot})
}
