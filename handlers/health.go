package handlers

import (
	"net/http"

	"tutorhub/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency probe. Before the first probe
// has run the service is reported as starting.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	switch {
	case status.CheckedAt.IsZero():
		c.JSON(http.StatusOK, gin.H{"status": "starting"})
	case status.Healthy():
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": status})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "dependencies": status})
	}
}
