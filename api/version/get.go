package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
// @Summary Service version
// @Description Report the service name and version
// @Tags version
// @Produce json
// @Success 200 {object} map[string]interface{} "Version information"
// @Router / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Mixcheck API",
			"version":     "1.0.0",
			"description": "REAPER project parsing and mix diagnostics API",
			"status":      "running",
		})
	}
}
