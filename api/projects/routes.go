package projects

import (
	"github.com/gin-gonic/gin"
	"github.com/soundmix/mixcheck-api/api/types"
)

// RegisterRoutes registers project-related routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", List(deps))         // List discovered projects
	router.POST("/parse", Parse(deps)) // Parse a project into its document model
}
