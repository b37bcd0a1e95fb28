package plugins

import (
	"github.com/gin-gonic/gin"
	"github.com/soundmix/mixcheck-api/api/types"
)

// RegisterRoutes registers plugin discovery routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", List(deps)) // List installed plugins
}
