package analysis

import (
	"github.com/gin-gonic/gin"
	"github.com/soundmix/mixcheck-api/api/types"
)

// RegisterRoutes registers mix analysis routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", AnalyzeProject(deps))               // Analyze every media item of a project
	router.POST("/file", AnalyzeFile(deps))             // Analyze a single audio file
	router.GET("/report", GetCachedReport(deps))        // Fetch a cached report
	router.DELETE("/report", DeleteCachedReports(deps)) // Drop cached reports for a file
}
