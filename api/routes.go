package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/soundmix/mixcheck-api/api/analysis"
	"github.com/soundmix/mixcheck-api/api/health"
	"github.com/soundmix/mixcheck-api/api/plugins"
	"github.com/soundmix/mixcheck-api/api/projects"
	"github.com/soundmix/mixcheck-api/api/types"
	"github.com/soundmix/mixcheck-api/api/version"
	_ "github.com/soundmix/mixcheck-api/docs/swagger"
	analysisEngine "github.com/soundmix/mixcheck-api/pkg/analysis"
	"github.com/soundmix/mixcheck-api/pkg/config"
	"github.com/soundmix/mixcheck-api/pkg/decode"

	"github.com/soundmix/mixcheck-api/internal/services/mixcheck"
	"github.com/soundmix/mixcheck-api/internal/services/mixreports"
	pluginsService "github.com/soundmix/mixcheck-api/internal/services/plugins"
	projectsService "github.com/soundmix/mixcheck-api/internal/services/projects"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Load config for API routes
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// Initialize services if not already set
	if deps == nil {
		deps = &types.Dependencies{}
	}

	if deps.ProjectService == nil {
		deps.ProjectService = projectsService.NewService(cfg.Reaper.ProjectsDir)
	}

	if deps.PluginService == nil && cfg.Features.EnablePluginScan {
		deps.PluginService = pluginsService.NewService(cfg.Reaper.ResourcePath)
	}

	if deps.ReportService == nil && deps.DB != nil && deps.DB.DB != nil {
		deps.ReportService = mixreports.NewService(mixreports.NewRepository(deps.DB.DB))
	}

	if deps.MixcheckService == nil {
		initializeMixcheckService(deps, cfg)
	}

	// Register project routes with general rate limiting
	projectGroup := v1.Group("/projects")
	if cfg.RateLimiting.Enabled {
		projectGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, endpointRPS(cfg, "projects"), 2*endpointRPS(cfg, "projects")))
	}
	projects.RegisterRoutes(projectGroup, deps)

	// Register analysis routes with tight rate limiting since each request
	// may decode and analyze many media files
	analysisGroup := v1.Group("/analysis")
	if cfg.RateLimiting.Enabled {
		analysisGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, endpointRPS(cfg, "analysis"), 2*endpointRPS(cfg, "analysis")))
	}
	analysis.RegisterRoutes(analysisGroup, deps)

	// Register plugin routes with general rate limiting
	pluginGroup := v1.Group("/plugins")
	if cfg.RateLimiting.Enabled {
		pluginGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, endpointRPS(cfg, "plugins"), 2*endpointRPS(cfg, "plugins")))
	}
	plugins.RegisterRoutes(pluginGroup, deps)

	return nil
}

// initializeMixcheckService creates and configures the mix diagnostics service
func initializeMixcheckService(deps *types.Dependencies, cfg *config.Config) {
	decoder := decode.New(
		cfg.Processing.FFmpegPath,
		cfg.Processing.FFprobePath,
		cfg.Processing.FFmpegTimeout,
		decode.Options{
			MaxDuration: cfg.Processing.MaxDuration,
			TempDir:     cfg.Processing.TempDir,
		},
	)

	engine := analysisEngine.NewEngine(
		analysisEngine.WithThresholds(analysisEngine.Thresholds{
			HotPeakDB:      cfg.Analysis.HotPeakDB,
			MuddyLowDB:     cfg.Analysis.MuddyLowDB,
			DarkCentroidHz: cfg.Analysis.DarkCentroidHz,
			NarrowWidth:    cfg.Analysis.NarrowWidth,
			StreamingLUFS:  cfg.Analysis.StreamingLUFS,
			LowCrestDB:     cfg.Analysis.LowCrestDB,
		}),
	)

	workers := cfg.Processing.Workers
	if workers <= 0 {
		workers = 4
	}

	deps.MixcheckService = mixcheck.NewService(decoder, engine, deps.ReportService, workers)
}

// endpointRPS resolves the configured per-client rate for an endpoint group,
// falling back to the "default" entry.
func endpointRPS(cfg *config.Config, endpoint string) int {
	if rps, ok := cfg.RateLimiting.Endpoints[endpoint]; ok && rps > 0 {
		return rps
	}
	if rps, ok := cfg.RateLimiting.Endpoints["default"]; ok && rps > 0 {
		return rps
	}
	return 120
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
