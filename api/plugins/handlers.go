package plugins

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/soundmix/mixcheck-api/api/types"
	"github.com/soundmix/mixcheck-api/internal/services/plugins"
	apperrors "github.com/soundmix/mixcheck-api/pkg/errors"
)

// ListResponse represents installed plugins in API responses
// @Description Plugins discovered in REAPER's scan cache files
type ListResponse struct {
	Plugins []plugins.InstalledPlugin `json:"plugins"`
	Count   int                       `json:"count"`
}

// List handles installed plugin discovery
// @Summary List installed plugins
// @Description Parse REAPER's plugin cache files (VST, AU, JSFX and CLAP) and return
// @Description every installed plugin. Results can be narrowed with the type and q
// @Description query parameters.
// @Tags plugins
// @Produce json
// @Param type query string false "Filter by plugin type (VST2, VST3, AU, JS, CLAP)"
// @Param q query string false "Match plugins by name, manufacturer, or type"
// @Success 200 {object} ListResponse "Discovered plugins"
// @Failure 404 {object} types.ErrorResponse "REAPER resource path does not exist"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /api/v1/plugins [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.PluginService == nil {
			types.SendNotFound(c, "Plugin scanning is not enabled")
			return
		}

		var (
			found []plugins.InstalledPlugin
			err   error
		)

		switch {
		case c.Query("q") != "":
			found, err = deps.PluginService.SearchPlugins(c.Request.Context(), c.Query("q"))
		case c.Query("type") != "":
			found, err = deps.PluginService.GetPluginsByType(c.Request.Context(), c.Query("type"))
		default:
			found, err = deps.PluginService.FindInstalledPlugins(c.Request.Context())
		}

		if err != nil {
			if errors.Is(err, plugins.ErrResourcePathNotFound) {
				types.SendNotFound(c, "REAPER resource path does not exist")
				return
			}
			types.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to scan plugins"))
			return
		}

		types.SendSuccess(c, ListResponse{Plugins: found, Count: len(found)})
	}
}
