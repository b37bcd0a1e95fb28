package projects

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/soundmix/mixcheck-api/api/types"
	"github.com/soundmix/mixcheck-api/internal/services/projects"
	apperrors "github.com/soundmix/mixcheck-api/pkg/errors"
	"github.com/soundmix/mixcheck-api/pkg/rpp"
)

// ListResponse represents the project listing in API responses
// @Description Projects discovered under the configured projects directory
type ListResponse struct {
	Projects []projects.ProjectInfo `json:"projects"`
	Count    int                    `json:"count"`
}

// ParseRequest represents the request to parse a project file
// @Description Request body for parsing a project into its document model
type ParseRequest struct {
	Project string `json:"project" binding:"required" example:"my_session" description:"Project name under the projects directory, or an absolute path to a .rpp file"`
}

// List handles project listing
// @Summary List REAPER projects
// @Description List all .rpp project files under the configured projects directory, skipping backup folders.
// @Tags projects
// @Produce json
// @Success 200 {object} ListResponse "Discovered projects"
// @Failure 404 {object} types.ErrorResponse "Projects directory does not exist"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /api/v1/projects [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.ProjectService == nil {
			types.SendInternalError(c, "Project service not configured")
			return
		}

		found, err := deps.ProjectService.ListProjects(c.Request.Context())
		if err != nil {
			if errors.Is(err, projects.ErrProjectsDirNotFound) {
				types.SendNotFound(c, "Projects directory does not exist")
				return
			}
			types.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to list projects"))
			return
		}

		types.SendSuccess(c, ListResponse{Projects: found, Count: len(found)})
	}
}

// Parse handles project parsing
// @Summary Parse a project into its document model
// @Description Parse a REAPER project file and return its full document model:
// @Description project settings, the track tree with FX chains, and every media item.
// @Description The project may be named (resolved against the projects directory) or given as a path.
// @Tags projects
// @Accept json
// @Produce json
// @Param request body ParseRequest true "Project to parse"
// @Success 200 {object} rpp.Project "Parsed document model"
// @Failure 400 {object} types.ErrorResponse "Invalid request body"
// @Failure 404 {object} types.ErrorResponse "Project not found"
// @Failure 422 {object} types.ErrorResponse "File is not a valid project"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /api/v1/projects/parse [post]
func Parse(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ParseRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if deps.MixcheckService == nil {
			types.SendInternalError(c, "Mixcheck service not configured")
			return
		}

		path, ok := resolveProjectPath(c, deps, req.Project)
		if !ok {
			return
		}

		project, err := deps.MixcheckService.ParseProject(c.Request.Context(), path)
		if err != nil {
			var formatErr *rpp.FormatError
			if errors.As(err, &formatErr) {
				types.SendError(c, apperrors.FormatError(path, err))
				return
			}
			types.SendInternalError(c, fmt.Sprintf("Failed to parse project: %v", err))
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

// resolveProjectPath turns a project name or path into a file path. Sends
// the error response itself when resolution fails.
func resolveProjectPath(c *gin.Context, deps *types.Dependencies, nameOrPath string) (string, bool) {
	if _, err := os.Stat(nameOrPath); err == nil {
		return nameOrPath, true
	}

	if deps.ProjectService == nil {
		types.SendNotFound(c, "File not found: "+nameOrPath)
		return "", false
	}

	info, err := deps.ProjectService.FindProject(c.Request.Context(), nameOrPath)
	if err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) || errors.Is(err, projects.ErrProjectsDirNotFound) {
			types.SendNotFound(c, "Project not found: "+nameOrPath)
			return "", false
		}
		types.SendInternalError(c, fmt.Sprintf("Failed to locate project: %v", err))
		return "", false
	}

	return info.Path, true
}
