package analysis

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/soundmix/mixcheck-api/api/types"
	"github.com/soundmix/mixcheck-api/internal/services/mixreports"
	"github.com/soundmix/mixcheck-api/internal/services/projects"
	apperrors "github.com/soundmix/mixcheck-api/pkg/errors"
	"github.com/soundmix/mixcheck-api/pkg/rpp"
)

// AnalyzeProjectRequest represents the request to analyze a project's mix
// @Description Request body for running mix diagnostics across a project
type AnalyzeProjectRequest struct {
	Project     string `json:"project" binding:"required" example:"my_session" description:"Project name under the projects directory, or an absolute path to a .rpp file"`
	TrackFilter string `json:"track_filter,omitempty" example:"drums" description:"Only analyze tracks whose name contains this text (case-insensitive)"`
}

// AnalyzeFileRequest represents the request to analyze a single media file
// @Description Request body for analyzing one audio file
type AnalyzeFileRequest struct {
	Path string `json:"path" binding:"required" example:"/audio/mix.wav" description:"Path to the audio file"`
}

// AnalyzeProject handles full-project mix diagnostics
// @Summary Analyze every media item of a project
// @Description Parse the project, decode each referenced media file and run the full
// @Description diagnostic chain: peak and RMS levels, spectral balance, stereo image,
// @Description dynamics, integrated loudness and the derived mix warnings. Files that
// @Description cannot be analyzed are reported in the errors list without failing the run.
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeProjectRequest true "Project to analyze with optional track filter"
// @Success 200 {object} mixcheck.ProjectReport "Per-file analysis results and failures"
// @Failure 400 {object} types.ErrorResponse "Invalid request body"
// @Failure 404 {object} types.ErrorResponse "Project not found"
// @Failure 422 {object} types.ErrorResponse "File is not a valid project"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /api/v1/analysis [post]
func AnalyzeProject(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnalyzeProjectRequest
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

		report, err := deps.MixcheckService.AnalyzeProject(c.Request.Context(), path, req.TrackFilter)
		if err != nil {
			var formatErr *rpp.FormatError
			if errors.As(err, &formatErr) {
				types.SendError(c, apperrors.FormatError(path, err))
				return
			}
			types.SendError(c, apperrors.AnalysisError(path, err))
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

// AnalyzeFile handles single-file analysis
// @Summary Analyze one audio file
// @Description Decode a single audio file and return its full analysis result.
// @Description Decoding or analysis failures are reported in the result's error field.
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeFileRequest true "File to analyze"
// @Success 200 {object} analysis.Result "Analysis result"
// @Failure 400 {object} types.ErrorResponse "Invalid request body"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /api/v1/analysis/file [post]
func AnalyzeFile(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnalyzeFileRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if deps.MixcheckService == nil {
			types.SendInternalError(c, "Mixcheck service not configured")
			return
		}

		result := deps.MixcheckService.AnalyzeFile(c.Request.Context(), req.Path)
		c.JSON(http.StatusOK, result)
	}
}

// GetCachedReport retrieves the cached report for a file
// @Summary Get the cached analysis report for a file
// @Description Look up the cached analysis for the file's current on-disk version.
// @Description Returns 404 when the file has never been analyzed or has changed since.
// @Tags analysis
// @Produce json
// @Param path query string true "Path to the audio file"
// @Success 200 {object} analysis.Result "Cached analysis result"
// @Failure 400 {object} types.ErrorResponse "Missing path parameter"
// @Failure 404 {object} types.ErrorResponse "No cached report for this file version"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /api/v1/analysis/report [get]
func GetCachedReport(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Query("path")
		if path == "" {
			types.SendBadRequest(c, "Missing path parameter")
			return
		}

		if deps.ReportService == nil {
			types.SendNotFound(c, "Report cache is not enabled")
			return
		}

		info, err := os.Stat(path)
		if err != nil {
			types.SendNotFound(c, "File not found: "+path)
			return
		}

		report, err := deps.ReportService.GetReport(c.Request.Context(), mixreports.ReportKey{
			FilePath:  path,
			FileMtime: info.ModTime().Unix(),
			FileSize:  info.Size(),
		})
		if err != nil {
			if errors.Is(err, mixreports.ErrReportNotFound) {
				types.SendNotFound(c, "No cached report for this file version")
				return
			}
			types.SendError(c, apperrors.DatabaseError("report lookup", err))
			return
		}

		result, err := report.Result()
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to decode report: %v", err))
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// DeleteCachedReports removes all cached reports for a file
// @Summary Delete cached analysis reports for a file
// @Description Remove every cached report version for the given file path,
// @Description forcing the next analysis to recompute from the audio.
// @Tags analysis
// @Produce json
// @Param path query string true "Path to the audio file"
// @Success 200 {object} types.BaseResponse "Reports deleted"
// @Failure 400 {object} types.ErrorResponse "Missing path parameter"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /api/v1/analysis/report [delete]
func DeleteCachedReports(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Query("path")
		if path == "" {
			types.SendBadRequest(c, "Missing path parameter")
			return
		}

		if deps.ReportService == nil {
			types.SendNotFound(c, "Report cache is not enabled")
			return
		}

		if err := deps.ReportService.DeleteReports(c.Request.Context(), path); err != nil {
			types.SendError(c, apperrors.DatabaseError("report delete", err))
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Reports deleted"})
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
