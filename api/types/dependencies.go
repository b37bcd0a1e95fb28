package types

import (
	"github.com/soundmix/mixcheck-api/internal/database"
	"github.com/soundmix/mixcheck-api/internal/services/mixcheck"
	"github.com/soundmix/mixcheck-api/internal/services/mixreports"
	"github.com/soundmix/mixcheck-api/internal/services/plugins"
	"github.com/soundmix/mixcheck-api/internal/services/projects"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB              *database.DB
	ProjectService  projects.ProjectService
	PluginService   plugins.PluginService
	MixcheckService mixcheck.MixcheckService
	ReportService   mixreports.ReportService
}
