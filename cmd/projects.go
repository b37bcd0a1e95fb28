package cmd

import (
	"fmt"

	"github.com/soundmix/mixcheck-api/internal/services/projects"
	"github.com/soundmix/mixcheck-api/pkg/config"
	"github.com/spf13/cobra"
)

// projectsCmd represents the projects command
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List REAPER projects",
	Long: `List all .rpp project files under the configured projects directory,
skipping backup folders.

Example:
  mixcheck-api projects
  mixcheck-api projects --dir ~/reaper-projects`,
	RunE: runProjects,
}

var projectsDir string

func init() {
	rootCmd.AddCommand(projectsCmd)

	projectsCmd.Flags().StringVar(&projectsDir, "dir", "", "projects directory (overrides config)")
}

func runProjects(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir := projectsDir
	if dir == "" {
		dir = cfg.Reaper.ProjectsDir
	}

	found, err := projects.NewService(dir).ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	return printJSON(cmd, found)
}
