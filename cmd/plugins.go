package cmd

import (
	"fmt"

	"github.com/soundmix/mixcheck-api/internal/services/plugins"
	"github.com/soundmix/mixcheck-api/pkg/config"
	"github.com/spf13/cobra"
)

var (
	pluginType  string
	pluginQuery string
)

// pluginsCmd represents the plugins command
var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List installed plugins",
	Long: `Parse REAPER's plugin cache files (VST, AU, JSFX and CLAP) and print
every installed plugin as JSON.

Example:
  mixcheck-api plugins
  mixcheck-api plugins --type VST3
  mixcheck-api plugins --search valhalla`,
	RunE: runPlugins,
}

func init() {
	rootCmd.AddCommand(pluginsCmd)

	pluginsCmd.Flags().StringVar(&pluginType, "type", "", "filter by plugin type (VST2, VST3, AU, JS, CLAP)")
	pluginsCmd.Flags().StringVar(&pluginQuery, "search", "", "match plugins by name, manufacturer, or type")
}

func runPlugins(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	svc := plugins.NewService(cfg.Reaper.ResourcePath)

	var found []plugins.InstalledPlugin

	switch {
	case pluginQuery != "":
		found, err = svc.SearchPlugins(cmd.Context(), pluginQuery)
	case pluginType != "":
		found, err = svc.GetPluginsByType(cmd.Context(), pluginType)
	default:
		found, err = svc.FindInstalledPlugins(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to scan plugins: %w", err)
	}

	return printJSON(cmd, found)
}
