package cmd

import (
	"fmt"

	"github.com/soundmix/mixcheck-api/pkg/config"
	"github.com/spf13/cobra"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <project.rpp>",
	Short: "Parse a project into its document model",
	Long: `Parse a REAPER project file and print its document model as JSON:
project settings, the track tree with FX chains, and every media item.

Example:
  mixcheck-api parse ~/projects/session.rpp`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	svc := newMixcheckService(cfg, nil)

	project, err := svc.ParseProject(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to parse project: %w", err)
	}

	return printJSON(cmd, project)
}
