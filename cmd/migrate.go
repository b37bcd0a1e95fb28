package cmd

import (
	"fmt"

	"github.com/soundmix/mixcheck-api/internal/database"
	"github.com/soundmix/mixcheck-api/internal/models"
	"github.com/soundmix/mixcheck-api/pkg/config"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the report cache database schema for the Mixcheck API.

The report cache stores one analysis result per media file version so
repeated project analyses can skip files that have not changed.

Available subcommands:
  up      - Apply the current schema
  status  - Show current schema status`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the current schema",
	Long: `Apply the current database schema.

This runs GORM auto-migration for the report cache tables, creating or
updating them to match the model definitions.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows schema status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status",
	Long: `Display the current status of the report cache database schema.

This command shows which tables exist and how many cached reports
are stored.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateUpCmd.Flags().Bool("dry-run", false, "show what would be done without making changes")
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if dryRun {
		fmt.Println("Dry run mode - no changes will be made")
		fmt.Printf("Would auto-migrate mix_reports in %s\n", cfg.Database.Path)
		return nil
	}

	db, err := database.InitializeWithMigrations()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer db.Close()

	fmt.Printf("Schema applied to %s\n", cfg.Database.Path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("Report Cache Database Status")
	fmt.Println(repeatString("=", 50))
	fmt.Printf("Path: %s\n", cfg.Database.Path)

	db, err := database.Initialize(cfg.Database.Path, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if !db.DB.Migrator().HasTable(&models.MixReport{}) {
		fmt.Println("mix_reports: missing (run 'migrate up')")
		return nil
	}

	var count int64
	if err := db.DB.Model(&models.MixReport{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count reports: %w", err)
	}

	fmt.Println("mix_reports: present")
	fmt.Printf("Cached reports: %d\n", count)
	return nil
}

// repeatString repeats a string n times
func repeatString(s string, n int) string {
	if n <= 0 {
		return ""
	}
	result := ""
	for i := 0; i < n; i++ {
		result += s
	}
	return result
}
