package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/soundmix/mixcheck-api/internal/database"
	"github.com/soundmix/mixcheck-api/internal/services/mixcheck"
	"github.com/soundmix/mixcheck-api/internal/services/mixreports"
	"github.com/soundmix/mixcheck-api/pkg/analysis"
	"github.com/soundmix/mixcheck-api/pkg/config"
	"github.com/soundmix/mixcheck-api/pkg/decode"
	"github.com/spf13/cobra"
)

var (
	analyzeTrackFilter string
	analyzeNoCache     bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <project.rpp | audio file>",
	Short: "Analyze a project or a single audio file",
	Long: `Run mix diagnostics on a REAPER project or a single audio file.

For a project, every referenced media file is decoded and analyzed:
peak and RMS levels, spectral balance, stereo image, dynamics and
integrated loudness, plus rule-based mix warnings. Files that cannot
be analyzed are reported without failing the run.

Example:
  mixcheck-api analyze ~/projects/session.rpp
  mixcheck-api analyze ~/projects/session.rpp --track-filter drums
  mixcheck-api analyze /audio/mix.wav --file`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var analyzeSingleFile bool

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeTrackFilter, "track-filter", "", "only analyze tracks whose name contains this text")
	analyzeCmd.Flags().BoolVar(&analyzeSingleFile, "file", false, "treat the argument as a single audio file")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "skip the report cache")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var reports mixreports.ReportService
	if cfg.Features.EnableReportCache && !analyzeNoCache {
		db, err := database.InitializeWithMigrations()
		if err != nil {
			return fmt.Errorf("failed to initialize report cache database: %w", err)
		}
		defer db.Close()
		reports = mixreports.NewService(mixreports.NewRepository(db.DB))
	}

	svc := newMixcheckService(cfg, reports)

	var result interface{}
	if analyzeSingleFile {
		result = svc.AnalyzeFile(cmd.Context(), args[0])
	} else {
		result, err = svc.AnalyzeProject(cmd.Context(), args[0], analyzeTrackFilter)
		if err != nil {
			return fmt.Errorf("failed to analyze project: %w", err)
		}
	}

	return printJSON(cmd, result)
}

// newMixcheckService builds the diagnostics service from config
func newMixcheckService(cfg *config.Config, reports mixreports.ReportService) mixcheck.MixcheckService {
	decoder := decode.New(
		cfg.Processing.FFmpegPath,
		cfg.Processing.FFprobePath,
		cfg.Processing.FFmpegTimeout,
		decode.Options{
			MaxDuration: cfg.Processing.MaxDuration,
			TempDir:     cfg.Processing.TempDir,
		},
	)

	engine := analysis.NewEngine(
		analysis.WithThresholds(analysis.Thresholds{
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

	return mixcheck.NewService(decoder, engine, reports, workers)
}

// printJSON writes v to the command's stdout as indented JSON
func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
