package mixcheck

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/soundmix/mixcheck-api/internal/models"
	"github.com/soundmix/mixcheck-api/internal/services/mixreports"
	"github.com/soundmix/mixcheck-api/pkg/analysis"
	"github.com/soundmix/mixcheck-api/pkg/audio"
	"github.com/soundmix/mixcheck-api/pkg/decode"
	"github.com/soundmix/mixcheck-api/pkg/rpp"
)

// Decoder turns a media file into a PCM buffer. Satisfied by decode.Decoder.
type Decoder interface {
	Decode(ctx context.Context, path string) (*audio.Buffer, error)
}

// AnalyzedFile is one successfully analyzed media item
type AnalyzedFile struct {
	TrackName string           `json:"track_name"`
	AudioFile string           `json:"audio_file"`
	Position  float64          `json:"position"`
	Length    float64          `json:"length"`
	Analysis  *analysis.Result `json:"analysis"`
	Warnings  []string         `json:"warnings"`
}

// AnalysisFailure is one media item that could not be analyzed
type AnalysisFailure struct {
	TrackName string `json:"track_name"`
	AudioFile string `json:"audio_file"`
	Error     string `json:"error"`
}

// ProjectReport is the full diagnostic output for one project. Items appear
// in document order regardless of how many workers processed them.
type ProjectReport struct {
	ProjectName   string            `json:"project_name"`
	AnalyzedFiles []AnalyzedFile    `json:"analyzed_files"`
	Errors        []AnalysisFailure `json:"errors"`
}

// MixcheckService defines the interface for project mix diagnostics
type MixcheckService interface {
	// ParseProject parses a project file into its document model
	ParseProject(ctx context.Context, projectPath string) (*rpp.Project, error)

	// AnalyzeProject analyzes every media item of a project, optionally
	// restricted to tracks whose name contains trackFilter
	AnalyzeProject(ctx context.Context, projectPath, trackFilter string) (*ProjectReport, error)

	// AnalyzeFile analyzes a single media file. Failures are reported in
	// the result's Error field, never as a Go error.
	AnalyzeFile(ctx context.Context, path string) *analysis.Result
}

// service implements MixcheckService
type service struct {
	parser  *rpp.Parser
	decoder Decoder
	engine  *analysis.Engine
	reports mixreports.ReportService // nil disables the report cache
	workers int
}

// NewService creates the diagnostics orchestrator. reports may be nil to
// disable caching; workers below 1 is treated as 1.
func NewService(decoder Decoder, engine *analysis.Engine, reports mixreports.ReportService, workers int) MixcheckService {
	if workers < 1 {
		workers = 1
	}
	return &service{
		parser:  rpp.NewParser(),
		decoder: decoder,
		engine:  engine,
		reports: reports,
		workers: workers,
	}
}

// ParseProject parses a project file into its document model
func (s *service) ParseProject(ctx context.Context, projectPath string) (*rpp.Project, error) {
	return s.parser.ParseFile(projectPath)
}

// analysisJob is one (track, item) pair awaiting a worker
type analysisJob struct {
	trackName string
	item      rpp.MediaItem
}

// AnalyzeProject analyzes every media item of a project
func (s *service) AnalyzeProject(ctx context.Context, projectPath, trackFilter string) (*ProjectReport, error) {
	project, err := s.parser.ParseFile(projectPath)
	if err != nil {
		return nil, err
	}

	filter := strings.ToLower(trackFilter)
	jobs := []analysisJob{}
	for _, track := range project.Tracks {
		if filter != "" && !strings.Contains(strings.ToLower(track.Name), filter) {
			continue
		}
		for _, item := range track.Items {
			jobs = append(jobs, analysisJob{trackName: track.Name, item: item})
		}
	}

	log.Printf("[DEBUG] Analyzing %d media item(s) from %s with %d worker(s)", len(jobs), project.Name, s.workers)

	results := make([]*analysis.Result, len(jobs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)
	for i := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = s.AnalyzeFile(ctx, jobs[i].item.FilePath)
		}(i)
	}
	wg.Wait()

	report := &ProjectReport{
		ProjectName:   project.Name,
		AnalyzedFiles: []AnalyzedFile{},
		Errors:        []AnalysisFailure{},
	}
	for i, job := range jobs {
		result := results[i]
		if result.Error != "" {
			report.Errors = append(report.Errors, AnalysisFailure{
				TrackName: job.trackName,
				AudioFile: job.item.FilePath,
				Error:     result.Error,
			})
			continue
		}
		report.AnalyzedFiles = append(report.AnalyzedFiles, AnalyzedFile{
			TrackName: job.trackName,
			AudioFile: job.item.FilePath,
			Position:  job.item.Position,
			Length:    job.item.Length,
			Analysis:  result,
			Warnings:  result.Warnings,
		})
	}

	return report, nil
}

// AnalyzeFile analyzes a single media file
func (s *service) AnalyzeFile(ctx context.Context, path string) (result *analysis.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] Analysis panic for %s: %v", path, r)
			result = analysis.ErrorResult(path, fmt.Sprintf("Analysis failed: %v", r))
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return analysis.ErrorResult(path, "File not found: "+path)
	}

	key := mixreports.ReportKey{
		FilePath:  path,
		FileMtime: info.ModTime().Unix(),
		FileSize:  info.Size(),
	}

	if s.reports != nil {
		if cached, err := s.reports.GetReport(ctx, key); err == nil {
			if decoded, err := cached.Result(); err == nil {
				return decoded
			}
		}
	}

	buf, err := s.decoder.Decode(ctx, path)
	if err != nil {
		if errors.Is(err, decode.ErrFileNotFound) {
			return analysis.ErrorResult(path, "File not found: "+path)
		}
		return analysis.ErrorResult(path, fmt.Sprintf("Corrupted or invalid audio file: %v", err))
	}

	result = s.engine.Analyze(buf)
	result.FilePath = path

	if s.reports != nil {
		report := &models.MixReport{
			FilePath:  key.FilePath,
			FileMtime: key.FileMtime,
			FileSize:  key.FileSize,
		}
		if err := report.SetResult(result); err == nil {
			if err := s.reports.SaveReport(ctx, report); err != nil {
				log.Printf("[WARN] Failed to cache report for %s: %v", path, err)
			}
		}
	}

	return result
}
