package projects

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	// ErrProjectsDirNotFound is returned when the projects directory is missing
	ErrProjectsDirNotFound = errors.New("projects directory not found")

	// ErrProjectNotFound is returned when no project matches the given name
	ErrProjectNotFound = errors.New("project not found")
)

// ProjectInfo describes one discovered REAPER project file
type ProjectInfo struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	SizeBytes  int64     `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}

// ProjectService defines the interface for project discovery
type ProjectService interface {
	// ListProjects finds all .rpp files under the projects directory
	ListProjects(ctx context.Context) ([]ProjectInfo, error)

	// FindProject resolves a project by name (with or without extension)
	FindProject(ctx context.Context, name string) (*ProjectInfo, error)
}

// service implements ProjectService
type service struct {
	dir string
}

// NewService creates a project discovery service rooted at dir
func NewService(dir string) ProjectService {
	return &service{dir: dir}
}

// ListProjects finds all .rpp files under the projects directory
func (s *service) ListProjects(ctx context.Context) ([]ProjectInfo, error) {
	info, err := os.Stat(s.dir)
	if err != nil || !info.IsDir() {
		return nil, ErrProjectsDirNotFound
	}

	projects := []ProjectInfo{}
	err = filepath.WalkDir(s.dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("[WARN] Skipping unreadable entry %s: %v", path, err)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() {
			// REAPER keeps timestamped copies in Backups directories
			if strings.EqualFold(entry.Name(), "backups") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".rpp") {
			return nil
		}

		fi, err := entry.Info()
		if err != nil {
			log.Printf("[WARN] Skipping unstatable project %s: %v", path, err)
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}

		projects = append(projects, ProjectInfo{
			Name:       entry.Name(),
			Path:       abs,
			SizeBytes:  fi.Size(),
			ModifiedAt: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].Path < projects[j].Path })
	return projects, nil
}

// FindProject resolves a project by name (with or without extension)
func (s *service) FindProject(ctx context.Context, name string) (*ProjectInfo, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(name)
	if !strings.HasSuffix(want, ".rpp") {
		want += ".rpp"
	}

	for i := range projects {
		if strings.ToLower(projects[i].Name) == want {
			return &projects[i], nil
		}
	}

	return nil, ErrProjectNotFound
}
