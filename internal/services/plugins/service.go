package plugins

import (
	"bufio"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ErrResourcePathNotFound is returned when the REAPER resource directory is missing
var ErrResourcePathNotFound = errors.New("REAPER resource path not found")

// InstalledPlugin describes one plugin entry from REAPER's scan cache
type InstalledPlugin struct {
	Name         string `json:"name"`
	PluginType   string `json:"plugin_type"` // VST2, VST3, AU, JS, CLAP
	Path         string `json:"path"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Category     string `json:"category,omitempty"`
}

// PluginService defines the interface for installed plugin discovery
type PluginService interface {
	// FindInstalledPlugins parses all of REAPER's plugin cache files
	FindInstalledPlugins(ctx context.Context) ([]InstalledPlugin, error)

	// GetPluginsByType filters plugins by type (VST2, VST3, AU, JS, CLAP)
	GetPluginsByType(ctx context.Context, pluginType string) ([]InstalledPlugin, error)

	// SearchPlugins matches plugins by name, manufacturer, or type
	SearchPlugins(ctx context.Context, query string) ([]InstalledPlugin, error)
}

// service implements PluginService
type service struct {
	resourcePath string
}

// NewService creates a plugin scanner for a REAPER resource directory
func NewService(resourcePath string) PluginService {
	return &service{resourcePath: resourcePath}
}

// FindInstalledPlugins parses all of REAPER's plugin cache files
func (s *service) FindInstalledPlugins(ctx context.Context) ([]InstalledPlugin, error) {
	if info, err := os.Stat(s.resourcePath); err != nil || !info.IsDir() {
		return nil, ErrResourcePathNotFound
	}

	plugins := []InstalledPlugin{}
	plugins = append(plugins, s.parseVSTManifests()...)
	plugins = append(plugins, s.parseAUManifests()...)
	plugins = append(plugins, s.parseJSManifest()...)
	plugins = append(plugins, s.parseCLAPManifests()...)
	return plugins, nil
}

// GetPluginsByType filters plugins by type (VST2, VST3, AU, JS, CLAP)
func (s *service) GetPluginsByType(ctx context.Context, pluginType string) ([]InstalledPlugin, error) {
	all, err := s.FindInstalledPlugins(ctx)
	if err != nil {
		return nil, err
	}

	filtered := []InstalledPlugin{}
	for _, p := range all {
		if strings.EqualFold(p.PluginType, pluginType) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// SearchPlugins matches plugins by name, manufacturer, or type
func (s *service) SearchPlugins(ctx context.Context, query string) ([]InstalledPlugin, error) {
	all, err := s.FindInstalledPlugins(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := []InstalledPlugin{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			(p.Manufacturer != "" && strings.Contains(strings.ToLower(p.Manufacturer), q)) ||
			strings.Contains(strings.ToLower(p.PluginType), q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// manifestLines reads one cache file and yields trimmed key=value lines,
// skipping blanks, comments and section headers.
func manifestLines(path string, skipSections bool, fn func(key, value string)) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if skipSections && strings.HasPrefix(line, "[") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fn(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		log.Printf("[WARN] Error reading plugin cache %s: %v", path, err)
	}
}

// parseVSTManifests reads VST2/VST3 entries from reaper-vstplugins*.ini.
// Entries look like: filename=hash,id,Display Name (Manufacturer)!!!VSTi
func (s *service) parseVSTManifests() []InstalledPlugin {
	manifests := []string{
		"reaper-vstplugins_arm64.ini",
		"reaper-vstplugins64.ini",
		"reaper-vstplugins.ini",
	}

	plugins := []InstalledPlugin{}
	for _, manifest := range manifests {
		manifestLines(filepath.Join(s.resourcePath, manifest), true, func(filename, info string) {
			pluginType := "VST2"
			if strings.HasSuffix(filename, ".vst3") {
				pluginType = "VST3"
			}

			parts := strings.SplitN(info, ",", 3)
			if len(parts) < 3 {
				return
			}

			display := strings.TrimSpace(strings.ReplaceAll(parts[2], "!!!VSTi", ""))
			name, manufacturer := parseVSTDisplayName(display)

			plugins = append(plugins, InstalledPlugin{
				Name:         name,
				PluginType:   pluginType,
				Path:         filename,
				Manufacturer: manufacturer,
			})
		})
	}
	return plugins
}

// parseVSTDisplayName splits "Plugin Name (Manufacturer)" into its parts
func parseVSTDisplayName(display string) (name, manufacturer string) {
	before, after, ok := strings.Cut(display, "(")
	if !ok {
		return strings.TrimSpace(display), ""
	}
	name = strings.TrimSpace(before)
	manufacturer, _, _ = strings.Cut(after, ")")
	return name, strings.TrimSpace(manufacturer)
}

// parseAUManifests reads Audio Unit entries from reaper-auplugins*.ini.
// Entries look like: Manufacturer: Plugin Name=<inst>
func (s *service) parseAUManifests() []InstalledPlugin {
	manifests := []string{
		"reaper-auplugins_arm64.ini",
		"reaper-auplugins64.ini",
		"reaper-auplugins.ini",
	}

	plugins := []InstalledPlugin{}
	for _, manifest := range manifests {
		manifestLines(filepath.Join(s.resourcePath, manifest), true, func(namePart, info string) {
			// <!inst> marks an AU that failed to load
			if info == "<!inst>" {
				return
			}

			manufacturer, name := parseAUName(namePart)
			plugins = append(plugins, InstalledPlugin{
				Name:         name,
				PluginType:   "AU",
				Path:         "AU:" + namePart,
				Manufacturer: manufacturer,
			})
		})
	}
	return plugins
}

// parseAUName splits "Manufacturer: Plugin Name" into its parts
func parseAUName(namePart string) (manufacturer, name string) {
	before, after, ok := strings.Cut(namePart, ":")
	if !ok {
		return "", namePart
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// parseJSManifest reads JSFX entries from reaper-jsfx.ini.
// Entries look like: Category/Plugin Name=path
func (s *service) parseJSManifest() []InstalledPlugin {
	plugins := []InstalledPlugin{}
	manifestLines(filepath.Join(s.resourcePath, "reaper-jsfx.ini"), true, func(namePart, path string) {
		category := ""
		name := namePart
		if before, after, ok := strings.Cut(namePart, "/"); ok {
			category = before
			name = after
		}

		plugins = append(plugins, InstalledPlugin{
			Name:         name,
			PluginType:   "JS",
			Path:         path,
			Manufacturer: "JSFX",
			Category:     category,
		})
	})
	return plugins
}

// parseCLAPManifests reads CLAP entries from reaper-clapplugins*.ini
func (s *service) parseCLAPManifests() []InstalledPlugin {
	manifests := []string{
		"reaper-clapplugins64.ini",
		"reaper-clapplugins.ini",
	}

	plugins := []InstalledPlugin{}
	for _, manifest := range manifests {
		manifestLines(filepath.Join(s.resourcePath, manifest), false, func(name, path string) {
			name = strings.Trim(name, `"`)
			path = strings.Trim(path, `"`)

			plugins = append(plugins, InstalledPlugin{
				Name:         name,
				PluginType:   "CLAP",
				Path:         path,
				Manufacturer: extractManufacturer(name, path),
			})
		})
	}
	return plugins
}

// extractManufacturer guesses a manufacturer from the plugin name or its
// install path
func extractManufacturer(name, path string) string {
	for _, separator := range []string{" - ", ": ", " : "} {
		if before, _, ok := strings.Cut(name, separator); ok {
			return strings.TrimSpace(before)
		}
	}

	skip := map[string]bool{
		"VST": true, "VST3": true, "Plugins": true, "Audio": true, "Components": true,
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || skip[part] {
			continue
		}
		return part
	}

	return ""
}
