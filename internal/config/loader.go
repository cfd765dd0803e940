package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".distdist"

// XDGConfigFile is the configuration file name inside XDGConfigDir.
const XDGConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .distdist configuration file.
// Zero values leave the corresponding Config field unchanged.
type File struct {
	Threshold float64     `yaml:"threshold,omitempty"`
	Bins      BinsFile    `yaml:"bins,omitempty"`
	Labels    LabelsFile  `yaml:"labels,omitempty"`
	Figure    FigureFile  `yaml:"figure,omitempty"`
	History   HistoryFile `yaml:"history,omitempty"`
}

// BinsFile holds histogram bin counts.
type BinsFile struct {
	Period   int `yaml:"period,omitempty"`
	Distance int `yaml:"distance,omitempty"`
}

// LabelsFile holds the distance bounds used in legend labels.
type LabelsFile struct {
	Floor   float64 `yaml:"floor,omitempty"`
	Ceiling float64 `yaml:"ceiling,omitempty"`
}

// FigureFile holds figure output settings.
type FigureFile struct {
	Output    string  `yaml:"output,omitempty"`
	Width     float64 `yaml:"width,omitempty"`
	Height    float64 `yaml:"height,omitempty"`
	NearColor string  `yaml:"nearColor,omitempty"`
	FarColor  string  `yaml:"farColor,omitempty"`
}

// HistoryFile holds run history settings.
type HistoryFile struct {
	// Enabled is a pointer so an explicit false can be told apart from unset.
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply copies the non-zero settings of the file into c.
func (cf *File) Apply(c *Config) {
	if cf.Threshold != 0 {
		c.Threshold = cf.Threshold
	}
	if cf.Bins.Period != 0 {
		c.PeriodBins = cf.Bins.Period
	}
	if cf.Bins.Distance != 0 {
		c.DistanceBins = cf.Bins.Distance
	}
	if cf.Labels.Floor != 0 {
		c.DistanceFloor = cf.Labels.Floor
	}
	if cf.Labels.Ceiling != 0 {
		c.DistanceCeiling = cf.Labels.Ceiling
	}
	if cf.Figure.Output != "" {
		c.FigurePath = cf.Figure.Output
	}
	if cf.Figure.Width != 0 {
		c.FigureWidth = cf.Figure.Width
	}
	if cf.Figure.Height != 0 {
		c.FigureHeight = cf.Figure.Height
	}
	if cf.Figure.NearColor != "" {
		c.NearColor = cf.Figure.NearColor
	}
	if cf.Figure.FarColor != "" {
		c.FarColor = cf.Figure.FarColor
	}
	if cf.History.Enabled != nil {
		c.SaveToDB = *cf.History.Enabled
	}
	if cf.History.Dir != "" {
		c.DBDir = cf.History.Dir
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .distdist in the current directory
// 3. Look for config.yaml in the XDG config directory (~/.config/distdist)
// 4. Look for .distdist in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	for _, candidate := range searchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// searchPaths returns the implicit configuration file locations in priority order.
func searchPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, DefaultConfigFile))
	}
	paths = append(paths, filepath.Join(XDGConfigDir(), XDGConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, DefaultConfigFile))
	}
	return paths
}
