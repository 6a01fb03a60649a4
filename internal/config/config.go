// Package config loads per-workspace settings from an .envscoperc file in
// the workspace root: optional file, pointer fields for overridable
// defaults, Effective* accessors.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Workspace holds user-overridable analysis settings.
type Workspace struct {
	Analysis AnalysisConfig `yaml:"analysis"`
}

// AnalysisConfig controls pipeline and resolver behaviour.
type AnalysisConfig struct {
	// MaxOriginDepth bounds alias/destructure chain walks in ResolveOrigin.
	// Default: 32.
	MaxOriginDepth *int `yaml:"max_origin_depth"`

	// IgnoreFile names a gitignore-style file, relative to the workspace
	// root, of additional paths the repository scanner should skip.
	// Default: ".envscopeignore".
	IgnoreFile *string `yaml:"ignore_file"`

	// WatchIntervalSeconds is the base poll interval for watch mode.
	// Default: 1.
	WatchIntervalSeconds *int `yaml:"watch_interval_seconds"`
}

// Default returns the default workspace configuration.
func Default() *Workspace {
	return &Workspace{}
}

// Load reads .envscoperc from dir. A missing or invalid file yields
// defaults rather than an error: configuration is always optional.
func Load(dir string) *Workspace {
	cfg := Default()

	path := filepath.Join(dir, ".envscoperc")
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default()
	}
	return cfg
}

// EffectiveMaxOriginDepth returns the configured chain depth bound, or 32.
func (w *Workspace) EffectiveMaxOriginDepth() int {
	if w.Analysis.MaxOriginDepth != nil {
		return *w.Analysis.MaxOriginDepth
	}
	return 32
}

// EffectiveIgnoreFile returns the configured ignore-file name, or the
// default ".envscopeignore".
func (w *Workspace) EffectiveIgnoreFile() string {
	if w.Analysis.IgnoreFile != nil {
		return *w.Analysis.IgnoreFile
	}
	return ".envscopeignore"
}

// EffectiveWatchInterval returns the configured base poll interval in
// seconds, or 1.
func (w *Workspace) EffectiveWatchInterval() int {
	if w.Analysis.WatchIntervalSeconds != nil {
		return *w.Analysis.WatchIntervalSeconds
	}
	return 1
}
