// Package config loads Scribe's YAML configuration. All fields are optional;
// a missing file or a missing field falls back to the defaults, so zero-config
// use always works.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultOutputDir       = "generated"
	DefaultTestPrefix      = "recorded"
	DefaultScriptExtension = "spec.ts"
	DefaultViewportWidth   = 1280
	DefaultViewportHeight  = 720
	DefaultTimeout         = 30000.0
)

// Config holds recording and generation settings.
type Config struct {
	// OutputDir is where generated test files are written
	OutputDir string `yaml:"output_dir"`

	// SessionDir overrides the snapshot directory. Empty means
	// OutputDir/sessions.
	SessionDir string `yaml:"session_dir"`

	// TestPrefix is the generated test name and file prefix
	TestPrefix string `yaml:"test_prefix"`

	// ScriptExtension is the generated file extension, without the dot
	ScriptExtension string `yaml:"script_extension"`

	// Headless controls whether launched browsers run headless
	Headless bool `yaml:"headless"`

	// ViewportWidth and ViewportHeight size the browser viewport
	ViewportWidth  int `yaml:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height"`

	// Timeout is the default browser operation timeout in milliseconds
	Timeout float64 `yaml:"timeout_ms"`

	// Recordable lists glob patterns of tool names worth recording.
	// Empty means every action is recorded. Load compiles the patterns;
	// configs built by hand set them through SetRecordable.
	Recordable []string `yaml:"recordable"`

	matchers []glob.Glob
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		OutputDir:       DefaultOutputDir,
		TestPrefix:      DefaultTestPrefix,
		ScriptExtension: DefaultScriptExtension,
		Headless:        true,
		ViewportWidth:   DefaultViewportWidth,
		ViewportHeight:  DefaultViewportHeight,
		Timeout:         DefaultTimeout,
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.SetRecordable(cfg.Recordable); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills any field the file left empty.
func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.TestPrefix == "" {
		c.TestPrefix = DefaultTestPrefix
	}
	if c.ScriptExtension == "" {
		c.ScriptExtension = DefaultScriptExtension
	}
	if c.ViewportWidth == 0 {
		c.ViewportWidth = DefaultViewportWidth
	}
	if c.ViewportHeight == 0 {
		c.ViewportHeight = DefaultViewportHeight
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// SetRecordable replaces the recordable patterns, compiling them eagerly.
// A pattern that does not compile leaves the config unchanged and returns
// the error. Compilation happens here and in Load only, so IsRecordable is
// a pure read and the config can be shared across goroutines.
func (c *Config) SetRecordable(patterns []string) error {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return fmt.Errorf("config: recordable pattern %q: %w", pattern, err)
		}
		matchers = append(matchers, g)
	}
	c.Recordable = patterns
	c.matchers = matchers
	return nil
}

// IsRecordable reports whether an action with the given tool name should be
// appended to the session log. With no patterns configured everything is
// recordable. Patterns assigned to the field directly, without Load or
// SetRecordable compiling them, match nothing.
func (c *Config) IsRecordable(toolName string) bool {
	if len(c.Recordable) == 0 {
		return true
	}
	for _, m := range c.matchers {
		if m.Match(toolName) {
			return true
		}
	}
	return false
}

// SessionsDir resolves the snapshot directory.
func (c *Config) SessionsDir() string {
	if c.SessionDir != "" {
		return c.SessionDir
	}
	return filepath.Join(c.OutputDir, "sessions")
}
