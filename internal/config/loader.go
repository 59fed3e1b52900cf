package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName names the per-user config, cache and data directories
const AppName = "scrollmark"

// EnvPrefix prefixes every environment override
const EnvPrefix = "SCROLLMARK_"

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.scrollmark.yaml", // Project-specific config (highest priority)
	filepath.Join(xdg.ConfigHome, AppName, "config.yaml"), // User config
	"/etc/scrollmark/config.yaml",                         // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.scrollmark.yaml
// 4. $XDG_CONFIG_HOME/scrollmark/config.yaml
// 5. /etc/scrollmark/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		customPath = expandPath(customPath)
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so that later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			path := expandPath(l.configPaths[i])
			if !fileExists(path) {
				continue
			}
			if err := l.loadFromFile(config, path); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", path, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// explicitBools captures booleans that were actually present in a file,
// so an omitted key never resets a default of true.
type explicitBools struct {
	UI struct {
		ShowProgress *bool `yaml:"show_progress"`
	} `yaml:"ui"`
	Output struct {
		Verbose *bool `yaml:"verbose"`
	} `yaml:"output"`
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated or comes from the fixed search list
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	var bools explicitBools
	if err := yaml.Unmarshal(data, &bools); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	if bools.UI.ShowProgress != nil {
		config.UI.ShowProgress = *bools.UI.ShowProgress
	}
	if bools.Output.Verbose != nil {
		config.Output.Verbose = *bools.Output.Verbose
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Backend Config
		EnvPrefix + "BACKEND_ENDPOINT": func(v string) error { config.Backend.Endpoint = v; return nil },
		EnvPrefix + "BACKEND_TIMEOUT":  func(v string) error { return parseDuration(v, &config.Backend.Timeout) },

		// Progress Config
		EnvPrefix + "PROGRESS_STEP":     func(v string) error { return parseInt(v, &config.Progress.Step) },
		EnvPrefix + "PROGRESS_INTERVAL": func(v string) error { return parseDuration(v, &config.Progress.Interval) },
		EnvPrefix + "PROGRESS_CEILING":  func(v string) error { return parseInt(v, &config.Progress.Ceiling) },

		// UI Config
		EnvPrefix + "UI_THEME":         func(v string) error { config.UI.Theme = v; return nil },
		EnvPrefix + "UI_SHOW_PROGRESS": func(v string) error { return parseBool(v, &config.UI.ShowProgress) },
		EnvPrefix + "UI_START_DIR":     func(v string) error { config.UI.StartDir = v; return nil },

		// Output Config
		EnvPrefix + "OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		EnvPrefix + "OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		EnvPrefix + "OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },

		// Server Config
		EnvPrefix + "SERVER_ADDR":       func(v string) error { config.Server.Addr = v; return nil },
		EnvPrefix + "SERVER_UPLOAD_DIR": func(v string) error { config.Server.UploadDir = v; return nil },

		// Virality Config
		EnvPrefix + "VIRALITY_DELAY":     func(v string) error { return parseDuration(v, &config.Virality.Delay) },
		EnvPrefix + "VIRALITY_MIN_SCORE": func(v string) error { return parseInt(v, &config.Virality.MinScore) },
		EnvPrefix + "VIRALITY_MAX_SCORE": func(v string) error { return parseInt(v, &config.Virality.MaxScore) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// comma-separated list
	if origins := os.Getenv(EnvPrefix + "SERVER_ALLOWED_ORIGINS"); origins != "" {
		config.Server.AllowedOrigins = splitList(origins)
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range GetConfigPaths() {
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// UserConfigPath is where `config init` writes by default
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// CacheDir holds TUI log files
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// UploadDir resolves where the API stores uploaded CSV files
func (c *Config) UploadDir() string {
	if c.Server.UploadDir != "" {
		return expandPath(c.Server.UploadDir)
	}
	return filepath.Join(xdg.DataHome, AppName, "uploads")
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination; booleans are
// handled by loadFromFile.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeBackendConfig(&dst.Backend, &src.Backend)
	mergeProgressConfig(&dst.Progress, &src.Progress)
	mergeUIConfig(&dst.UI, &src.UI)
	mergeOutputConfig(&dst.Output, &src.Output)
	mergeServerConfig(&dst.Server, &src.Server)
	mergeViralityConfig(&dst.Virality, &src.Virality)
}

func mergeBackendConfig(dst, src *BackendConfig) {
	if src.Endpoint != "" {
		dst.Endpoint = src.Endpoint
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
}

func mergeProgressConfig(dst, src *ProgressConfig) {
	if src.Step != 0 {
		dst.Step = src.Step
	}
	if src.Interval != 0 {
		dst.Interval = src.Interval
	}
	if src.Ceiling != 0 {
		dst.Ceiling = src.Ceiling
	}
}

func mergeUIConfig(dst, src *UIConfig) {
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	if src.StartDir != "" {
		dst.StartDir = src.StartDir
	}
}

func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
}

func mergeServerConfig(dst, src *ServerConfig) {
	if src.Addr != "" {
		dst.Addr = src.Addr
	}
	if src.UploadDir != "" {
		dst.UploadDir = src.UploadDir
	}
	if len(src.AllowedOrigins) > 0 {
		dst.AllowedOrigins = src.AllowedOrigins
	}
}

func mergeViralityConfig(dst, src *ViralityConfig) {
	if src.Delay != 0 {
		dst.Delay = src.Delay
	}
	if src.MinScore != 0 {
		dst.MinScore = src.MinScore
	}
	if src.MaxScore != 0 {
		dst.MaxScore = src.MaxScore
	}
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
