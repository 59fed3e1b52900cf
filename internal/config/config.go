package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Backend  BackendConfig  `yaml:"backend" json:"backend"`
	Progress ProgressConfig `yaml:"progress" json:"progress"`
	UI       UIConfig       `yaml:"ui" json:"ui"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Virality ViralityConfig `yaml:"virality" json:"virality"`
}

// BackendConfig configures the analysis service the CSV is posted to
type BackendConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint"` // full URL of the analyze route
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`   // 0 waits indefinitely
}

// ProgressConfig configures the simulated progress indicator
type ProgressConfig struct {
	Step     int           `yaml:"step" json:"step"`
	Interval time.Duration `yaml:"interval" json:"interval"`
	Ceiling  int           `yaml:"ceiling" json:"ceiling"` // highest value shown before a response arrives
}

// UIConfig configures the interactive dashboard
type UIConfig struct {
	Theme        string `yaml:"theme" json:"theme"` // default|dark|light|high-contrast
	ShowProgress bool   `yaml:"show_progress" json:"show_progress"`
	StartDir     string `yaml:"start_dir" json:"start_dir"` // file picker start directory
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // json|text|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// ServerConfig configures the dashboard API
type ServerConfig struct {
	Addr           string   `yaml:"addr" json:"addr"`
	UploadDir      string   `yaml:"upload_dir" json:"upload_dir"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
}

// ViralityConfig configures the simulated new-post predictor
type ViralityConfig struct {
	Delay    time.Duration `yaml:"delay" json:"delay"`
	MinScore int           `yaml:"min_score" json:"min_score"`
	MaxScore int           `yaml:"max_score" json:"max_score"` // exclusive
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Backend: BackendConfig{
			Endpoint: "http://localhost:5000/analyze",
			Timeout:  0,
		},
		Progress: ProgressConfig{
			Step:     5,
			Interval: 100 * time.Millisecond,
			Ceiling:  90,
		},
		UI: UIConfig{
			Theme:        "default",
			ShowProgress: true,
			StartDir:     ".",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
		},
		Server: ServerConfig{
			Addr:      "127.0.0.1:8080",
			UploadDir: "",
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			},
		},
		Virality: ViralityConfig{
			Delay:    2 * time.Second,
			MinScore: 60,
			MaxScore: 100,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateBackendConfig(); err != nil {
		return err
	}
	if err := c.validateProgressConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateViralityConfig(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBackendConfig() error {
	if c.Backend.Endpoint == "" {
		return fmt.Errorf("backend endpoint must not be empty")
	}
	u, err := url.Parse(c.Backend.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid backend endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend endpoint scheme: %q (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("backend endpoint must include a host")
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend timeout must be non-negative")
	}
	return nil
}

func (c *Config) validateProgressConfig() error {
	if c.Progress.Step < 1 {
		return fmt.Errorf("progress step must be greater than 0")
	}
	if c.Progress.Interval <= 0 {
		return fmt.Errorf("progress interval must be greater than 0")
	}
	// 100 is reserved for a parsed, successful response
	if c.Progress.Ceiling < 1 || c.Progress.Ceiling >= 100 {
		return fmt.Errorf("progress ceiling must be between 1 and 99, got %d", c.Progress.Ceiling)
	}
	return nil
}

func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"dark":          true,
			"light":         true,
			"high-contrast": true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, dark, light, high-contrast)", c.UI.Theme)
		}
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

func (c *Config) validateServerConfig() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr must not be empty")
	}
	_, port, err := net.SplitHostPort(c.Server.Addr)
	if err != nil {
		return fmt.Errorf("invalid server addr %q: %w", c.Server.Addr, err)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("invalid server port: %q", port)
	}
	if c.Server.UploadDir != "" && strings.TrimSpace(c.Server.UploadDir) == "" {
		return fmt.Errorf("server upload_dir must not be blank")
	}
	// cors refuses to start on anything else
	for _, origin := range c.Server.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid allowed origin: %s (must be * or start with http:// or https://)", origin)
		}
	}
	return nil
}

func (c *Config) validateViralityConfig() error {
	if c.Virality.Delay < 0 {
		return fmt.Errorf("virality delay must be non-negative")
	}
	if c.Virality.MinScore < 0 || c.Virality.MaxScore > 101 {
		return fmt.Errorf("virality scores must lie within 0..100")
	}
	if c.Virality.MinScore >= c.Virality.MaxScore {
		return fmt.Errorf("virality min_score (%d) must be below max_score (%d)", c.Virality.MinScore, c.Virality.MaxScore)
	}
	return nil
}
