// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/neuralchat/internal/util"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config is the root configuration for neuralchat.
type Config struct {
	// Version of the config file format.
	Version string `toml:"version" json:"version"`

	Ollama OllamaConfig `toml:"ollama" json:"ollama"`
	Server ServerConfig `toml:"server" json:"server"`
	Client ClientConfig `toml:"client" json:"client"`
	UI     UIConfig     `toml:"ui" json:"ui"`
}

// OllamaConfig is the model server the proxy forwards to.
type OllamaConfig struct {
	// URL is the full chat endpoint, e.g. http://localhost:11434/api/chat.
	URL string `toml:"url" json:"url"`

	// Model name sent with every request.
	Model string `toml:"model" json:"model"`

	// Timeout in seconds for one upstream call. 0 means no deadline.
	Timeout int `toml:"timeout" json:"timeout"`
}

// ServerConfig holds the proxy listener settings.
type ServerConfig struct {
	Addr               string   `toml:"addr" json:"addr"`
	AllowedOrigins     []string `toml:"allowed_origins" json:"allowed_origins"`
	RateLimitPerMinute int      `toml:"rate_limit_per_minute" json:"rate_limit_per_minute"`
}

// ClientConfig holds the chat client's view of the proxy.
type ClientConfig struct {
	// ProxyURL is the proxy's chat route.
	ProxyURL string `toml:"proxy_url" json:"proxy_url"`

	// Timeout in seconds for one send. 0 means no deadline.
	Timeout int `toml:"timeout" json:"timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Style picks the markdown style: auto, dark, light or notty.
	Style string `toml:"style" json:"style"`

	// ExportDir is where transcripts are written. Empty means the
	// working directory.
	ExportDir string `toml:"export_dir" json:"export_dir"`

	// ExportTheme is the HTML transcript palette: dark or light.
	ExportTheme string `toml:"export_theme" json:"export_theme"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	CurrentVersion = "1"

	DefaultOllamaURL   = "http://localhost:11434/api/chat"
	DefaultOllamaModel = "mistral"
	DefaultServerAddr  = "127.0.0.1:3000"
	DefaultProxyURL    = "http://127.0.0.1:3000/api/chat"
	DefaultStyle       = "auto"
)

// Environment variables read by ApplyEnvOverrides and the entry point.
const (
	EnvOllamaURL   = "OLLAMA_API_URL"
	EnvOllamaModel = "OLLAMA_MODEL"
	EnvAddr        = "NEURALCHAT_ADDR"
	EnvProxyURL    = "NEURALCHAT_PROXY_URL"
	EnvConfigPath  = "NEURALCHAT_CONFIG"
	EnvLogFile     = "NEURALCHAT_LOG_FILE"
)

// DotEnvFiles are loaded by LoadDotEnv, in order, from the working directory.
var DotEnvFiles = []string{".env", ".env.local"}

var validStyles = map[string]bool{"auto": true, "dark": true, "light": true, "notty": true}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Ollama: OllamaConfig{
			URL:   DefaultOllamaURL,
			Model: DefaultOllamaModel,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:5173",
			},
		},
		Client: ClientConfig{
			ProxyURL: DefaultProxyURL,
		},
		UI: UIConfig{
			Style:       DefaultStyle,
			ExportTheme: "dark",
		},
	}
}

// OllamaTimeout returns the upstream deadline, zero when unset.
func (c *Config) OllamaTimeout() time.Duration {
	return time.Duration(c.Ollama.Timeout) * time.Second
}

// ClientTimeout returns the per-send deadline, zero when unset.
func (c *Config) ClientTimeout() time.Duration {
	return time.Duration(c.Client.Timeout) * time.Second
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns ~/.neuralchat.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".neuralchat"), nil
}

// ConfigPathTOML returns the config file path. NEURALCHAT_CONFIG wins over
// the default location.
func ConfigPathTOML() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates ~/.neuralchat when missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads .env and .env.local from the working directory. Variables
// already present in the environment are never overwritten, and missing
// files are skipped.
func LoadDotEnv() error {
	return loadDotEnvFiles(DotEnvFiles...)
}

func loadDotEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load builds the configuration: defaults, then the TOML file when it
// exists, then environment overrides. The result is validated.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(path); statErr == nil {
		return LoadFromPath(path)
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads a specific TOML file over the defaults, applies
// environment overrides and validates.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes path into cfg. Keys absent from the file keep cfg's
// current values.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// SetDefaults fills fields that a config file left blank.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Ollama.URL == "" {
		c.Ollama.URL = d.Ollama.URL
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = d.Ollama.Model
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = d.Server.AllowedOrigins
	}
	if c.Client.ProxyURL == "" {
		c.Client.ProxyURL = d.Client.ProxyURL
	}
	if c.UI.Style == "" {
		c.UI.Style = d.UI.Style
	}
	if c.UI.ExportTheme == "" {
		c.UI.ExportTheme = d.UI.ExportTheme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML path.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# neuralchat configuration file\n")
	buf.WriteString("# Environment variables (OLLAMA_API_URL, OLLAMA_MODEL, NEURALCHAT_*) override these values.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, buf.Bytes(), 0644, 0755); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := validateHTTPURL(c.Ollama.URL); err != nil {
		errs = append(errs, ValidationError{Field: "ollama.url", Message: err.Error()})
	}
	if strings.TrimSpace(c.Ollama.Model) == "" {
		errs = append(errs, ValidationError{Field: "ollama.model", Message: "must not be empty"})
	}
	if c.Ollama.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "ollama.timeout", Message: fmt.Sprintf("must be >= 0, got %d", c.Ollama.Timeout)})
	}

	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		errs = append(errs, ValidationError{Field: "server.addr", Message: fmt.Sprintf("invalid address '%s': %v", c.Server.Addr, err)})
	}
	if c.Server.RateLimitPerMinute < 0 {
		errs = append(errs, ValidationError{Field: "server.rate_limit_per_minute", Message: fmt.Sprintf("must be >= 0, got %d", c.Server.RateLimitPerMinute)})
	}
	for _, origin := range c.Server.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if err := validateHTTPURL(origin); err != nil {
			errs = append(errs, ValidationError{Field: "server.allowed_origins", Message: fmt.Sprintf("'%s': %v", origin, err)})
		}
	}

	if err := validateHTTPURL(c.Client.ProxyURL); err != nil {
		errs = append(errs, ValidationError{Field: "client.proxy_url", Message: err.Error()})
	}
	if c.Client.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "client.timeout", Message: fmt.Sprintf("must be >= 0, got %d", c.Client.Timeout)})
	}

	if !validStyles[strings.ToLower(c.UI.Style)] {
		errs = append(errs, ValidationError{
			Field:   "ui.style",
			Message: fmt.Sprintf("invalid style '%s', must be one of: auto, dark, light, notty", c.UI.Style),
		})
	}

	if t := strings.ToLower(c.UI.ExportTheme); t != "dark" && t != "light" {
		errs = append(errs, ValidationError{
			Field:   "ui.export_theme",
			Message: fmt.Sprintf("invalid theme '%s', must be dark or light", c.UI.ExportTheme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateHTTPURL(raw string) error {
	if raw == "" {
		return errors.New("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got '%s'", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies non-empty environment variables on top of the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvOllamaURL); v != "" {
		c.Ollama.URL = v
	}
	if v := os.Getenv(EnvOllamaModel); v != "" {
		c.Ollama.Model = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvProxyURL); v != "" {
		c.Client.ProxyURL = v
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Server.AllowedOrigins != nil {
		clone.Server.AllowedOrigins = append([]string(nil), c.Server.AllowedOrigins...)
	}
	return &clone
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}
