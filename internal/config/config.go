package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bryanchriswhite/snapsource/internal/logger"
	"github.com/bryanchriswhite/snapsource/internal/source"
)

// Config holds the engine and server settings.
type Config struct {
	ServerPort int    `json:"server_port" yaml:"server_port"`
	LogLevel   string `json:"log_level" yaml:"log_level"`

	// CaptureTimeoutMS bounds a single blocking capture round-trip.
	CaptureTimeoutMS int `json:"capture_timeout_ms" yaml:"capture_timeout_ms"`

	// StreamFPS is the frame rate of the websocket snapshot stream.
	StreamFPS int `json:"stream_fps" yaml:"stream_fps"`

	// ThumbnailSize and IconSize are the default extraction sizes used when
	// a caller requests previews without explicit dimensions.
	ThumbnailSize source.Size `json:"thumbnail_size" yaml:"thumbnail_size"`
	IconSize      source.Size `json:"icon_size" yaml:"icon_size"`
}

// CaptureTimeout returns the capture timeout as a duration.
func (c *Config) CaptureTimeout() time.Duration {
	if c.CaptureTimeoutMS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.CaptureTimeoutMS) * time.Millisecond
}

// Manager handles configuration loading and persistence.
type Manager struct {
	configPath string
	config     *Config
	mu         sync.RWMutex
}

// NewManager loads the config file, creating it with defaults when missing.
// An empty configFile selects $HOME/.config/snapsource/config.yaml.
func NewManager(configFile string) (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "snapsource")
	actualConfigPath := filepath.Join(configDir, "config.yaml")
	if configFile != "" {
		actualConfigPath = configFile
	} else if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	m := &Manager{configPath: actualConfigPath}

	if err := m.load(); err != nil {
		if os.IsNotExist(err) {
			logger.WithComponent("config").Info().
				Str("path", m.configPath).
				Msg("Config file not found, creating new config")
			m.config = Defaults()
			if err := m.Save(); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	logger.WithComponent("config").Debug().
		Str("path", m.configPath).
		Msg("Config loaded")

	return m, nil
}

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		ServerPort:       8080,
		LogLevel:         "info",
		CaptureTimeoutMS: 5000,
		StreamFPS:        10,
		ThumbnailSize:    source.Size{Width: 160, Height: 120},
		IconSize:         source.Size{Width: 32, Height: 32},
	}
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	return nil
}

// Save writes the configuration to disk.
func (m *Manager) Save() error {
	m.mu.RLock()
	cfg := m.config
	m.mu.RUnlock()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return Defaults()
	}
	cfg := *m.config
	return &cfg
}

// GetConfigPath returns the path to the configuration file.
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// SetPort overrides the server port.
func (m *Manager) SetPort(port int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.ServerPort = port
}

// SetLogLevel overrides the log level.
func (m *Manager) SetLogLevel(level string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.LogLevel = level
}
