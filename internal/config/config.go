package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/justyntemme/maskr/internal/tree"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	UI      UIConfig      `json:"ui"`
	Gallery GalleryConfig `json:"gallery"`
	Editor  EditorConfig  `json:"editor"`
	Export  ExportConfig  `json:"export"`
	Sources SourcesConfig `json:"sources"`
	Store   StoreConfig   `json:"store"`
	Hotkeys HotkeysConfig `json:"hotkeys"`
}

// UIConfig holds UI-related settings
type UIConfig struct {
	Theme     string `json:"theme"`     // "light" or "dark"
	RailWidth int    `json:"railWidth"` // Folder rail width in dp
}

// GalleryConfig holds gallery grid settings. The page size is fixed at 12
// and deliberately absent here.
type GalleryConfig struct {
	ColumnsPerRow      int      `json:"columnsPerRow"`
	ThumbnailSize      int      `json:"thumbnailSize"`      // Max thumbnail edge in pixels
	ThumbnailCacheSize int      `json:"thumbnailCacheSize"` // Number of thumbnails kept in memory
	InitialFolder      string   `json:"initialFolder"`
	Expanded           []string `json:"expanded"` // Folders expanded at startup
}

// EditorConfig holds mask editor settings
type EditorConfig struct {
	CanvasWidth  int     `json:"canvasWidth"`
	CanvasHeight int     `json:"canvasHeight"`
	BrushColor   string  `json:"brushColor"` // "#rrggbb"
	BrushWidth   float32 `json:"brushWidth"`
}

// ExportConfig holds mask export settings
type ExportConfig struct {
	Directory string `json:"directory"`
}

// SourcesConfig selects where the folder tree and image catalog come from.
// Empty values use the built-in mock data.
type SourcesConfig struct {
	TreeManifest    string `json:"treeManifest"`
	CatalogManifest string `json:"catalogManifest"`
	CatalogURL      string `json:"catalogURL"`
	FetchTimeoutSec int    `json:"fetchTimeoutSec"`
}

// StoreConfig holds database settings
type StoreConfig struct {
	Path string `json:"path"` // Empty keeps the database in memory for the session
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager reading from path.
// An empty path uses ConfigPath().
func NewManager(path string) *Manager {
	if path == "" {
		path = ConfigPath()
	}
	return &Manager{
		config: DefaultConfig(),
		path:   path,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		UI: UIConfig{
			Theme:     "light",
			RailWidth: 320,
		},
		Gallery: GalleryConfig{
			ColumnsPerRow:      3,
			ThumbnailSize:      320,
			ThumbnailCacheSize: 120,
			InitialFolder:      "/Photos",
			Expanded:           append([]string(nil), tree.MockExpanded...),
		},
		Editor: EditorConfig{
			CanvasWidth:  800,
			CanvasHeight: 600,
			BrushColor:   "#ff0000",
			BrushWidth:   3,
		},
		Export: ExportConfig{
			Directory: filepath.Join(home, "Downloads"),
		},
		Sources: SourcesConfig{
			FetchTimeoutSec: 20,
		},
		Hotkeys: DefaultHotkeys(),
	}
}

// ConfigPath returns the config file path: ~/.config/maskr/config.json
// This is consistent across all platforms (Windows, macOS, Linux)
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "maskr", "config.json")
}

// Path returns the file this manager reads and writes.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Load reads the configuration from the config file
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.parseErr = nil

	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Printf("Config: failed to create directory %s: %v", configDir, err)
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		log.Printf("Config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", m.path, err)
		return err
	}

	// Missing keys keep their defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Printf("Config: JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}
	cfg.normalize()

	log.Printf("Config: loaded from %s", m.path)
	m.config = cfg
	return nil
}

// normalize repairs values that would break the layout.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.UI.RailWidth <= 0 {
		c.UI.RailWidth = def.UI.RailWidth
	}
	if c.Gallery.ColumnsPerRow < 1 {
		c.Gallery.ColumnsPerRow = 1
	}
	if c.Gallery.ColumnsPerRow > 6 {
		c.Gallery.ColumnsPerRow = 6
	}
	if c.Gallery.ThumbnailSize <= 0 {
		c.Gallery.ThumbnailSize = def.Gallery.ThumbnailSize
	}
	if c.Gallery.ThumbnailCacheSize <= 0 {
		c.Gallery.ThumbnailCacheSize = def.Gallery.ThumbnailCacheSize
	}
	if c.Editor.CanvasWidth <= 0 || c.Editor.CanvasHeight <= 0 {
		c.Editor.CanvasWidth, c.Editor.CanvasHeight = def.Editor.CanvasWidth, def.Editor.CanvasHeight
	}
	if c.Editor.BrushWidth <= 0 {
		c.Editor.BrushWidth = def.Editor.BrushWidth
	}
	if c.Sources.FetchTimeoutSec <= 0 {
		c.Sources.FetchTimeoutSec = def.Sources.FetchTimeoutSec
	}
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// Override applies fn to the in-memory configuration without saving it.
// Command line flags use this so they never end up in config.json.
func (m *Manager) Override(fn func(*Config)) {
	m.mu.Lock()
	fn(m.config)
	m.config.normalize()
	m.mu.Unlock()
}

// SetTheme updates the theme setting
func (m *Manager) SetTheme(theme string) {
	m.mu.Lock()
	m.config.UI.Theme = theme
	m.mu.Unlock()
	m.Save()
}

// IsDarkMode returns true if dark mode is enabled
func (m *Manager) IsDarkMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.UI.Theme == "dark"
}

// GenerateConfig backs up the config at path (ConfigPath() when empty) and
// writes a fresh default config in its place.
// Returns the backup path if a backup was created, or empty string if no existing config
func GenerateConfig(path string) (backupPath string, err error) {
	configPath := path
	if configPath == "" {
		configPath = ConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil {
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(configPath), "config.backup."+timestamp+".json")

		data, err := os.ReadFile(configPath)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}

		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}

	return backupPath, nil
}
