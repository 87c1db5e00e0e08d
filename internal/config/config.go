package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName = "mediacenter"

	defaultMaxTabs           = 4
	defaultArtSize           = 256
	defaultBottomPadding     = 2
	defaultTitle             = "Media"
	defaultNotificationTitle = "Connecting to media source"
)

type Config struct {
	Icons string `koanf:"icons"` // "nerd", "unicode", or "none"

	// Application bar
	MaxTabs                     *int   `koanf:"max_tabs"`                         // default: 4
	UseSourceLogoForAppSelector bool   `koanf:"use_source_logo_for_app_selector"` // logo on the app selector item instead of the toolbar
	ShowSoundSettings           bool   `koanf:"show_sound_settings"`              // show the equalizer item
	MediaItemsBitmapMaxSizePx   int    `koanf:"media_items_bitmap_max_size_px"`   // default: 256
	BrowseBottomPadding         *int   `koanf:"browse_bottom_padding"`            // lines reserved for the mini bar (default: 2)
	DefaultTitle                string `koanf:"default_title"`                    // title when no source is selected
	MenuFile                    string `koanf:"menu_file"`                        // overrides the built-in browse menu

	AppSelector  CommandConfig      `koanf:"app_selector"`
	Equalizer    CommandConfig      `koanf:"equalizer"`
	Notification NotificationConfig `koanf:"notification"`
	Logging      LoggingConfig      `koanf:"logging"`
}

// CommandConfig configures an external program.
type CommandConfig struct {
	Command string `koanf:"command"`
}

// NotificationConfig configures the connector's notification.
type NotificationConfig struct {
	Title string `koanf:"title"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/mediacenter/mediacenter.log
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
}

func Load() (*Config, error) {
	return load(getConfigPaths())
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Later files win.
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.MenuFile = expandPath(cfg.MenuFile)
	cfg.Logging.File = expandPath(cfg.Logging.File)

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetMaxTabs returns the maximum number of tabs. Zero disables tabs.
func (c *Config) GetMaxTabs() int {
	if c.MaxTabs == nil || *c.MaxTabs < 0 {
		return defaultMaxTabs
	}
	return *c.MaxTabs
}

// GetArtSize returns the maximum artwork edge in pixels.
func (c *Config) GetArtSize() int {
	if c.MediaItemsBitmapMaxSizePx <= 0 {
		return defaultArtSize
	}
	return c.MediaItemsBitmapMaxSizePx
}

// GetBottomPadding returns the padding kept free for the mini bar.
func (c *Config) GetBottomPadding() int {
	if c.BrowseBottomPadding == nil || *c.BrowseBottomPadding < 0 {
		return defaultBottomPadding
	}
	return *c.BrowseBottomPadding
}

// GetDefaultTitle returns the bar title used when no source is selected.
func (c *Config) GetDefaultTitle() string {
	if t := strings.TrimSpace(c.DefaultTitle); t != "" {
		return t
	}
	return defaultTitle
}

// GetNotificationTitle returns the connector notification title.
func (c *Config) GetNotificationTitle() string {
	if t := strings.TrimSpace(c.Notification.Title); t != "" {
		return t
	}
	return defaultNotificationTitle
}

// HasAppSelector returns true if an app selector command is configured.
func (c *Config) HasAppSelector() bool {
	return strings.TrimSpace(c.AppSelector.Command) != ""
}

// LogFile returns the log file path.
func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}
