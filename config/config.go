package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-faster/errors"
	"github.com/pelletier/go-toml/v2"

	"tgsheet/log"
)

// ApplicationName selects the XDG sub-directories used for config and state.
const ApplicationName = "tgsheet"

const ConfigFileName = "config.toml"

// Sheet defaults.
const (
	DefaultHideByScrollBorderDp = 150
	DefaultContentOffsetPercent = 40
	DefaultAnimationFPS         = 60
)

// GetConfigDir returns the path to the application's configuration directory.
func GetConfigDir() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(ApplicationName, ConfigFileName))
	if err != nil {
		return "", errors.Wrap(err, "resolve config directory")
	}
	return filepath.Dir(path), nil
}

// Config represents the application configuration.
type Config struct {
	// StateDirectory holds the Telegram session and the dialog cache.
	StateDirectory string `toml:"state_directory"`
	// Telegram holds API credentials from https://my.telegram.org.
	Telegram TelegramConfig `toml:"telegram"`
	// Sheet tunes the bottom sheet.
	Sheet SheetConfig `toml:"sheet"`
}

// TelegramConfig contains the MTProto credentials.
type TelegramConfig struct {
	PhoneNumber string `toml:"phone_number"`
	AppID       int    `toml:"app_id"`
	AppHash     string `toml:"app_hash"`
}

// Configured reports whether enough credentials are present to connect.
func (t TelegramConfig) Configured() bool {
	return t.AppID != 0 && t.AppHash != "" && t.PhoneNumber != ""
}

// SheetConfig controls bottom sheet geometry and behaviour.
type SheetConfig struct {
	// HideByScroll lets a drag past the header dismiss the sheet.
	HideByScroll bool `toml:"hide_by_scroll"`
	// ContentOffsetPercent is the resting gap above the content, as a
	// percentage of the sheet height.
	ContentOffsetPercent int `toml:"content_offset_percent"`
	// HideByScrollBorderDp is the minimum visible content below which a
	// scroll past the header dismisses instead of snapping back.
	HideByScrollBorderDp int `toml:"hide_by_scroll_border_dp"`
	// HeaderRows overrides the header height; 0 picks one from the
	// terminal size.
	HeaderRows int `toml:"header_rows"`
	// ComposerRows is the space the message composer takes at the bottom.
	ComposerRows int `toml:"composer_rows"`
	// AnimationFPS is the frame rate of sheet animations.
	AnimationFPS int `toml:"animation_fps"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		StateDirectory: filepath.Join(xdg.StateHome, ApplicationName),
		Sheet: SheetConfig{
			HideByScroll:         false,
			ContentOffsetPercent: DefaultContentOffsetPercent,
			HideByScrollBorderDp: DefaultHideByScrollBorderDp,
			ComposerRows:         1,
			AnimationFPS:         DefaultAnimationFPS,
		},
	}
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.StateDirectory == "" {
		c.StateDirectory = def.StateDirectory
	}
	if c.Sheet.ContentOffsetPercent <= 0 || c.Sheet.ContentOffsetPercent >= 100 {
		c.Sheet.ContentOffsetPercent = def.Sheet.ContentOffsetPercent
	}
	if c.Sheet.HideByScrollBorderDp <= 0 {
		c.Sheet.HideByScrollBorderDp = def.Sheet.HideByScrollBorderDp
	}
	if c.Sheet.AnimationFPS <= 0 {
		c.Sheet.AnimationFPS = def.Sheet.AnimationFPS
	}
	if c.Sheet.ComposerRows < 0 {
		c.Sheet.ComposerRows = 0
	}
	if c.Sheet.HeaderRows < 0 {
		c.Sheet.HeaderRows = 0
	}
}

// LoadConfig reads the config from the XDG config directory, creating it
// with defaults on first run. Errors are logged and defaults returned.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}
	return LoadConfigFrom(filepath.Join(configDir, ConfigFileName))
}

// LoadConfigFrom reads the config at configPath.
func LoadConfigFrom(configPath string) *Config {
	var data []byte
	err := withReadLock(configPath, func() (err error) {
		data, err = os.ReadFile(configPath)
		return err
	})
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := SaveConfigTo(configPath, defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		log.ErrorLog.Printf("failed to parse config file at %s: %v", configPath, err)

		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0o600); backupErr == nil {
			log.InfoLog.Printf("backed up corrupted config to: %s", backupPath)
		}
		return DefaultConfig()
	}

	cfg.normalize()
	return cfg
}

// SaveConfig writes the config to the XDG config directory.
func SaveConfig(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return SaveConfigTo(filepath.Join(configDir, ConfigFileName), cfg)
}

// SaveConfigTo writes the config to configPath.
func SaveConfigTo(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return withLock(configPath, func() error {
		// The file carries the app hash.
		if err := os.WriteFile(configPath, data, 0o600); err != nil {
			return errors.Wrap(err, "write config file")
		}
		return nil
	})
}
