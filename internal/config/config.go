package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// HTTP timeout for each Last.fm request
	HTTPTimeout time.Duration

	// Attempts per request for temporary failures (1 disables retrying)
	MaxRetries int

	// Directory holding the tag store database
	// Default: ~/.local/share/lfm
	DataDir string

	// Default log level (debug, info, warn, error)
	LogLevel string

	Search SearchConfig
	Tags   TagsConfig
	Now    NowConfig

	// Last.fm API credentials
	LastFM LastFMConfig
}

// SearchConfig holds search defaults
type SearchConfig struct {
	PageSize int
}

// TagsConfig holds tag reconciliation settings
type TagsConfig struct {
	// Compare tags case-insensitively when reconciling
	FoldCase bool
}

// NowConfig holds output settings for the now command
type NowConfig struct {
	// Go template over the playing track. Fields: .Artist, .Name, .Album
	Format string

	// Fixed display width (0 = disabled)
	Width int
}

// LastFMConfig holds Last.fm specific configuration
type LastFMConfig struct {
	APIKey     string
	APISecret  string
	SessionKey string

	// Name of the authenticated user, the default for user commands
	Username string
}

// Load reads configuration from file and environment.
//
// A .env file in the working directory is loaded into the environment
// first; variables already set win. A missing .env is fine, a malformed
// one is an error. Environment variables use the LFM_
// prefix with dots replaced by underscores, e.g. LFM_LASTFM_API_KEY.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getConfigDir())
	v.AddConfigPath(".")

	setDefaults(v)

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	v.SetEnvPrefix("LFM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v), nil
}

// setDefaults registers every key, which also lets AutomaticEnv see keys
// that appear in no config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("http_timeout", "30s")
	v.SetDefault("max_retries", 3)
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("log_level", "info")
	v.SetDefault("search.page_size", 30)
	v.SetDefault("tags.fold_case", false)
	v.SetDefault("now.format", "{{.Artist}} - {{.Name}}")
	v.SetDefault("now.width", 0)
	v.SetDefault("lastfm.api_key", "")
	v.SetDefault("lastfm.api_secret", "")
	v.SetDefault("lastfm.session_key", "")
	v.SetDefault("lastfm.username", "")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		HTTPTimeout: v.GetDuration("http_timeout"),
		MaxRetries:  v.GetInt("max_retries"),
		DataDir:     v.GetString("data_dir"),
		LogLevel:    v.GetString("log_level"),
		Search: SearchConfig{
			PageSize: v.GetInt("search.page_size"),
		},
		Tags: TagsConfig{
			FoldCase: v.GetBool("tags.fold_case"),
		},
		Now: NowConfig{
			Format: v.GetString("now.format"),
			Width:  v.GetInt("now.width"),
		},
		LastFM: LastFMConfig{
			APIKey:     v.GetString("lastfm.api_key"),
			APISecret:  v.GetString("lastfm.api_secret"),
			SessionKey: v.GetString("lastfm.session_key"),
			Username:   v.GetString("lastfm.username"),
		},
	}
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "lfm")
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share", "lfm")
}

// Save writes configuration to config.yaml in the configuration directory
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(getConfigDir(), "config.yaml"))
}

// SaveTo writes configuration to path
func (c *Config) SaveTo(path string) error {
	v := viper.New()

	v.Set("http_timeout", c.HTTPTimeout.String())
	v.Set("max_retries", c.MaxRetries)
	v.Set("data_dir", c.DataDir)
	v.Set("log_level", c.LogLevel)
	v.Set("search.page_size", c.Search.PageSize)
	v.Set("tags.fold_case", c.Tags.FoldCase)
	v.Set("now.format", c.Now.Format)
	v.Set("now.width", c.Now.Width)
	v.Set("lastfm.api_key", c.LastFM.APIKey)
	v.Set("lastfm.api_secret", c.LastFM.APISecret)
	v.Set("lastfm.session_key", c.LastFM.SessionKey)
	v.Set("lastfm.username", c.LastFM.Username)

	return v.WriteConfigAs(path)
}

// LoadFrom reads configuration from a single file without consulting the
// environment. Missing keys take their defaults.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return fromViper(v), nil
}
