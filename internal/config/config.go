package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything vitrine needs to reach a storefront and store
// local state.
type Config struct {
	ShopDomain      string
	APIVersion      string
	EndpointURL     string
	StorefrontToken string
	DataDir         string
	RequestTimeout  time.Duration
	PageSize        int
	LogLevel        string
	LogFormat       string
}

const (
	defaultConfigPath     = "~/.config/vitrine/config.toml"
	defaultDataDir        = "~/.local/share/vitrine"
	defaultAPIVersion     = "2023-07"
	defaultRequestTimeout = 10 * time.Second
	defaultPageSize       = 20
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"

	favoritesFile = "favorites.db"
	logFile       = "vitrine.log"
)

// Environment variables that override the config file.
const (
	EnvShopDomain      = "VITRINE_SHOP_DOMAIN"
	EnvStorefrontToken = "VITRINE_STOREFRONT_TOKEN"
	EnvEndpoint        = "VITRINE_ENDPOINT"
	EnvLogLevel        = "VITRINE_LOG_LEVEL"
)

// Load locates and parses the vitrine config, falling back to defaults when
// missing. A .env file in the working directory is loaded first; variables
// already present in the environment win over it, and both win over the file.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIVersion:     defaultAPIVersion,
		DataDir:        mustExpand(defaultDataDir),
		RequestTimeout: defaultRequestTimeout,
		PageSize:       defaultPageSize,
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ShopDomain      string `toml:"shop_domain"`
		APIVersion      string `toml:"api_version"`
		Endpoint        string `toml:"endpoint"`
		StorefrontToken string `toml:"storefront_token"`
		DataDir         string `toml:"data_dir"`
		TimeoutSeconds  int    `toml:"request_timeout_seconds"`
		PageSize        int    `toml:"page_size"`
		LogLevel        string `toml:"log_level"`
		LogFormat       string `toml:"log_format"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.ShopDomain = strings.TrimSpace(raw.ShopDomain)
	cfg.EndpointURL = strings.TrimSpace(raw.Endpoint)
	cfg.StorefrontToken = strings.TrimSpace(raw.StorefrontToken)
	if v := strings.TrimSpace(raw.APIVersion); v != "" {
		cfg.APIVersion = v
	}
	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}
	if raw.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if lvl := strings.TrimSpace(raw.LogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	if format := strings.TrimSpace(raw.LogFormat); format != "" {
		cfg.LogFormat = format
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvShopDomain)); v != "" {
		cfg.ShopDomain = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStorefrontToken)); v != "" {
		cfg.StorefrontToken = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		cfg.EndpointURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
}

// Endpoint returns the storefront GraphQL URL. An explicit endpoint wins over
// the shop domain.
func (c Config) Endpoint() (string, error) {
	if c.EndpointURL != "" {
		return c.EndpointURL, nil
	}
	domain := strings.TrimSpace(c.ShopDomain)
	if domain == "" {
		return "", fmt.Errorf("shop_domain or endpoint is required")
	}
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	version := c.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	return strings.TrimRight(domain, "/") + "/api/" + version + "/graphql.json", nil
}

// FavoritesPath returns the path of the wishlist database.
func (c Config) FavoritesPath() string {
	return filepath.Join(c.dataDir(), favoritesFile)
}

// LogPath returns the path of the application log file.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), logFile)
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
