package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultBackendURL is the external REST backend every proxy route forwards to.
const DefaultBackendURL = "https://music-minds-backend.onrender.com"

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`
	CookieSecure      bool   `mapstructure:"COOKIE_SECURE"`

	// Upstream backend.
	BackendURL             string `mapstructure:"BACKEND_URL"`
	BackendTimeoutSeconds  int    `mapstructure:"BACKEND_TIMEOUT_SECONDS"`
	ExportPath             string `mapstructure:"EXPORT_PATH"`
	SessionPath            string `mapstructure:"SESSION_PATH"`
	ExportFetchConcurrency int    `mapstructure:"EXPORT_FETCH_CONCURRENCY"`

	// Download relay.
	DownloadAllowedHosts string `mapstructure:"DOWNLOAD_ALLOWED_HOSTS"`
	DownloadMaxBytes     int64  `mapstructure:"DOWNLOAD_MAX_BYTES"`

	// Redis configuration.
	RedisEnabled   bool   `mapstructure:"REDIS_ENABLED"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	HealthIntervalSeconds int `mapstructure:"HEALTH_INTERVAL_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables still win.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// No default for COOKIE_SECURE: unset means "secure in production".
	if viper.IsSet("COOKIE_SECURE") {
		AppConfig.CookieSecure = viper.GetBool("COOKIE_SECURE")
	} else {
		AppConfig.CookieSecure = IsProduction()
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("BACKEND_URL", DefaultBackendURL)
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 30)
	viper.SetDefault("EXPORT_PATH", "/api/exports")
	viper.SetDefault("SESSION_PATH", "/api/auth/me")
	viper.SetDefault("EXPORT_FETCH_CONCURRENCY", 4)
	viper.SetDefault("DOWNLOAD_ALLOWED_HOSTS", "")
	viper.SetDefault("DOWNLOAD_MAX_BYTES", int64(100<<20))
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("HEALTH_INTERVAL_SECONDS", 60)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// BackendURL returns the upstream base without a trailing slash. Every route resolves
// the backend through here.
func BackendURL() string {
	u := strings.TrimSpace(AppConfig.BackendURL)
	if u == "" {
		u = DefaultBackendURL
	}
	return strings.TrimRight(u, "/")
}

// BackendTimeout is the per-request deadline applied to upstream calls.
func BackendTimeout() time.Duration {
	if AppConfig.BackendTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(AppConfig.BackendTimeoutSeconds) * time.Second
}

func HealthInterval() time.Duration {
	if AppConfig.HealthIntervalSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(AppConfig.HealthIntervalSeconds) * time.Second
}

// AllowedOrigins splits the comma-separated origin list. CORS with credentials
// needs at least one explicit origin.
func AllowedOrigins() []string {
	origins := splitCSV(AppConfig.AllowedOrigins)
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}

// DownloadHosts returns the hosts the download relay may fetch from. Empty means any.
func DownloadHosts() []string {
	return splitCSV(AppConfig.DownloadAllowedHosts)
}

func splitCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
