// Package config
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Address   string
	Mode      string
	Interval  time.Duration
	LogLevel  string
	LogFormat string

	SysfsRoot       string
	CatalogFile     string
	CacheTTL        time.Duration
	LoadMinInterval time.Duration
	CommandTimeout  time.Duration
	OutputFormat    string

	JWTSecret      string
	JWTExpiry      time.Duration
	APIKeyHash     string
	AllowedOrigins []string

	HistoryDB        string
	HistoryRetention time.Duration
}

const (
	ModeServe    = "serve"
	ModeStream   = "stream"
	ModeSnapshot = "snapshot"
)

const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

func Load() *Config {
	godotenv.Load()

	mode := strings.ToLower(getString("SOCPROBE_MODE", ModeSnapshot))
	switch mode {
	case ModeServe, ModeStream, ModeSnapshot:
	default:
		mode = ModeSnapshot
	}

	format := strings.ToLower(getString("OUTPUT_FORMAT", FormatJSON))
	if format != FormatCBOR {
		format = FormatJSON
	}

	return &Config{
		Address:   getString("HTTP_ADDR", ":3000"),
		Mode:      mode,
		Interval:  getDuration("SAMPLE_INTERVAL", time.Second),
		LogLevel:  getString("LOG_LEVEL", "info"),
		LogFormat: getString("LOG_FORMAT", "text"),

		SysfsRoot:       getString("SYSFS_ROOT", "/"),
		CatalogFile:     os.Getenv("CATALOG_FILE"),
		CacheTTL:        getDuration("CACHE_TTL", 500*time.Millisecond),
		LoadMinInterval: getDuration("LOAD_MIN_INTERVAL", 100*time.Millisecond),
		CommandTimeout:  getDuration("COMMAND_TIMEOUT", 2*time.Second),
		OutputFormat:    format,

		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiry:      getDuration("JWT_EXPIRY", 24*time.Hour),
		APIKeyHash:     os.Getenv("API_KEY_HASH"),
		AllowedOrigins: getList("ALLOWED_ORIGINS"),

		HistoryDB:        os.Getenv("HISTORY_DB"),
		HistoryRetention: getDuration("HISTORY_RETENTION", 7*24*time.Hour),
	}
}

// AuthEnabled reports whether the HTTP API requires a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getList(key string) []string {
	arr := []string{}
	for s := range strings.SplitSeq(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			arr = append(arr, s)
		}
	}
	return arr
}
