package config

import (
	"os"
	"strings"

	"github.com/spf13/cast"
)

// Config is resolved once at startup and passed explicitly to whatever
// needs it; no handler reads the environment at call time.
type Config struct {
	Port          string
	StorageDriver string // "local" or "db"
	DataDir       string
	PublicBaseURL string
	CORSOrigins   []string

	// Upload cap for logo data URLs, in bytes.
	MaxUploadBytes int64
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Load reads the process environment into a Config.
func Load() *Config {
	driver := strings.ToLower(envOrDefault("STORAGE_DRIVER", "local"))
	if driver != "db" {
		driver = "local"
	}

	maxUpload := cast.ToInt64(envOrDefault("MAX_UPLOAD_BYTES", ""))
	if maxUpload <= 0 {
		maxUpload = 25 << 20
	}

	return &Config{
		Port:           envOrDefault("PORT", "8080"),
		StorageDriver:  driver,
		DataDir:        envOrDefault("DATA_DIR", "./data"),
		PublicBaseURL:  strings.TrimRight(envOrDefault("PUBLIC_BASE_URL", ""), "/"),
		CORSOrigins:    parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		MaxUploadBytes: maxUpload,
	}
}
