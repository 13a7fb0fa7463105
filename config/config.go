package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"flowai-dashboard/utils"
)

// Config is everything the dashboard reads from the environment (after godotenv.Load).
type Config struct {
	BackendURL     string
	BackendTimeout time.Duration

	DashboardAddr  string
	DashboardToken string
	AllowedOrigins string

	AutoWorkInterval time.Duration
	AutoStart        bool

	DefaultLanguage string
	DefaultSort     string
	TitlesFile      string
	ASCIILog        bool

	DatabaseURL string
	DataDir     string

	R2 utils.R2Settings
}

const (
	DefaultBackendURL       = "http://localhost:8000"
	DefaultDashboardAddr    = ":5300"
	DefaultAutoWorkInterval = 30 * time.Second
)

// Load builds a Config from environment variables, applying defaults.
func Load() (*Config, error) {
	home, _ := os.UserHomeDir()

	cfg := &Config{
		BackendURL:       strings.TrimRight(utils.EnvOrDefault("BACKEND_URL", DefaultBackendURL), "/"),
		BackendTimeout:   utils.EnvDuration("BACKEND_TIMEOUT", 0),
		DashboardAddr:    utils.EnvOrDefault("DASHBOARD_ADDR", DefaultDashboardAddr),
		DashboardToken:   os.Getenv("DASHBOARD_TOKEN"),
		AllowedOrigins:   utils.EnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000"),
		AutoWorkInterval: utils.EnvDuration("AUTO_WORK_INTERVAL", DefaultAutoWorkInterval),
		AutoStart:        utils.EnvBool("AUTO_WORK_START", false),
		DefaultLanguage:  utils.EnvOrDefault("DEFAULT_LANGUAGE", "zh"),
		DefaultSort:      utils.EnvOrDefault("DEFAULT_SORT", "default"),
		TitlesFile:       os.Getenv("TASK_TITLES_FILE"),
		ASCIILog:         utils.EnvBool("ASCII_LOG", false),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DataDir:          utils.EnvOrDefault("DATA_DIR", utils.GetDataPath(home, ".flowai-dashboard")),
		R2: utils.R2Settings{
			AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			AccessKeySecret: os.Getenv("R2_ACCESS_KEY_SECRET"),
			Bucket:          os.Getenv("R2_BUCKET_NAME"),
			CDNBaseURL:      os.Getenv("CDN_BASE_URL"),
			Endpoint:        os.Getenv("R2_ENDPOINT"),
		},
	}

	if !strings.HasPrefix(cfg.BackendURL, "http://") && !strings.HasPrefix(cfg.BackendURL, "https://") {
		return nil, fmt.Errorf("BACKEND_URL must be an http(s) URL, got %q", cfg.BackendURL)
	}
	if cfg.AutoWorkInterval <= 0 {
		return nil, fmt.Errorf("AUTO_WORK_INTERVAL must be positive, got %s", cfg.AutoWorkInterval)
	}
	return cfg, nil
}

// Origins splits ALLOWED_ORIGINS and rejoins it the way fiber's CORS config expects.
func (c *Config) Origins() string {
	parts := strings.Split(c.AllowedOrigins, ",")
	for i, origin := range parts {
		parts[i] = strings.TrimSpace(origin)
	}
	return strings.Join(parts, ",")
}
