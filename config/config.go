package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var defaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	APIBaseURL           string
	APITimeout           time.Duration
	APIRequestsPerMinute int

	ServerPort         int
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration

	// Пустая строка: архив расписаний отключён.
	DatabaseURL string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// ArchiveEnabled сообщает, настроена ли база данных.
func (c *Config) ArchiveEnabled() bool { return c.DatabaseURL != "" }

// R2Enabled сообщает, настроена ли загрузка экспортов.
func (c *Config) R2Enabled() bool { return c.R2AccountID != "" }

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv собирает конфигурацию через функцию поиска переменных. Load передает os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	baseURL := strings.TrimSpace(getenv("TOURNAMENT_API_BASE_URL"))
	if baseURL == "" {
		return nil, fmt.Errorf("TOURNAMENT_API_BASE_URL environment variable is not set")
	}
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid TOURNAMENT_API_BASE_URL %q", baseURL)
	}

	timeoutSec, err := intVar(getenv, "TOURNAMENT_API_TIMEOUT_SECONDS", 30, 1, 600)
	if err != nil {
		return nil, err
	}
	rpm, err := intVar(getenv, "TOURNAMENT_API_REQUESTS_PER_MINUTE", 600, 1, 1_000_000)
	if err != nil {
		return nil, err
	}
	port, err := intVar(getenv, "SERVER_PORT", 8080, 1, 65535)
	if err != nil {
		return nil, err
	}
	limit, err := intVar(getenv, "RATE_LIMIT_REQUESTS", 100, 1, 1_000_000)
	if err != nil {
		return nil, err
	}
	window, err := intVar(getenv, "RATE_LIMIT_WINDOW_SECONDS", 60, 1, 86400)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIBaseURL:           strings.TrimRight(baseURL, "/"),
		APITimeout:           time.Duration(timeoutSec) * time.Second,
		APIRequestsPerMinute: rpm,
		ServerPort:           port,
		CORSAllowedOrigins:   listVar(getenv("CORS_ALLOWED_ORIGINS"), defaultCORSOrigins),
		RateLimitRequests:    limit,
		RateLimitWindow:      time.Duration(window) * time.Second,
		DatabaseURL:          strings.TrimSpace(getenv("DATABASE_URL")),
		R2AccountID:          getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:        getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:    getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:         getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:      getenv("R2_PUBLIC_BASE_URL"),
	}

	if err := cfg.checkR2(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// R2 либо настроен полностью, либо не настроен вовсе.
func (c *Config) checkR2() error {
	vars := map[string]string{
		"R2_ACCOUNT_ID":        c.R2AccountID,
		"R2_ACCESS_KEY_ID":     c.R2AccessKeyID,
		"R2_SECRET_ACCESS_KEY": c.R2SecretAccessKey,
		"R2_BUCKET_NAME":       c.R2BucketName,
		"R2_PUBLIC_BASE_URL":   c.R2PublicBaseURL,
	}
	var set, missing []string
	for _, name := range []string{"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET_NAME", "R2_PUBLIC_BASE_URL"} {
		if vars[name] == "" {
			missing = append(missing, name)
		} else {
			set = append(set, name)
		}
	}
	if len(set) > 0 && len(missing) > 0 {
		return errors.New("incomplete R2 configuration, missing: " + strings.Join(missing, ", "))
	}
	return nil
}

func intVar(getenv func(string) string, name string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(getenv(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", name, lo, hi, v)
	}
	return v, nil
}

func listVar(raw string, def []string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
