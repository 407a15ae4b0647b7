package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the env file loaded before reading the environment.
const DefaultEnvFile = "config/config.env"

type Config struct {
	// Application
	Env       string
	Port      string
	PublicDir string

	// Database (driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Request pipeline
	JSONBodyLimit   int64
	UploadLimit     int64
	RateLimitWindow time.Duration
	RateLimitMax    int
	TrustProxy      bool
	HPPWhitelist    []string

	// Uploads
	MaxFileUpload  int64
	FileUploadPath string
	StorageDriver  string // "local" or "s3"

	// Security
	JWTSecret       string
	JWTExpire       time.Duration
	JWTCookieExpire time.Duration

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible, only used when StorageDriver is "s3")
	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string
	S3PresignTTL time.Duration
}

// Load reads the env file (if present) and then the process environment.
// Values already set in the environment take precedence over the file.
func Load() (*Config, error) {
	path := envString("CONFIG_FILE", DefaultEnvFile)
	err := godotenv.Load(path)
	if err != nil {
		slog.Info("no env file found, using environment variables", "path", path)
	}

	var problems []error
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			problems = append(problems, fmt.Errorf("config: required env var %s is missing", key))
		}
		return v
	}

	cfg := &Config{
		Env:       envString("NODE_ENV", ""),
		Port:      required("PORT"),
		PublicDir: envString("PUBLIC_DIR", "public"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/devcamper.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		JSONBodyLimit:   envInt64("JSON_BODY_LIMIT", 100<<10), // 100kb
		UploadLimit:     envInt64("UPLOAD_LIMIT", 10<<20),
		RateLimitWindow: envDuration("RATE_LIMIT_WINDOW", 10*time.Minute),
		RateLimitMax:    int(envInt64("RATE_LIMIT_MAX", 100)),
		TrustProxy:      envBool("TRUST_PROXY", false),
		HPPWhitelist:    envList("HPP_WHITELIST"),

		MaxFileUpload:  envInt64("MAX_FILE_UPLOAD", 1000000),
		FileUploadPath: envString("FILE_UPLOAD_PATH", "./public/uploads"),
		StorageDriver:  envString("STORAGE_DRIVER", "local"),

		JWTSecret:       required("JWT_SECRET"),
		JWTExpire:       envDuration("JWT_EXPIRE", 30*24*time.Hour),
		JWTCookieExpire: envDuration("JWT_COOKIE_EXPIRE", 30*24*time.Hour),

		SentryDSN: envString("SENTRY_DSN", ""),

		S3Region:     envString("S3_REGION", ""),
		S3Bucket:     envString("S3_BUCKET", ""),
		S3AccessKey:  envString("S3_ACCESS_KEY", ""),
		S3SecretKey:  envString("S3_SECRET_KEY", ""),
		S3Endpoint:   envString("S3_ENDPOINT", ""),
		S3PresignTTL: envDuration("S3_PRESIGN_TTL", 168*time.Hour),
	}

	if cfg.RateLimitWindow <= 0 {
		problems = append(problems, fmt.Errorf("config: RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimitWindow))
	}
	if cfg.RateLimitMax <= 0 {
		problems = append(problems, fmt.Errorf("config: RATE_LIMIT_MAX must be positive, got %d", cfg.RateLimitMax))
	}

	if cfg.StorageDriver == "s3" {
		required("S3_REGION")
		required("S3_BUCKET")
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}

	return cfg, nil
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("config invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
