package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	LogLevel   string

	DBDriver   string
	MySQLDSN   string
	SQLitePath string
	ResetDB    bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret           string
	SessionCookieSecure bool

	SUAPClientID     string
	SUAPClientSecret string
	SUAPRedirectURI  string
	SUAPAuthURL      string
	SUAPTokenURL     string
	SUAPAPIURL       string

	UploadBackend string
	UploadDir     string
	UploadBaseURL string
	MaxUploadMB   int
	S3Bucket      string
	S3Region      string
	S3Endpoint    string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/ifnexus?charset=utf8mb4&parseTime=True&loc=Local"),
		SQLitePath: getEnv("SQLITE_PATH", "ifnexus.db"),
		ResetDB:    getEnvBool("RESET_DB", false),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:           getEnv("JWT_SECRET", "change-me"),
		SessionCookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),

		SUAPClientID:     os.Getenv("SUAP_CLIENT_ID"),
		SUAPClientSecret: os.Getenv("SUAP_CLIENT_SECRET"),
		SUAPRedirectURI:  getEnv("SUAP_REDIRECT_URI", "http://localhost:8080/callback_suap"),
		SUAPAuthURL:      getEnv("SUAP_AUTH_URL", "https://suap.ifrn.edu.br/o/authorize/"),
		SUAPTokenURL:     getEnv("SUAP_TOKEN_URL", "https://suap.ifrn.edu.br/o/token/"),
		SUAPAPIURL:       getEnv("SUAP_API_URL", "https://suap.ifrn.edu.br/api/eu/"),

		UploadBackend: strings.ToLower(getEnv("UPLOAD_BACKEND", "local")),
		UploadDir:     getEnv("UPLOAD_DIR", "static"),
		UploadBaseURL: getEnv("UPLOAD_BASE_URL", "/"),
		MaxUploadMB:   getEnvInt("MAX_UPLOAD_MB", 16),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	return c.MySQLDSN
}

// MaxUploadBytes is the request body limit for multipart uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1000 * 1000
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
