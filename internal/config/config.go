// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Catalog  CatalogConfig
	App      AppConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	LogLevel       string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns URL when set, otherwise a postgres URL built from the parts.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

// Catalog sources accepted by CATALOG_SOURCE.
const (
	CatalogSourceStatic   = "static"
	CatalogSourceFile     = "file"
	CatalogSourceDatabase = "database"
	CatalogSourceS3       = "s3"
	CatalogSourceDrive    = "drive"
)

type CatalogConfig struct {
	Source string
	Paths  []string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
	S3Key       string
	S3UseSSL    bool

	DriveCredentialsJSON string
	DriveFileID          string
	DriveFolderPath      string
}

type AppConfig struct {
	ExportDir string
}

var (
	once     sync.Once
	instance *Config
)

// Load reads .env and the environment once and returns the shared config.
func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		v := viper.New()
		v.AutomaticEnv()
		instance = New(v)
	})

	return instance
}

// New builds a Config from v after applying defaults.
func New(v *viper.Viper) *Config {
	setDefaults(v)

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: splitList(v.GetStringSlice("SERVER_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Cache: CacheConfig{
			Enabled:          v.GetBool("CACHE_ENABLED"),
			RedisURL:         v.GetString("REDIS_URL"),
			RedisHost:        v.GetString("REDIS_HOST"),
			RedisPort:        v.GetString("REDIS_PORT"),
			RedisPassword:    v.GetString("REDIS_PASSWORD"),
			RedisDB:          v.GetInt("REDIS_DB"),
			ReportTTLSeconds: v.GetInt("CACHE_REPORT_TTL_SECONDS"),
		},
		Catalog: CatalogConfig{
			Source:               strings.ToLower(strings.TrimSpace(v.GetString("CATALOG_SOURCE"))),
			Paths:                splitList(v.GetStringSlice("CATALOG_PATHS")),
			S3Endpoint:           v.GetString("S3_ENDPOINT"),
			S3AccessKey:          v.GetString("S3_ACCESS_KEY"),
			S3SecretKey:          v.GetString("S3_SECRET_KEY"),
			S3Bucket:             v.GetString("S3_BUCKET"),
			S3Region:             v.GetString("S3_REGION"),
			S3Key:                v.GetString("S3_CATALOG_KEY"),
			S3UseSSL:             v.GetBool("S3_USE_SSL"),
			DriveCredentialsJSON: v.GetString("GOOGLE_CREDENTIALS_JSON"),
			DriveFileID:          v.GetString("DRIVE_CATALOG_FILE_ID"),
			DriveFolderPath:      v.GetString("DRIVE_CATALOG_FOLDER"),
		},
		App: AppConfig{
			ExportDir: v.GetString("APP_EXPORT_DIR"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "autoorder")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_REPORT_TTL_SECONDS", 60)
	v.SetDefault("CATALOG_SOURCE", CatalogSourceStatic)
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_USE_SSL", true)
	v.SetDefault("APP_EXPORT_DIR", "./data/exports")
}

// Validate checks that the selected catalog source has what it needs.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case CatalogSourceStatic, CatalogSourceDatabase:
		return nil
	case CatalogSourceFile:
		if len(c.Catalog.Paths) == 0 {
			return fmt.Errorf("catalog source %q requires CATALOG_PATHS", c.Catalog.Source)
		}
	case CatalogSourceS3:
		if c.Catalog.S3Endpoint == "" || c.Catalog.S3Bucket == "" || c.Catalog.S3Key == "" {
			return fmt.Errorf("catalog source %q requires S3_ENDPOINT, S3_BUCKET and S3_CATALOG_KEY", c.Catalog.Source)
		}
	case CatalogSourceDrive:
		if c.Catalog.DriveCredentialsJSON == "" {
			return fmt.Errorf("catalog source %q requires GOOGLE_CREDENTIALS_JSON", c.Catalog.Source)
		}
		if c.Catalog.DriveFileID == "" && c.Catalog.DriveFolderPath == "" {
			return fmt.Errorf("catalog source %q requires DRIVE_CATALOG_FILE_ID or DRIVE_CATALOG_FOLDER", c.Catalog.Source)
		}
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}
	return nil
}

// splitList accepts both repeated values and a single comma-separated env value.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
