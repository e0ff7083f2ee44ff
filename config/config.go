package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

var DB *gorm.DB

// JWTSecret used to sign tokens, read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "restaurant_super_secret_2024"))

var (
	AccessTokenTTL  = 60 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type Config struct {
	Port     string        `yaml:"port"`
	GinMode  string        `yaml:"gin_mode"`
	LogLevel string        `yaml:"log_level"`
	SeedMenu bool          `yaml:"seed_menu"`
	DB       DBConfig      `yaml:"database"`
	JWT      JWTConfig     `yaml:"jwt"`
	Admin    AdminSeed     `yaml:"admin"`
	CORS     CORSConfig    `yaml:"cors"`
	Storage  StorageConfig `yaml:"storage"`
}

type DBConfig struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	Source string `yaml:"source"` // file path or DSN
}

type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	AccessTTL  time.Duration `yaml:"access_ttl"`
	RefreshTTL time.Duration `yaml:"refresh_ttl"`
}

type AdminSeed struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type StorageConfig struct {
	Driver    string `yaml:"driver"` // local or s3
	UploadDir string `yaml:"upload_dir"`
	PublicURL string `yaml:"public_url"`
	S3Bucket  string `yaml:"s3_bucket"`
	S3Region  string `yaml:"s3_region"`
}

func Defaults() *Config {
	return &Config{
		Port:     "8000",
		GinMode:  "debug",
		LogLevel: "info",
		DB:       DBConfig{Driver: "sqlite", Source: "restaurant.db"},
		JWT: JWTConfig{
			Secret:     string(JWTSecret),
			AccessTTL:  AccessTokenTTL,
			RefreshTTL: RefreshTokenTTL,
		},
		CORS:    CORSConfig{AllowOrigins: []string{"*"}},
		Storage: StorageConfig{Driver: "local", UploadDir: "uploads", PublicURL: "/uploads"},
	}
}

// Load reads CONFIG_FILE (default config.yaml) and .env when present, then
// applies process environment overrides.
func Load() (*Config, error) {
	return LoadFrom(getEnv("CONFIG_FILE", "config.yaml"), ".env")
}

func LoadFrom(yamlPath, envPath string) (*Config, error) {
	cfg := Defaults()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", yamlPath, err)
			}
		}
	}

	if envPath != "" {
		// godotenv never overrides variables already set in the process
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.DB.Driver = getEnv("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.Source = getEnv("DB_SOURCE", cfg.DB.Source)
	cfg.JWT.Secret = getEnv("JWT_SECRET", cfg.JWT.Secret)
	cfg.Admin.Email = getEnv("ADMIN_EMAIL", cfg.Admin.Email)
	cfg.Admin.Password = getEnv("ADMIN_PASSWORD", cfg.Admin.Password)
	cfg.Storage.Driver = getEnv("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.UploadDir = getEnv("UPLOAD_DIR", cfg.Storage.UploadDir)
	cfg.Storage.PublicURL = getEnv("STORAGE_PUBLIC_URL", cfg.Storage.PublicURL)
	cfg.Storage.S3Bucket = getEnv("S3_BUCKET", cfg.Storage.S3Bucket)
	cfg.Storage.S3Region = getEnv("S3_REGION", getEnv("AWS_REGION", cfg.Storage.S3Region))

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORS.AllowOrigins = splitList(v)
	}
	if v := os.Getenv("SEED_MENU"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SEED_MENU %q: %w", v, err)
		}
		cfg.SeedMenu = b
	}
	for key, dst := range map[string]*time.Duration{
		"JWT_ACCESS_TTL":  &cfg.JWT.AccessTTL,
		"JWT_REFRESH_TTL": &cfg.JWT.RefreshTTL,
	} {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", key, v, err)
			}
			*dst = d
		}
	}
	return nil
}

// Apply publishes the token settings used by the auth middleware.
func Apply(cfg *Config) {
	JWTSecret = []byte(cfg.JWT.Secret)
	AccessTokenTTL = cfg.JWT.AccessTTL
	RefreshTokenTTL = cfg.JWT.RefreshTTL
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
