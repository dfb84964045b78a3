package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	DriverFile  = "file"
	DriverMongo = "mongo"

	StorageLocal = "local"
	StorageGCS   = "gcs"
	StorageR2    = "r2"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBDriver     string `envconfig:"DB_DRIVER" default:"file"`
	DBPath       string `envconfig:"DB_PATH" default:"data/db.json"`
	MongoURI     string `envconfig:"MONGODB_URI"`
	DatabaseName string `envconfig:"DATABASE_NAME" default:"rental"`

	StorageDriver   string `envconfig:"STORAGE_DRIVER" default:"local"`
	UploadDir       string `envconfig:"UPLOAD_DIR" default:"public/uploads"`
	UploadURLPrefix string `envconfig:"UPLOAD_URL_PREFIX" default:"/uploads"`
	GCSBucket       string `envconfig:"GCS_BUCKET"`
	CredentialsFile string `envconfig:"CREDENTIALS_FILE_LOCATION"`
	R2Bucket        string `envconfig:"R2_BUCKET"`
	R2AccessKeyID   string `envconfig:"R2_ACCESS_KEY_ID"`
	R2SecretKey     string `envconfig:"R2_SECRET_ACCESS_KEY"`
	R2Endpoint      string `envconfig:"R2_ENDPOINT"`
	R2PublicDomain  string `envconfig:"R2_PUBLIC_DOMAIN"`

	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	SessionTTLHours int    `envconfig:"SESSION_TTL_HOURS" default:"24"`
	CookieSecure    bool   `envconfig:"COOKIE_SECURE" default:"false"`
	CookieDomain    string `envconfig:"COOKIE_DOMAIN"`
	AdminEmail      string `envconfig:"ADMIN_EMAIL"`
	AdminPassword   string `envconfig:"ADMIN_PASSWORD"`

	AllowedOrigins        []string `envconfig:"ALLOWED_ORIGINS"`
	MaxUploadSizeMB       int      `envconfig:"MAX_UPLOAD_SIZE_MB" default:"5"`
	AllowedFileExtensions []string `envconfig:"ALLOWED_FILE_EXTENSIONS" default:".jpg,.jpeg,.png,.webp,.pdf"`
	AllowedFileMimeTypes  []string `envconfig:"ALLOWED_FILE_MIME_TYPES" default:"image/jpeg,image/png,image/webp,application/pdf"`

	VirtualGroupsFile string `envconfig:"VIRTUAL_GROUPS_FILE"`
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig(logger *logrus.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		}
	} else {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"port":    cfg.Port,
		"db":      cfg.DBDriver,
		"storage": cfg.StorageDriver,
		"level":   cfg.LogLevel,
	}).Info("Configuration loaded")
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverFile:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for the file driver")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}

	switch c.StorageDriver {
	case StorageLocal:
		if c.UploadDir == "" {
			return errors.New("UPLOAD_DIR is required for local storage")
		}
	case StorageGCS:
		if c.GCSBucket == "" {
			return errors.New("GCS_BUCKET is required for gcs storage")
		}
	case StorageR2:
		if c.R2Bucket == "" || c.R2AccessKeyID == "" || c.R2SecretKey == "" || c.R2Endpoint == "" {
			return errors.New("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.MaxUploadSizeMB <= 0 {
		return errors.New("MAX_UPLOAD_SIZE_MB must be positive")
	}
	return nil
}

func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// NewLogger builds the JSON logger used across the service.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
