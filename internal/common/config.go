package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/joseph-ayodele/form-intake/constants"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Upload   UploadConfig
	OCR      OCRConfig
	LogLevel string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
	QueryTimeout    time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string
	GRPCHealthAddr string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	ShutdownGrace  time.Duration
}

// UploadConfig holds upload and extraction limits
type UploadConfig struct {
	Dir            string
	MaxBytes       int64
	ExtractTimeout time.Duration
}

// OCRConfig holds image OCR configuration
type OCRConfig struct {
	Enabled     bool
	Tesseract   string
	Lang        string
	TessdataDir string
}

var defaults = map[string]any{
	"port":                  "5000",
	"grpc_health_addr":      "",
	"http_read_timeout":     time.Minute,
	"http_write_timeout":    2 * time.Minute,
	"shutdown_grace":        10 * time.Second,
	"database_url":          "",
	"db_max_conns":          20,
	"db_min_conns":          2,
	"db_max_conn_lifetime":  30 * time.Minute,
	"db_max_conn_idle_time": 5 * time.Minute,
	"db_dial_timeout":       3 * time.Second,
	"store_timeout":         10 * time.Second,
	"uploads_dir":           "uploads",
	"max_upload_bytes":      constants.MaxUploadBytes,
	"extract_timeout":       30 * time.Second,
	"ocr_enabled":           false,
	"tesseract_path":        "tesseract",
	"tesseract_lang":        "eng",
	"tessdata_prefix":       "",
	"log_level":             "info",
}

// LoadConfig loads configuration from the environment, layered over an
// optional dotenv file. A missing envFile is not an error.
func LoadConfig(envFile string) (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, NewAppError(CodeConfig, fmt.Sprintf("read %s", envFile), err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, NewAppError(CodeConfig, fmt.Sprintf("stat %s", envFile), err)
		}
	}

	return &Config{
		Database: DatabaseConfig{
			URL:             v.GetString("database_url"),
			MaxConns:        v.GetInt32("db_max_conns"),
			MinConns:        v.GetInt32("db_min_conns"),
			MaxConnLifetime: v.GetDuration("db_max_conn_lifetime"),
			MaxConnIdleTime: v.GetDuration("db_max_conn_idle_time"),
			DialTimeout:     v.GetDuration("db_dial_timeout"),
			QueryTimeout:    v.GetDuration("store_timeout"),
		},
		Server: ServerConfig{
			Port:           v.GetString("port"),
			GRPCHealthAddr: v.GetString("grpc_health_addr"),
			ReadTimeout:    v.GetDuration("http_read_timeout"),
			WriteTimeout:   v.GetDuration("http_write_timeout"),
			ShutdownGrace:  v.GetDuration("shutdown_grace"),
		},
		Upload: UploadConfig{
			Dir:            v.GetString("uploads_dir"),
			MaxBytes:       v.GetInt64("max_upload_bytes"),
			ExtractTimeout: v.GetDuration("extract_timeout"),
		},
		OCR: OCRConfig{
			Enabled:     v.GetBool("ocr_enabled"),
			Tesseract:   v.GetString("tesseract_path"),
			Lang:        v.GetString("tesseract_lang"),
			TessdataDir: v.GetString("tessdata_prefix"),
		},
		LogLevel: v.GetString("log_level"),
	}, nil
}

// Addr returns the HTTP listen address.
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return NewAppError(CodeConfig, "DATABASE_URL is required", ErrInvalidConfig)
	}
	if c.Server.Port == "" {
		return NewAppError(CodeConfig, "PORT is required", ErrInvalidConfig)
	}
	if c.Upload.MaxBytes <= 0 {
		return NewAppError(CodeConfig, "MAX_UPLOAD_BYTES must be positive", ErrInvalidConfig)
	}
	if c.OCR.Enabled && c.OCR.Tesseract == "" {
		return NewAppError(CodeConfig, "TESSERACT_PATH is required when OCR_ENABLED is set", ErrInvalidConfig)
	}
	return nil
}
