// SPDX-License-Identifier: MIT

// Package config loads eigenface settings from an optional file and
// EIGENFACE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override; "." in a key becomes "_",
// so backend.workers is read from EIGENFACE_BACKEND_WORKERS.
const EnvPrefix = "EIGENFACE"

// Config is the complete runtime configuration.
type Config struct {
	Log         LogConfig         `mapstructure:"log"         toml:"log"`
	Backend     BackendConfig     `mapstructure:"backend"     toml:"backend"`
	Training    TrainingConfig    `mapstructure:"training"    toml:"training"`
	Recognition RecognitionConfig `mapstructure:"recognition" toml:"recognition"`
	Storage     StorageConfig     `mapstructure:"storage"     toml:"storage"`
	Metrics     MetricsConfig     `mapstructure:"metrics"     toml:"metrics"`
}

// LogConfig configures internal/logging. An empty File logs to stderr;
// MaxSize is in megabytes and MaxAge in days.
type LogConfig struct {
	Level      string `mapstructure:"level"       toml:"level"       validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format"      toml:"format"      validate:"oneof=json text"`
	File       string `mapstructure:"file"        toml:"file"`
	MaxSize    int    `mapstructure:"max_size"    toml:"max_size"    validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" validate:"min=0"`
	MaxAge     int    `mapstructure:"max_age"     toml:"max_age"     validate:"min=0"`
	Compress   bool   `mapstructure:"compress"    toml:"compress"`
}

// BackendConfig selects the kernel backend.
type BackendConfig struct {
	Name    string `mapstructure:"name"    toml:"name"    validate:"oneof=native gonum"`
	Workers int    `mapstructure:"workers" toml:"workers" validate:"min=0"` // 0 = GOMAXPROCS
}

// TrainingConfig tunes pca.Train.
type TrainingConfig struct {
	Components     int     `mapstructure:"components"      toml:"components"      validate:"min=0"`
	SortEigen      bool    `mapstructure:"sort_eigen"      toml:"sort_eigen"`
	EigenTolerance float64 `mapstructure:"eigen_tolerance" toml:"eigen_tolerance" validate:"gt=0"`
	MaxSweeps      int     `mapstructure:"max_sweeps"      toml:"max_sweeps"      validate:"min=1"`
}

// RecognitionConfig tunes the recognizer.
type RecognitionConfig struct {
	Threshold float64 `mapstructure:"threshold" toml:"threshold" validate:"min=0"` // 0 disables rejection
}

// StorageConfig selects where trained databases live.
type StorageConfig struct {
	Driver string      `mapstructure:"driver" toml:"driver" validate:"oneof=file minio"`
	Dir    string      `mapstructure:"dir"    toml:"dir"`
	MinIO  MinIOConfig `mapstructure:"minio"  toml:"minio"`
}

// MinIOConfig holds the S3-compatible endpoint settings.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"          toml:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"     toml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" toml:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"            toml:"bucket"`
	UseSSL          bool   `mapstructure:"use_ssl"           toml:"use_ssl"`
}

// MetricsConfig configures the prometheus textfile dump.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" toml:"textfile"` // empty disables the dump
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)

	v.SetDefault("backend.name", "native")
	v.SetDefault("backend.workers", 0)

	v.SetDefault("training.components", 0)
	v.SetDefault("training.sort_eigen", true)
	v.SetDefault("training.eigen_tolerance", 1e-10)
	v.SetDefault("training.max_sweeps", 100)

	v.SetDefault("recognition.threshold", 0.0)

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.dir", "eigenface-data")
	v.SetDefault("storage.minio.endpoint", "")
	v.SetDefault("storage.minio.access_key_id", "")
	v.SetDefault("storage.minio.secret_access_key", "")
	v.SetDefault("storage.minio.bucket", "")
	v.SetDefault("storage.minio.use_ssl", false)

	v.SetDefault("metrics.textfile", "")
}

// Load reads path (toml, yaml or json by extension; empty means defaults
// only), applies EIGENFACE_* overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}
	if err := Validate(conf); err != nil {
		return nil, err
	}

	return conf, nil
}

// Validate checks field constraints and that a minio driver has an endpoint
// and a bucket.
func Validate(conf *Config) error {
	validate := validator.New()
	validate.RegisterStructValidation(validateStorage, StorageConfig{})
	if err := validate.Struct(conf); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

func validateStorage(sl validator.StructLevel) {
	s := sl.Current().Interface().(StorageConfig)
	if s.Driver != "minio" {
		return
	}
	if s.MinIO.Endpoint == "" {
		sl.ReportError(s.MinIO.Endpoint, "minio.endpoint", "Endpoint", "required_with_minio", "")
	}
	if s.MinIO.Bucket == "" {
		sl.ReportError(s.MinIO.Bucket, "minio.bucket", "Bucket", "required_with_minio", "")
	}
}
