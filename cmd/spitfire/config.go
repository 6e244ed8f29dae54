package main

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/wandadars/spitfire/persistence"
)

// config is read from the environment before flags are applied.
type config struct {
	LogLevel    slog.Level              `env:"SPITFIRE_LOG_LEVEL" envDefault:"INFO"`
	Compression persistence.Compression `env:"SPITFIRE_COMPRESSION" envDefault:"none"`
	Concurrency int                     `env:"SPITFIRE_CONCURRENCY" envDefault:"4"`
	CacheDir    string                  `env:"SPITFIRE_CACHE_DIR"`

	S3    s3Config    `envPrefix:"SPITFIRE_S3_"`
	MinIO minioConfig `envPrefix:"SPITFIRE_MINIO_"`
}

type s3Config struct {
	Region string `env:"REGION"`
}

type minioConfig struct {
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Secure    bool   `env:"SECURE" envDefault:"true"`
	Region    string `env:"REGION"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
