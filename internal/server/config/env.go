package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config for environment parsing. Only variables that are
// actually set override earlier layers.
type envConfig struct {
	EndpointAddrHTTP      string        `env:"ADDRESS"`
	DatabaseDSN           string        `env:"DATABASE_DSN"`
	SecretKey             string        `env:"JWT_SECRET_KEY"`
	TokenValidityDuration time.Duration `env:"TOKEN_VALIDITY_DURATION"`
	S3AccessKey           string        `env:"S3_ACCESS_KEY"`
	S3SecretKey           string        `env:"S3_SECRET_KEY"`
	S3Bucket              string        `env:"S3_BUCKET"`
	S3Region              string        `env:"S3_REGION"`
	S3BaseEndpoint        string        `env:"S3_BASE_ENDPOINT"`
	TTSBaseURL            string        `env:"TTS_BASE_URL"`
	TTSAPIKey             string        `env:"TTS_API_KEY"`
	TTSModel              string        `env:"TTS_MODEL"`
}

func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration
	}
	if c.S3AccessKey != "" {
		config.S3AccessKey = c.S3AccessKey
	}
	if c.S3SecretKey != "" {
		config.S3SecretKey = c.S3SecretKey
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.TTSBaseURL != "" {
		config.TTSBaseURL = c.TTSBaseURL
	}
	if c.TTSAPIKey != "" {
		config.TTSAPIKey = c.TTSAPIKey
	}
	if c.TTSModel != "" {
		config.TTSModel = c.TTSModel
	}
}
