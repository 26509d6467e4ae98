package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_OverridesDefaults(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	os.Args = []string{"cmd",
		"-a", ":7070",
		"-d", "postgres://u:p@localhost:5432/db",
		"-s", "flag-secret",
		"-t", "24",
		"-b", "videos",
	}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.EndpointAddrHTTP, ":7070")
	assert.Equal(t, c.DatabaseDSN, "postgres://u:p@localhost:5432/db")
	assert.Equal(t, c.SecretKey, "flag-secret")
	assert.Equal(t, c.TokenValidityDuration, 24*time.Hour)
	assert.Equal(t, c.S3Bucket, "videos")
	// flags not passed keep defaults
	assert.Equal(t, c.S3Region, "us-east-1")
}

func TestParseFlags_NoFlagsKeepsDefaults(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"cmd"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.EndpointAddrHTTP, ":8080")
	assert.Equal(t, c.TokenValidityDuration, 87600*time.Hour)
}
