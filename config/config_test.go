package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClientSites(t *testing.T) {
	sites := parseClientSites("https://tolatiles.com=https://tolatiles.com/api/auth/login/")
	assert.Len(t, sites, 1)
	assert.Equal(t, "https://tolatiles.com/api/auth/login/", sites["https://tolatiles.com"])

	sites = parseClientSites("a=1, b=2")
	assert.Len(t, sites, 2)
	assert.Equal(t, "2", sites["b"])

	// Malformed entries are skipped, not fatal
	sites = parseClientSites("no-equals-sign, c=3")
	assert.Len(t, sites, 1)
	assert.Equal(t, "3", sites["c"])

	assert.Empty(t, parseClientSites(""))
}

func TestValidate(t *testing.T) {
	valid := &Config{DatabaseURL: "postgresql://localhost/tiles", MaxUploadSizeMB: 10}
	assert.NoError(t, valid.Validate())

	missing := &Config{MaxUploadSizeMB: 10}
	assert.Error(t, missing.Validate())

	badSize := &Config{DatabaseURL: "postgresql://localhost/tiles", MaxUploadSizeMB: 0}
	assert.Error(t, badSize.Validate())
}

func TestMaxUploadSizeBytes(t *testing.T) {
	cfg := &Config{MaxUploadSizeMB: 10}
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSizeBytes())
}

func TestUseS3(t *testing.T) {
	assert.False(t, (&Config{}).UseS3())
	assert.True(t, (&Config{AWSS3Bucket: "tola-tiles-media"}).UseS3())
}

func TestEnvironmentChecks(t *testing.T) {
	assert.True(t, (&Config{GoEnv: "test"}).IsTest())
	assert.True(t, (&Config{GoEnv: "production"}).IsProduction())
	assert.True(t, (&Config{GoEnv: "development"}).IsDevelopment())
	assert.False(t, (&Config{GoEnv: "development"}).IsProduction())
}
