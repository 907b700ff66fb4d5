package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTBOARD_MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("POSTBOARD_S3_REGION", "ap-south-1")
	t.Setenv("POSTBOARD_S3_BUCKET", "post-images")
	t.Setenv("POSTBOARD_S3_ACCESS_KEY", "AKIDEXAMPLE")
	t.Setenv("POSTBOARD_S3_SECRET_KEY", "secret")
	t.Setenv("POSTBOARD_CDN_DISTRIBUTION_ID", "E2EXAMPLE")
	t.Setenv("POSTBOARD_CDN_BASE_URL", "https://d111111abcdef8.cloudfront.net")
	t.Setenv("PORT", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "postboard", cfg.Mongo.Database)
	assert.Equal(t, "post-images", cfg.S3.Bucket)
	assert.Equal(t, "uploads/test/", cfg.S3.KeyPrefix)
	assert.Equal(t, int64(10*1024*1024), cfg.S3.MaxFileSizeBytes())
	assert.Equal(t, time.Hour, cfg.S3.PresignTTL())
	assert.Equal(t, 500, cfg.Image.Width)
	assert.Equal(t, 800, cfg.Image.Height)
	assert.Equal(t, int64(50_000_000), cfg.Image.MaxPixels)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_ImagePixelLimitOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTBOARD_IMAGE_MAX_PIXELS", "1000000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, int64(1_000_000), cfg.Image.MaxPixels)
}

func TestLoad_NormalizesCDNBaseURL(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://d111111abcdef8.cloudfront.net/", cfg.CDN.BaseURL)
}

func TestLoad_PlatformPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_ExplicitPortWins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("POSTBOARD_SERVER_PORT", ":7000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTBOARD_S3_BUCKET", "")
	t.Setenv("POSTBOARD_CDN_DISTRIBUTION_ID", "")

	cfg, err := config.Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTBOARD_S3_BUCKET")
	assert.Contains(t, err.Error(), "POSTBOARD_CDN_DISTRIBUTION_ID")
	assert.NotContains(t, err.Error(), "POSTBOARD_MONGO_URI")
}

func TestLoad_CORSOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTBOARD_CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}
