package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	S3     S3Config
	CDN    CDNConfig
	Image  ImageConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// MongoConfig holds document store connection settings.
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// CDNConfig holds CloudFront settings.
type CDNConfig struct {
	DistributionID string `mapstructure:"distribution_id"`
	BaseURL        string `mapstructure:"base_url"`
}

// ImageConfig holds the resize bounding box for the resized upload path.
type ImageConfig struct {
	Width       int   `mapstructure:"width"`
	Height      int   `mapstructure:"height"`
	JPEGQuality int   `mapstructure:"jpeg_quality"`
	MaxPixels   int64 `mapstructure:"max_pixels"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the POSTBOARD_
// prefix and fails if a required setting is missing.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POSTBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// Mongo defaults
	v.SetDefault("mongo.database", "postboard")
	v.SetDefault("mongo.connect_timeout", "10s")

	// S3 defaults
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.key_prefix", "uploads/test/")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// Image defaults
	v.SetDefault("image.width", 500)
	v.SetDefault("image.height", 800)
	v.SetDefault("image.jpeg_quality", 80)
	v.SetDefault("image.max_pixels", 50_000_000)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	envBindings := map[string]string{
		"server.port":             "POSTBOARD_SERVER_PORT",
		"server.read_timeout":     "POSTBOARD_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "POSTBOARD_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout": "POSTBOARD_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":      "POSTBOARD_SERVER_ENVIRONMENT",
		"mongo.uri":               "POSTBOARD_MONGO_URI",
		"mongo.database":          "POSTBOARD_MONGO_DATABASE",
		"mongo.connect_timeout":   "POSTBOARD_MONGO_CONNECT_TIMEOUT",
		"s3.region":               "POSTBOARD_S3_REGION",
		"s3.bucket":               "POSTBOARD_S3_BUCKET",
		"s3.endpoint":             "POSTBOARD_S3_ENDPOINT",
		"s3.access_key":           "POSTBOARD_S3_ACCESS_KEY",
		"s3.secret_key":           "POSTBOARD_S3_SECRET_KEY",
		"s3.key_prefix":           "POSTBOARD_S3_KEY_PREFIX",
		"s3.max_file_size_mb":     "POSTBOARD_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":       "POSTBOARD_S3_PRESIGN_EXPIRY",
		"cdn.distribution_id":     "POSTBOARD_CDN_DISTRIBUTION_ID",
		"cdn.base_url":            "POSTBOARD_CDN_BASE_URL",
		"image.width":             "POSTBOARD_IMAGE_WIDTH",
		"image.height":            "POSTBOARD_IMAGE_HEIGHT",
		"image.jpeg_quality":      "POSTBOARD_IMAGE_JPEG_QUALITY",
		"image.max_pixels":        "POSTBOARD_IMAGE_MAX_PIXELS",
		"cors.allowed_origins":    "POSTBOARD_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if POSTBOARD_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("POSTBOARD_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.Mongo = MongoConfig{
		URI:            v.GetString("mongo.uri"),
		Database:       v.GetString("mongo.database"),
		ConnectTimeout: v.GetDuration("mongo.connect_timeout"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		KeyPrefix:     v.GetString("s3.key_prefix"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.CDN = CDNConfig{
		DistributionID: v.GetString("cdn.distribution_id"),
		BaseURL:        normalizeBaseURL(v.GetString("cdn.base_url")),
	}
	cfg.Image = ImageConfig{
		Width:       v.GetInt("image.width"),
		Height:      v.GetInt("image.height"),
		JPEGQuality: v.GetInt("image.jpeg_quality"),
		MaxPixels:   v.GetInt64("image.max_pixels"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every required setting that is empty.
func (c *Config) Validate() error {
	required := []struct {
		env   string
		value string
	}{
		{"POSTBOARD_SERVER_PORT", c.Server.Port},
		{"POSTBOARD_MONGO_URI", c.Mongo.URI},
		{"POSTBOARD_S3_REGION", c.S3.Region},
		{"POSTBOARD_S3_BUCKET", c.S3.Bucket},
		{"POSTBOARD_S3_ACCESS_KEY", c.S3.AccessKey},
		{"POSTBOARD_S3_SECRET_KEY", c.S3.SecretKey},
		{"POSTBOARD_CDN_DISTRIBUTION_ID", c.CDN.DistributionID},
		{"POSTBOARD_CDN_BASE_URL", c.CDN.BaseURL},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// MaxFileSizeBytes returns the upload size limit in bytes.
func (s *S3Config) MaxFileSizeBytes() int64 {
	return s.MaxFileSizeMB * 1024 * 1024
}

// PresignTTL returns the signed URL lifetime.
func (s *S3Config) PresignTTL() time.Duration {
	return time.Duration(s.PresignExpiry) * time.Second
}

func normalizeBaseURL(u string) string {
	u = strings.TrimSpace(u)
	if u != "" && !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}
