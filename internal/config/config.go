package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	API      APIConfig      `mapstructure:"api"`
	Session  SessionConfig  `mapstructure:"session"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	Refresh  RefreshConfig  `mapstructure:"refresh"`
}

// ServerConfig is the local API the UI talks to.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// APIConfig points at the remote fitness-social API.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds every remote request. A hung request fails with a
	// RequestError once it elapses instead of staying in flight.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Session store backends.
const (
	SessionStoreFile  = "file"
	SessionStoreMongo = "mongo"
)

type SessionConfig struct {
	Store string `mapstructure:"store"` // "file" or "mongo"
	Path  string `mapstructure:"path"`  // Used by the file store
}

// DatabaseConfig is only read when session.store is "mongo".
type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	PublicBaseURL   string        `mapstructure:"public_base_url"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
}

// Enabled reports whether media upload is configured.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// RefreshConfig controls the periodic refetch of synchronized lists.
// A zero interval disables it.
type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// LoadConfig reads configuration from path/config.yaml and the environment.
// Nested keys map to env vars with "_", e.g. api.base_url -> API_BASE_URL.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", "127.0.0.1:8090")
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("session.store", SessionStoreFile)
	v.SetDefault("session.path", "fitsocial-session.json")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitsocial_client")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.public_base_url", "")
	v.SetDefault("s3.url_expiry", "168h")
	v.SetDefault("refresh.interval", "0s")

	err = v.ReadInConfig()
	// A missing config file is fine, defaults and env vars still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}
