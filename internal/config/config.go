package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	// Mode is passed to gin.SetMode ("debug", "release", "test").
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
}

// Enabled reports whether progress photo storage is configured.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// RedisConfig points at the view cache. An empty address disables caching.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	ViewTTL time.Duration `mapstructure:"view_ttl"`
}

// LoadConfig reads configuration from a .env file, config.yaml in path and
// environment variables (SERVER_ADDRESS, JWT_SECRET, ...), in increasing
// order of precedence.
func LoadConfig(path string) (config Config, err error) {
	// A missing .env is normal outside local development.
	if err = godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "coach_app")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("jwt.expiration", "24h")
	v.SetDefault("cache.view_ttl", "1m")
	// Bind keys without defaults so AutomaticEnv can see them during Unmarshal
	for _, key := range []string{
		"jwt.secret", "s3.endpoint", "s3.access_key_id", "s3.secret_access_key",
		"s3.bucket_name", "redis.address", "redis.password", "redis.db",
	} {
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil // rely on defaults and env vars
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	if config.JWT.Secret == "" {
		return config, errors.New("jwt.secret (JWT_SECRET) must be set")
	}
	return config, nil
}
