package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa*/

type Config struct {
	Port           string  `mapstructure:"PORT"`
	MetricsPort    string  `mapstructure:"METRICS_PORT"`
	APIKey         string  `mapstructure:"API_KEY"`
	StorageBackend Backend `mapstructure:"-"`
	DBFile         string  `mapstructure:"DB_FILE"`
	MongoURI       string  `mapstructure:"MONGO_URI"`
	MongoDatabase  string  `mapstructure:"MONGO_DATABASE"`
	RedisAddr      string  `mapstructure:"REDIS_ADDR"`
	RedisPassword  string  `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int     `mapstructure:"REDIS_DB"`
	LogLevel       string  `mapstructure:"LOG_LEVEL"`
	LogJSON        bool    `mapstructure:"LOG_JSON"`
}

var defaults = map[string]any{
	"PORT":            "3000",
	"METRICS_PORT":    "9090",
	"API_KEY":         "chaveSuperSecreta",
	"STORAGE_BACKEND": "file",
	"DB_FILE":         "db.json",
	"MONGO_URI":       "mongodb://localhost:27017",
	"MONGO_DATABASE":  "bookshelf",
	"REDIS_ADDR":      "localhost:6379",
	"REDIS_PASSWORD":  "",
	"REDIS_DB":        0,
	"LOG_LEVEL":       "info",
	"LOG_JSON":        true,
}

// GetConfig reads .env (TOML) from the working directory when present, then the environment
func GetConfig() (*Config, error) {
	return Load(".")
}

// Load is GetConfig with an explicit directory for the .env file
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	config.StorageBackend = NewBackend(v.GetString("STORAGE_BACKEND"))
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	var problems []string
	if c.APIKey == "" {
		problems = append(problems, "API_KEY is required")
	}
	if c.Port == "" {
		problems = append(problems, "PORT is required")
	}
	if c.MetricsPort == "" {
		problems = append(problems, "METRICS_PORT is required")
	}
	if c.Port != "" && c.Port == c.MetricsPort {
		problems = append(problems, "PORT and METRICS_PORT must differ")
	}
	switch c.StorageBackend {
	case File:
		if c.DBFile == "" {
			problems = append(problems, "DB_FILE is required for the file backend")
		}
	case Mongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			problems = append(problems, "MONGO_URI and MONGO_DATABASE are required for the mongo backend")
		}
	case Redis:
		if c.RedisAddr == "" {
			problems = append(problems, "REDIS_ADDR is required for the redis backend")
		}
	default:
		problems = append(problems, "STORAGE_BACKEND must be one of file, mongo, redis")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
