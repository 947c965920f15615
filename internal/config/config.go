package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
	DBPath string       `yaml:"db_path"`
	TZ     string       `yaml:"tz"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type AuthConfig struct {
	SecretKey string `yaml:"secret_key"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Load reads an optional YAML config file and applies environment
// overrides on top of it.
func Load(configFile string) *Config {
	c := &Config{
		Server: ServerConfig{Port: 8080},
		Auth:   AuthConfig{SecretKey: "change_me_in_production"},
		Log:    LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		DBPath: filepath.Join("data", "morrow.db"),
		TZ:     "UTC",
	}

	paths := []string{"etc/config.yaml", "/etc/morrow/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	envOverride(&c.Auth.SecretKey, "SECRET_KEY")
	envOverride(&c.DBPath, "DB_PATH")
	envOverride(&c.TZ, "TZ")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverrideInt(&c.Server.Port, "PORT")

	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func envOverride(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func envOverrideInt(target *int, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}
