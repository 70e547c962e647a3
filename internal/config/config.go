package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	CORS   CORSConfig
	Scan   ScanConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN builds the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// S3Config holds raw-source archive storage settings. Archiving is
// disabled when the bucket is empty.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Endpoint  string `mapstructure:"endpoint"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ScanConfig holds extraction pipeline settings.
type ScanConfig struct {
	// Concurrency bounds how many inputs are extracted in parallel
	// within one scan run.
	Concurrency int `mapstructure:"concurrency"`
	// TrustedSenders are sender addresses or domains exempt from the
	// bill-keyword gate.
	TrustedSenders []string `mapstructure:"trusted_senders"`
}

// Load reads configuration from config.yaml plus BILLSCAN_* environment
// overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if path := os.Getenv("BILLSCAN_CONFIG_PATH"); path != "" {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix("BILLSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults suffice.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billscan")
	v.SetDefault("db.name", "billscan")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)
	v.SetDefault("s3.region", "eu-central-1")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("scan.concurrency", 4)
}

func (c *Config) validate() error {
	if c.Scan.Concurrency < 1 {
		return fmt.Errorf("scan.concurrency must be at least 1, got %d", c.Scan.Concurrency)
	}
	return nil
}
