// Package config implements application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvServerPort    = "SERVER_PORT"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogFormat     = "LOG_FORMAT"
	EnvEthNodeURL    = "ETH_NODE_URL"
	EnvStorageDriver = "STORAGE_DRIVER"
	EnvDatabaseURL   = "DATABASE_URL"
	EnvRabbitMQURL   = "RABBITMQ_URL"
)

// DefaultEnvFile is loaded before environment overrides are applied, if present.
const DefaultEnvFile = ".env"

// LoadConfig loads the configuration from a YAML file, applies environment overrides and validates the result.
// A missing default config file is not an error; a missing explicitly requested file is.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()

	loadPath := filePath
	if loadPath == "" {
		loadPath = DefaultConfigFilePath
	}

	fileBytes, err := os.ReadFile(loadPath)
	switch {
	case err == nil:
		if err := mergeYAML(cfg, fileBytes); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", loadPath, err)
		}
	case errors.Is(err, os.ErrNotExist) && (filePath == "" || filePath == DefaultConfigFilePath):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file '%s': %w", loadPath, err)
	}

	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file '%s': %w", DefaultEnvFile, err)
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// mergeYAML overlays the sections present in the document onto cfg.
// Empty string and zero numeric values inside a present section keep the defaults.
func mergeYAML(cfg *Config, data []byte) error {
	type partialAppService struct {
		PollingIntervalSeconds int    `yaml:"polling_interval_seconds"`
		InitialScanBlockNumber *int64 `yaml:"initial_scan_from_block"`
	}
	type partialConfig struct {
		Server     *ServerConfig      `yaml:"server"`
		Logger     *LoggerConfig      `yaml:"logger"`
		ETHClient  *ETHClientConfig   `yaml:"eth_client"`
		AppService *partialAppService `yaml:"app_service"`
		Storage    *StorageConfig     `yaml:"storage"`
		Events     *EventsConfig      `yaml:"events"`
	}
	var pCfg partialConfig
	if err := yaml.Unmarshal(data, &pCfg); err != nil {
		return err
	}

	if s := pCfg.Server; s != nil {
		setString(&cfg.Server.Port, s.Port)
		setPositive(&cfg.Server.ReadTimeoutSeconds, s.ReadTimeoutSeconds)
		setPositive(&cfg.Server.WriteTimeoutSeconds, s.WriteTimeoutSeconds)
		setPositive(&cfg.Server.IdleTimeoutSeconds, s.IdleTimeoutSeconds)
		setPositive(&cfg.Server.ReadHeaderTimeoutSeconds, s.ReadHeaderTimeoutSeconds)
	}
	if l := pCfg.Logger; l != nil {
		if l.Level != "" {
			cfg.Logger.Level = l.Level
		}
		if l.Format != "" {
			cfg.Logger.Format = l.Format
		}
	}
	if e := pCfg.ETHClient; e != nil {
		setString(&cfg.ETHClient.NodeURL, e.NodeURL)
		setPositive(&cfg.ETHClient.ClientTimeoutSeconds, e.ClientTimeoutSeconds)
		setPositive(&cfg.ETHClient.ReceiptCacheSize, e.ReceiptCacheSize)
	}
	if a := pCfg.AppService; a != nil {
		setPositive(&cfg.AppService.PollingIntervalSeconds, a.PollingIntervalSeconds)
		if a.InitialScanBlockNumber != nil {
			cfg.AppService.InitialScanBlockNumber = *a.InitialScanBlockNumber
		}
	}
	if s := pCfg.Storage; s != nil {
		if s.Driver != "" {
			cfg.Storage.Driver = s.Driver
		}
		setString(&cfg.Storage.PostgresDSN, s.PostgresDSN)
	}
	if e := pCfg.Events; e != nil {
		setString(&cfg.Events.RabbitMQURL, e.RabbitMQURL)
		setString(&cfg.Events.Exchange, e.Exchange)
		setString(&cfg.Events.RoutingKey, e.RoutingKey)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := lookupEnv(EnvServerPort); v != "" {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		cfg.Server.Port = v
	}
	if v := lookupEnv(EnvLogLevel); v != "" {
		cfg.Logger.Level = LogLevel(strings.ToLower(v))
	}
	if v := lookupEnv(EnvLogFormat); v != "" {
		cfg.Logger.Format = LogFormat(strings.ToLower(v))
	}
	if v := lookupEnv(EnvEthNodeURL); v != "" {
		cfg.ETHClient.NodeURL = v
	}
	if v := lookupEnv(EnvStorageDriver); v != "" {
		cfg.Storage.Driver = StorageDriver(strings.ToLower(v))
	}
	if v := lookupEnv(EnvDatabaseURL); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := lookupEnv(EnvRabbitMQURL); v != "" {
		cfg.Events.RabbitMQURL = v
	}
}

func lookupEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setPositive(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
