package config

import (
	"errors"
	"fmt"
	"strings"
)

// Default config values.
const (
	DefaultConfigFilePath                 = "config/config.yml"
	DefaultServerPort                     = ":8080"
	DefaultServerReadTimeoutSeconds       = 30
	DefaultServerWriteTimeoutSeconds      = 30
	DefaultServerIdleTimeoutSeconds       = 60
	DefaultServerReadHeaderTimeoutSeconds = 30
	DefaultLoggerLevel                    = LogLevelInfo
	DefaultLoggerFormat                   = LogFormatJSON
	DefaultEthNodeURL                     = "https://cloudflare-eth.com"
	DefaultEthClientTimeoutSeconds        = 20
	DefaultReceiptCacheSize               = 1024
	// Defaults for ApplicationServiceConfig
	DefaultAppServicePollingIntervalSeconds = 15
	DefaultAppServiceInitialScanBlockNumber = -1 // -1 starts from the latest block
	DefaultStorageDriver                    = StorageDriverMemory
	DefaultEventsExchange                   = "transfer_events"
	DefaultEventsRoutingKey                 = "transfer.confirmed"
)

// LogLevel defines the type for logger levels.
type LogLevel string

// LogFormat defines the type for logger output formats.
type LogFormat string

// StorageDriver selects the repository implementation.
type StorageDriver string

// Defines the supported logger levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Defines the supported logger output formats.
const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// Defines the supported storage drivers.
const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig             `yaml:"server"`
	Logger     LoggerConfig             `yaml:"logger"`
	ETHClient  ETHClientConfig          `yaml:"eth_client"`
	AppService ApplicationServiceConfig `yaml:"app_service"`
	Storage    StorageConfig            `yaml:"storage"`
	Events     EventsConfig             `yaml:"events"`
}

// ServerConfig holds all configuration related to the HTTP server.
type ServerConfig struct {
	Port                     string `yaml:"port"`
	ReadTimeoutSeconds       int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds      int    `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds       int    `yaml:"idle_timeout_seconds"`
	ReadHeaderTimeoutSeconds int    `yaml:"read_header_timeout_seconds"`
}

// LoggerConfig holds all configuration related to logging.
type LoggerConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// ETHClientConfig holds all configuration related to the Ethereum client.
type ETHClientConfig struct {
	NodeURL              string `yaml:"node_url"`
	ClientTimeoutSeconds int    `yaml:"client_timeout_seconds"`
	ReceiptCacheSize     int    `yaml:"receipt_cache_size"`
}

// ApplicationServiceConfig holds configuration for the transfer scanning service.
type ApplicationServiceConfig struct {
	PollingIntervalSeconds int   `yaml:"polling_interval_seconds"`
	InitialScanBlockNumber int64 `yaml:"initial_scan_from_block"`
}

// StorageConfig selects and configures the repositories.
type StorageConfig struct {
	Driver      StorageDriver `yaml:"driver"`
	PostgresDSN string        `yaml:"postgres_dsn"`
}

// EventsConfig configures confirmed-transfer publishing. An empty RabbitMQURL disables publishing.
type EventsConfig struct {
	RabbitMQURL string `yaml:"rabbitmq_url"`
	Exchange    string `yaml:"exchange"`
	RoutingKey  string `yaml:"routing_key"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                     DefaultServerPort,
			ReadTimeoutSeconds:       DefaultServerReadTimeoutSeconds,
			WriteTimeoutSeconds:      DefaultServerWriteTimeoutSeconds,
			IdleTimeoutSeconds:       DefaultServerIdleTimeoutSeconds,
			ReadHeaderTimeoutSeconds: DefaultServerReadHeaderTimeoutSeconds,
		},
		Logger: LoggerConfig{
			Level:  DefaultLoggerLevel,
			Format: DefaultLoggerFormat,
		},
		ETHClient: ETHClientConfig{
			NodeURL:              DefaultEthNodeURL,
			ClientTimeoutSeconds: DefaultEthClientTimeoutSeconds,
			ReceiptCacheSize:     DefaultReceiptCacheSize,
		},
		AppService: ApplicationServiceConfig{
			PollingIntervalSeconds: DefaultAppServicePollingIntervalSeconds,
			InitialScanBlockNumber: DefaultAppServiceInitialScanBlockNumber,
		},
		Storage: StorageConfig{
			Driver: DefaultStorageDriver,
		},
		Events: EventsConfig{
			Exchange:   DefaultEventsExchange,
			RoutingKey: DefaultEventsRoutingKey,
		},
	}
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" || (strings.HasPrefix(c.Server.Port, ":") && len(c.Server.Port) == 1) {
		return errors.New("server port (config key: server.port) cannot be empty or just ':'")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(string(c.Logger.Level))] {
		return fmt.Errorf(
			"invalid logger level (config key: logger.level): '%s', must be one of: debug, info, warn, error",
			c.Logger.Level,
		)
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(string(c.Logger.Format))] {
		return fmt.Errorf(
			"invalid logger format (config key: logger.format): '%s', must be one of: json, text",
			c.Logger.Format,
		)
	}

	if c.ETHClient.NodeURL == "" {
		return errors.New("ethereum node URL (config key: eth_client.node_url) cannot be empty")
	}
	if c.ETHClient.ClientTimeoutSeconds <= 0 {
		return errors.New("ethereum client timeout seconds (config key: eth_client.client_timeout_seconds) must be greater than 0")
	}
	if c.ETHClient.ReceiptCacheSize <= 0 {
		return errors.New("receipt cache size (config key: eth_client.receipt_cache_size) must be greater than 0")
	}

	if c.Server.ReadTimeoutSeconds < 0 {
		return errors.New("server read timeout seconds (config key: server.read_timeout_seconds) cannot be negative")
	}
	if c.Server.WriteTimeoutSeconds < 0 {
		return errors.New("server write timeout seconds (config key: server.write_timeout_seconds) cannot be negative")
	}
	if c.Server.IdleTimeoutSeconds < 0 {
		return errors.New("server idle timeout seconds (config key: server.idle_timeout_seconds) cannot be negative")
	}
	if c.Server.ReadHeaderTimeoutSeconds < 0 {
		return errors.New(
			"server read header timeout seconds (config key: server.read_header_timeout_seconds) cannot be negative",
		)
	}

	if c.AppService.PollingIntervalSeconds <= 0 {
		return errors.New("polling interval seconds (config key: app_service.polling_interval_seconds) must be greater than 0")
	}
	// InitialScanBlockNumber can be -1, 0 or >0. Other negative values are not allowed.
	if c.AppService.InitialScanBlockNumber < -1 {
		return errors.New("initial scan from block (config key: app_service.initial_scan_from_block) cannot be less than -1")
	}

	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("postgres DSN (config key: storage.postgres_dsn) is required when storage.driver is postgres")
		}
	default:
		return fmt.Errorf(
			"invalid storage driver (config key: storage.driver): '%s', must be one of: memory, postgres",
			c.Storage.Driver,
		)
	}

	if c.Events.RabbitMQURL != "" {
		if c.Events.Exchange == "" {
			return errors.New("events exchange (config key: events.exchange) cannot be empty when events.rabbitmq_url is set")
		}
		if c.Events.RoutingKey == "" {
			return errors.New("events routing key (config key: events.routing_key) cannot be empty when events.rabbitmq_url is set")
		}
	}

	return nil
}
