package internal

import (
	"fmt"
	"time"
	"webchat/infrastructure/storage"
)

type Config struct {
	Host                 string         `env:"HOST,default=0.0.0.0"`
	Port                 int            `env:"PORT,default=8000"`
	StoreDriver          storage.Driver `env:"STORE_DRIVER,default=badger"`
	BadgerFilepath       string         `env:"BADGER_FILEPATH,default=./data/badger"`
	SQLiteFilepath       string         `env:"SQLITE_FILEPATH,default=./data/chat.db"`
	LogLevel             string         `env:"LOG_LEVEL,default=INFO"`
	AllowedOrigin        string         `env:"ALLOWED_ORIGIN,default=*"`
	ConnectionBufferSize int            `env:"CONNECTION_BUFFER_SIZE,default=64"`
	SinkTimeout          time.Duration  `env:"SINK_TIMEOUT,default=2s"`
	MetricInterval       time.Duration  `env:"METRIC_INTERVAL,default=30s"`
	RestartInterval      time.Duration  `env:"RESTART_INTERVAL,default=200ms"`
	ShutdownTimeout      time.Duration  `env:"SHUTDOWN_TIMEOUT,default=10s"`
	GRPCHealthPort       int            `env:"GRPC_HEALTH_PORT,default=0"`
	DebugPort            int            `env:"DEBUG_PORT,default=8081"`
	Timezone             string         `env:"TIMEZONE,default=America/Sao_Paulo"`
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	if c.ConnectionBufferSize <= 0 {
		return fmt.Errorf("CONNECTION_BUFFER_SIZE must be positive, got %d", c.ConnectionBufferSize)
	}
	if c.SinkTimeout <= 0 {
		return fmt.Errorf("SINK_TIMEOUT must be positive, got %s", c.SinkTimeout)
	}
	if c.MetricInterval <= 0 {
		return fmt.Errorf("METRIC_INTERVAL must be positive, got %s", c.MetricInterval)
	}
	switch c.StoreDriver {
	case storage.DriverBadger, storage.DriverSQLite:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", storage.DriverBadger, storage.DriverSQLite, c.StoreDriver)
	}
	return nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver:         c.StoreDriver,
		BadgerFilepath: c.BadgerFilepath,
		SQLiteFilepath: c.SQLiteFilepath,
	}
}
