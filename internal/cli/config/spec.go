package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/frezcirno/Rudis/internal/resp"
)

// Config is the configuration for rudis-cli.
type Config struct {
	// Addr is the server address (host:port).
	Addr string `koanf:"addr"`

	// Connection timeouts. Zero disables the deadline.
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// Protocol limits applied when decoding replies. Zero means the
	// codec default.
	MaxDepth    int `koanf:"max_depth"`
	MaxBulkLen  int `koanf:"max_bulk_len"`
	MaxArrayLen int `koanf:"max_array_len"`

	// HistoryFile is where the REPL persists command history.
	HistoryFile string `koanf:"history_file"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
}

// Default returns the default rudis-cli configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Addr:        "localhost:6379",
		DialTimeout: 5 * time.Second,
		HistoryFile: filepath.Join(homeDir, ".rudis", "history"),
		LogLevel:    "info",
	}
}

// Limits returns the protocol limits as the codec expects them.
func (c *Config) Limits() resp.Limits {
	return resp.Limits{
		MaxDepth:    c.MaxDepth,
		MaxBulkLen:  c.MaxBulkLen,
		MaxArrayLen: c.MaxArrayLen,
	}
}
