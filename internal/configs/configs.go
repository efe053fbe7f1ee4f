/*
Package configs is responsible for loading and parsing the broker's configuration.

The broker's primary configuration surface is its CLI arguments (port, log path),
per the spec's CLI surface. A small number of ambient, non-protocol knobs are read
from the environment instead, the way the teacher reads ENVIRONMENT: they affect
operational behavior (logging verbosity, system-line suppression), not the wire
protocol itself.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// DefaultPort is the listener port used when no port argument is given.
	DefaultPort = 5555

	// DefaultLogPath is the event log path used when no log path argument is given.
	DefaultLogPath = "chat.log"

	// DefaultBotPrefix is the name prefix whose join/leave/rename system lines are
	// suppressed by default, per the "Bot/system traffic suppression" design note.
	DefaultBotPrefix = "Bot"
)

// AppConfig contains all configuration parameters required for the broker to run.
type AppConfig struct {
	// Environment defines the broker's operating environment ("development" or
	// "production"); selects console vs. JSON logging.
	Environment string

	// Port is the TCP port the listener binds.
	Port int

	// LogPath is the path to the append-only event log.
	LogPath string

	// BotPrefix is the name prefix whose join/leave/rename system broadcasts are
	// suppressed. Empty disables the filter entirely.
	BotPrefix string
}

// LoadConfig parses the broker's CLI arguments (excluding argv[0]) and applies
// ambient environment-variable overrides on top, the way the teacher's LoadConfig
// defaults-then-validates each setting.
func LoadConfig(args []string) (*AppConfig, error) {
	cfg := &AppConfig{
		Environment: envOrDefault("ENVIRONMENT", "development"),
		Port:        DefaultPort,
		LogPath:     DefaultLogPath,
		BotPrefix:   DefaultBotPrefix,
	}

	// An explicitly empty CHAT_BOT_PREFIX disables the filter; only an unset
	// variable falls back to the default.
	if v, ok := os.LookupEnv("CHAT_BOT_PREFIX"); ok {
		cfg.BotPrefix = v
	}

	if len(args) >= 1 && args[0] != "" {
		port, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid port argument %q: %w", args[0], err)
		}
		cfg.Port = port
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the valid range (1-65535)", cfg.Port)
	}

	if len(args) >= 2 && args[1] != "" {
		cfg.LogPath = args[1]
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
