package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSensorNames is used when SENSOR_NAMES is not set.
var DefaultSensorNames = []string{"sensor1", "sensor2", "sensor3"}

type Config struct {
	LogRoot                string
	SensorNames            []string
	OpsPort                string
	LogLevel               string
	WorkerCount            int
	SubmissionBufferSize   int
	SimulateIntervalMillis int
}

// Logger defines the logging behaviour required by LogConfig.
type Logger interface {
	Info(msg string, args ...any)
}

func Load() Config {
	return Config{
		LogRoot:                getEnv("LOG_ROOT", "logs"),
		SensorNames:            getEnvList("SENSOR_NAMES", DefaultSensorNames),
		OpsPort:                getEnv("OPS_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		WorkerCount:            getEnvInt("WORKER_COUNT", 4),
		SubmissionBufferSize:   getEnvInt("SUBMISSION_BUFFER", 100),
		SimulateIntervalMillis: getEnvInt("SIMULATE_INTERVAL_MS", 0),
	}
}

// SimulationEnabled reports whether the simulated sensor feed should run.
func (c Config) SimulationEnabled() bool {
	return c.SimulateIntervalMillis > 0
}

func (c Config) SimulateInterval() time.Duration {
	return time.Duration(c.SimulateIntervalMillis) * time.Millisecond
}

func LogConfig(logger Logger, cfg Config) {
	logger.Info("config", "key", "LOG_ROOT", "value", emptyFallback(cfg.LogRoot, "(cwd)"))
	logger.Info("config", "key", "SENSOR_NAMES", "value", strings.Join(cfg.SensorNames, ","))
	logger.Info("config", "key", "OPS_PORT", "value", emptyFallback(cfg.OpsPort, "(disabled)"))
	logger.Info("config", "key", "LOG_LEVEL", "value", cfg.LogLevel)
	logger.Info("config", "key", "WORKER_COUNT", "value", cfg.WorkerCount)
	logger.Info("config", "key", "SUBMISSION_BUFFER", "value", cfg.SubmissionBufferSize)
	if cfg.SimulationEnabled() {
		logger.Info("config", "key", "SIMULATE_INTERVAL_MS", "value", cfg.SimulateIntervalMillis)
	} else {
		logger.Info("config", "key", "SIMULATE_INTERVAL_MS", "value", "(disabled)")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return append([]string(nil), fallback...)
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func emptyFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
