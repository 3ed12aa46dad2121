// Package config centralises configuration parsing for the sensor panel.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	GRPCPort       string
	HTTPAddress    string
	SampleInterval time.Duration
	RepoType       string // "memory" | "sqlite"
	DBPath         string // SQLite database file path (used when RepoType=sqlite)
	SensorType     string // "mock"
	Accelerometer  bool   // false simulates a device without an accelerometer
	LightSensor    bool   // false simulates a device without a light sensor
	ShakeChance    float64
	LightBase      float64
	LightVariation float64
	LightMaxRange  float64
	WatchBuffer    int
	KafkaBrokers   []string // empty disables event publishing
	KafkaTopic     string
	LogLevel       string
	TLSCert        string // path to this service's certificate
	TLSKey         string // path to this service's private key
	TLSCA          string // path to the CA certificate
}

// Load reads environment variables into Config, applying defaults for local dev
func Load() Config {
	return Config{
		GRPCPort:       getEnv("PORT", "50051"),
		HTTPAddress:    getEnv("HTTP_ADDRESS", ":8080"),
		SampleInterval: getDurationEnv("SAMPLE_INTERVAL", 200*time.Millisecond),
		RepoType:       getEnv("REPO_TYPE", "memory"),
		DBPath:         getEnv("DB_PATH", "./sensor-panel.db"),
		SensorType:     getEnv("SENSOR_TYPE", "mock"),
		Accelerometer:  getBoolEnv("ACCELEROMETER", true),
		LightSensor:    getBoolEnv("LIGHT_SENSOR", true),
		ShakeChance:    getFloatEnv("SHAKE_CHANCE", 0.02),
		LightBase:      getFloatEnv("LIGHT_BASE", 500),
		LightVariation: getFloatEnv("LIGHT_VARIATION", 450),
		LightMaxRange:  getFloatEnv("LIGHT_MAX_RANGE", 1000),
		WatchBuffer:    getIntEnv("WATCH_BUFFER", 64),
		KafkaBrokers:   splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "sensor_panel_events"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		TLSCert:        os.Getenv("TLS_CERT"),
		TLSKey:         os.Getenv("TLS_KEY"),
		TLSCA:          os.Getenv("TLS_CA"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
