package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "SAMPLE_INTERVAL", "REPO_TYPE", "LIGHT_SENSOR", "KAFKA_BROKERS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.GRPCPort != "50051" {
		t.Errorf("expected default port 50051, got %q", cfg.GRPCPort)
	}
	if cfg.SampleInterval != 200*time.Millisecond {
		t.Errorf("unexpected default interval %v", cfg.SampleInterval)
	}
	if cfg.RepoType != "memory" {
		t.Errorf("expected memory repo, got %q", cfg.RepoType)
	}
	if !cfg.LightSensor {
		t.Error("expected light sensor enabled by default")
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Errorf("expected publishing disabled, got brokers %v", cfg.KafkaBrokers)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SAMPLE_INTERVAL", "1s")
	t.Setenv("LIGHT_SENSOR", "false")
	t.Setenv("LIGHT_MAX_RANGE", "40000")
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv("WATCH_BUFFER", "not-a-number")

	cfg := Load()

	if cfg.SampleInterval != time.Second {
		t.Errorf("expected 1s interval, got %v", cfg.SampleInterval)
	}
	if cfg.LightSensor {
		t.Error("expected light sensor disabled")
	}
	if cfg.LightMaxRange != 40000 {
		t.Errorf("expected max range 40000, got %v", cfg.LightMaxRange)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if cfg.WatchBuffer != 64 {
		t.Errorf("expected invalid WATCH_BUFFER to fall back to 64, got %d", cfg.WatchBuffer)
	}
}
