package ports

import (
	"context"

	"github.com/quentinrf/sensor-panel/internal/domain"
)

// Sensor defines how to read a device sensor
// This is a PORT - adapters (Mock, device bridges) will implement it
type Sensor interface {
	// Kind reports which stream the sensor feeds
	Kind() domain.SensorKind

	// Info returns the capabilities the device reports
	Info() domain.SensorInfo

	// Read returns the current sample
	Read(ctx context.Context) (domain.Sample, error)

	// Close releases any resources
	Close() error
}

// SampleHandler consumes samples in delivery order
type SampleHandler interface {
	HandleSample(ctx context.Context, sample domain.Sample) error
}
