package domain

import (
	"fmt"
	"time"
)

// SensorKind identifies the sensor that produced a sample
type SensorKind int

const (
	KindUnknown SensorKind = iota
	KindAccelerometer
	KindLight
)

func (k SensorKind) String() string {
	switch k {
	case KindAccelerometer:
		return "accelerometer"
	case KindLight:
		return "light"
	}
	return "unknown"
}

// ParseSensorKind is the inverse of SensorKind.String
func ParseSensorKind(s string) (SensorKind, error) {
	switch s {
	case "accelerometer":
		return KindAccelerometer, nil
	case "light":
		return KindLight, nil
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownSensor, s)
}

// Sample is a single raw sensor event
// Accelerometer samples carry x, y, z in Values (m/s^2).
// Light samples carry the intensity in Values[0] (lx) and the
// device-reported MaxRange of the sensor.
type Sample struct {
	Kind      SensorKind
	Timestamp time.Time
	Values    []float64
	MaxRange  float64
}

// NewAccelerationSample builds an accelerometer sample
func NewAccelerationSample(x, y, z float64, at time.Time) Sample {
	return Sample{Kind: KindAccelerometer, Timestamp: at, Values: []float64{x, y, z}}
}

// NewLightSample builds a light sample
func NewLightSample(intensity, maxRange float64, at time.Time) Sample {
	return Sample{Kind: KindLight, Timestamp: at, Values: []float64{intensity}, MaxRange: maxRange}
}

// Validate checks that the sample carries enough values for its kind
func (s Sample) Validate() error {
	switch s.Kind {
	case KindAccelerometer:
		if len(s.Values) < 3 {
			return fmt.Errorf("%w: accelerometer needs 3 axis values, got %d", ErrMalformedSample, len(s.Values))
		}
	case KindLight:
		if len(s.Values) < 1 {
			return fmt.Errorf("%w: light sample has no intensity", ErrMalformedSample)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownSensor, int(s.Kind))
	}
	return nil
}
