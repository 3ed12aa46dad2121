package mock

import (
	"context"
	"math/rand"
	"time"

	"github.com/quentinrf/sensor-panel/internal/domain"
)

// FakeLight simulates an ambient light sensor for development
// This implements the ports.Sensor interface
type FakeLight struct {
	baseValue float64
	variation float64
	info      domain.SensorInfo
	now       func() time.Time
}

// NewFakeLight creates a sensor that returns values around baseValue
// baseValue: average lx (e.g., 500 for indoor lighting)
// variation: +/- range (e.g., 400 means 100-900)
// maxRange: device-reported maximum range in lx
func NewFakeLight(baseValue, variation, maxRange float64) *FakeLight {
	return &FakeLight{
		baseValue: baseValue,
		variation: variation,
		info: domain.SensorInfo{
			Name:         "Simulated Light Sensor",
			Vendor:       "sensor-panel",
			Version:      1,
			Power:        0.75,
			Resolution:   1,
			MaximumRange: maxRange,
		},
		now: time.Now,
	}
}

// Kind reports the light stream
func (s *FakeLight) Kind() domain.SensorKind { return domain.KindLight }

// Info returns the simulated device capabilities
func (s *FakeLight) Info() domain.SensorInfo { return s.info }

// Read returns a simulated light reading
// Clamped to [0, maxRange] like a real sensor saturating
func (s *FakeLight) Read(ctx context.Context) (domain.Sample, error) {
	variance := (rand.Float64() - 0.5) * 2 * s.variation
	lux := s.baseValue + variance

	if lux < 0 {
		lux = 0
	}
	if lux > s.info.MaximumRange {
		lux = s.info.MaximumRange
	}

	return domain.NewLightSample(lux, s.info.MaximumRange, s.now()), nil
}

// Close is a no-op for fake sensor
func (s *FakeLight) Close() error {
	return nil
}
