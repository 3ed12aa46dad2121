package mock

import (
	"context"
	"math/rand"
	"time"

	"github.com/quentinrf/sensor-panel/internal/domain"
)

// FakeAccelerometer simulates a phone lying flat that is shaken now and then
type FakeAccelerometer struct {
	shakeProbability float64
	info             domain.SensorInfo
	now              func() time.Time
}

// NewFakeAccelerometer creates a simulated accelerometer
// shakeProbability: chance in [0, 1] that a read is part of a shake
func NewFakeAccelerometer(shakeProbability float64) *FakeAccelerometer {
	return &FakeAccelerometer{
		shakeProbability: shakeProbability,
		info: domain.SensorInfo{
			Name:         "Simulated Accelerometer",
			Vendor:       "sensor-panel",
			Version:      1,
			Power:        0.18,
			Resolution:   0.0024,
			MaximumRange: 78.4532,
		},
		now: time.Now,
	}
}

// Kind reports the accelerometer stream
func (s *FakeAccelerometer) Kind() domain.SensorKind { return domain.KindAccelerometer }

// Info returns the simulated device capabilities
func (s *FakeAccelerometer) Info() domain.SensorInfo { return s.info }

// Read returns gravity on z plus noise, or a strong lateral jolt while shaking
func (s *FakeAccelerometer) Read(ctx context.Context) (domain.Sample, error) {
	noise := func(scale float64) float64 { return (rand.Float64() - 0.5) * 2 * scale }

	x, y, z := noise(0.05), noise(0.05), domain.StandardGravity+noise(0.05)
	if rand.Float64() < s.shakeProbability {
		// |x|, |y| >= 12 m/s^2 puts the score well past the shake threshold
		x = 12 + rand.Float64()*8
		y = -(12 + rand.Float64()*8)
	}

	return domain.NewAccelerationSample(x, y, z, s.now()), nil
}

// Close is a no-op for fake sensor
func (s *FakeAccelerometer) Close() error {
	return nil
}
