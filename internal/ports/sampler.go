package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sampler polls registered sensors and delivers their samples
type Sampler struct {
	sensors  []Sensor
	handler  SampleHandler
	interval time.Duration
}

// NewSampler creates a sampler for the sensors that are present
func NewSampler(handler SampleHandler, interval time.Duration, sensors ...Sensor) *Sampler {
	return &Sampler{
		sensors:  sensors,
		handler:  handler,
		interval: interval,
	}
}

// Start polls every interval until ctx is cancelled
// All sensors are read from this goroutine, so the handler sees one
// sample at a time and each stream in FIFO order.
func (s *Sampler) Start(ctx context.Context) {
	log.Info().
		Dur("interval", s.interval).
		Int("sensors", len(s.sensors)).
		Msg("starting sampler")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sampleOnce(ctx)

		case <-ctx.Done():
			log.Info().Msg("stopping sampler")
			return
		}
	}
}

// sampleOnce reads every sensor once and hands the samples on
func (s *Sampler) sampleOnce(ctx context.Context) {
	for _, sensor := range s.sensors {
		sample, err := sensor.Read(ctx)
		if err != nil {
			log.Error().Err(err).Str("sensor", sensor.Kind().String()).Msg("failed to read sensor")
			continue
		}

		if err := s.handler.HandleSample(ctx, sample); err != nil {
			log.Error().Err(err).Str("sensor", sensor.Kind().String()).Msg("failed to handle sample")
		}
	}
}
