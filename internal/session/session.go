// Package session hosts the classifier state of one running sensor panel.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/sensor-panel/internal/domain"
	"github.com/quentinrf/sensor-panel/internal/observability"
)

// Session owns the debounce state, display color and light log of a panel.
// Samples are handled one at a time; presentation reads may run concurrently.
type Session struct {
	id        string
	startedAt time.Time
	logs      domain.LogRepository
	accel     *domain.SensorInfo
	light     *domain.SensorInfo

	mu         sync.Mutex
	classifier *domain.Classifier
	color      domain.DisplayColor
	observers  map[int]Observer
	nextObs    int
}

// Option configures a Session
type Option func(*Session)

// WithAccelerometer declares the device accelerometer
func WithAccelerometer(info domain.SensorInfo) Option {
	return func(s *Session) { s.accel = &info }
}

// WithLightSensor declares the device light sensor
func WithLightSensor(info domain.SensorInfo) Option {
	return func(s *Session) { s.light = &info }
}

// Open creates a session and writes its banner line to the log
// The debounce window is armed at startedAt, so nothing is accepted
// during the first second of a session.
func Open(ctx context.Context, logs domain.LogRepository, startedAt time.Time, opts ...Option) (*Session, error) {
	s := &Session{
		id:         uuid.NewString(),
		startedAt:  startedAt,
		logs:       logs,
		classifier: domain.NewClassifier(startedAt),
		color:      domain.InitialColor,
		observers:  make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(s)
	}

	banner := domain.NewBannerEntry(s.id, s.light, startedAt)
	if err := logs.Append(ctx, banner); err != nil {
		return nil, fmt.Errorf("append banner: %w", err)
	}
	observability.RecordLogEntry("")

	log.Info().
		Str("session", s.id).
		Bool("accelerometer", s.accel != nil).
		Bool("light_sensor", s.light != nil).
		Msg("session opened")

	return s, nil
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// StartedAt returns when the session was opened
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Accelerometer returns the declared accelerometer, or nil if absent
func (s *Session) Accelerometer() *domain.SensorInfo { return s.accel }

// LightSensor returns the declared light sensor, or nil if absent
func (s *Session) LightSensor() *domain.SensorInfo { return s.light }

// HandleSample runs one sample through the classifier
// Samples from a sensor the session was not opened with are ignored.
func (s *Session) HandleSample(ctx context.Context, sample domain.Sample) error {
	if err := sample.Validate(); err != nil {
		observability.RecordSample(sample.Kind.String(), observability.OutcomeInvalid)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch sample.Kind {
	case domain.KindAccelerometer:
		if s.accel == nil {
			observability.RecordSample(sample.Kind.String(), observability.OutcomeIgnored)
			return nil
		}
		s.handleAcceleration(sample)
		return nil
	case domain.KindLight:
		if s.light == nil {
			observability.RecordSample(sample.Kind.String(), observability.OutcomeIgnored)
			return nil
		}
		return s.handleLight(ctx, sample)
	}
	return domain.ErrUnknownSensor
}

func (s *Session) handleAcceleration(sample domain.Sample) {
	x, y, z := sample.Values[0], sample.Values[1], sample.Values[2]
	if !s.classifier.ClassifyAcceleration(x, y, z, sample.Timestamp) {
		observability.RecordSample(sample.Kind.String(), observability.OutcomeRejected)
		return
	}
	observability.RecordSample(sample.Kind.String(), observability.OutcomeAccepted)

	s.color = s.color.Toggle()
	observability.RecordToggle()

	log.Info().
		Str("session", s.id).
		Float64("score", domain.MagnitudeScore(x, y, z)).
		Str("color", string(s.color)).
		Msg("device was shaken")

	s.publish(Event{
		Kind:      EventColorChanged,
		SessionID: s.id,
		At:        sample.Timestamp,
		Color:     s.color,
	})
}

func (s *Session) handleLight(ctx context.Context, sample domain.Sample) error {
	intensity := sample.Values[0]
	maxRange := sample.MaxRange
	if maxRange <= 0 {
		// Samples without a range use the registered sensor's
		maxRange = s.light.MaximumRange
	}
	result, ok := s.classifier.ClassifyLight(intensity, maxRange, sample.Timestamp)
	if !ok {
		observability.RecordSample(sample.Kind.String(), observability.OutcomeRejected)
		return nil
	}
	observability.RecordSample(sample.Kind.String(), observability.OutcomeAccepted)

	entry := domain.NewLightEntry(s.id, result, sample.Timestamp)
	if err := s.logs.Append(ctx, entry); err != nil {
		// The classifier already accepted the sample; the window stays restarted
		log.Error().Err(err).Str("session", s.id).Msg("failed to append light entry")
		return fmt.Errorf("append light entry: %w", err)
	}
	observability.RecordLogEntry(string(result.Bucket))

	log.Debug().
		Str("session", s.id).
		Float64("lux", intensity).
		Str("bucket", string(result.Bucket)).
		Int64("seq", entry.Seq).
		Msg("light entry appended")

	s.publish(Event{
		Kind:      EventLogAppended,
		SessionID: s.id,
		At:        sample.Timestamp,
		Color:     s.color,
		Entry:     entry,
	})
	return nil
}

// Color returns the current display color
func (s *Session) Color() domain.DisplayColor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

// Log returns the session's light log, oldest first
func (s *Session) Log(ctx context.Context) ([]*domain.LogEntry, error) {
	return s.logs.List(ctx, s.id)
}

// Capabilities renders the accelerometer capabilities panel
func (s *Session) Capabilities() string {
	return domain.AccelerometerPanel(s.accel)
}
