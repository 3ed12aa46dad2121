package mock

import (
	"context"
	"testing"

	"github.com/quentinrf/sensor-panel/internal/domain"
)

func TestFakeLight_StaysInRange(t *testing.T) {
	s := NewFakeLight(500, 2000, 1000)

	for i := 0; i < 200; i++ {
		sample, err := s.Read(context.Background())
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if err := sample.Validate(); err != nil {
			t.Fatalf("invalid sample: %v", err)
		}
		if v := sample.Values[0]; v < 0 || v > 1000 {
			t.Fatalf("reading %v outside [0, 1000]", v)
		}
		if sample.MaxRange != 1000 {
			t.Errorf("expected max range 1000, got %v", sample.MaxRange)
		}
	}
}

func TestFakeAccelerometer_ShakeAndRest(t *testing.T) {
	ctx := context.Background()

	shaking := NewFakeAccelerometer(1)
	sample, _ := shaking.Read(ctx)
	if score := domain.MagnitudeScore(sample.Values[0], sample.Values[1], sample.Values[2]); score < domain.ShakeThreshold {
		t.Errorf("expected shake score >= %v, got %v", domain.ShakeThreshold, score)
	}

	resting := NewFakeAccelerometer(0)
	sample, _ = resting.Read(ctx)
	if score := domain.MagnitudeScore(sample.Values[0], sample.Values[1], sample.Values[2]); score >= domain.ShakeThreshold {
		t.Errorf("expected resting score below threshold, got %v", score)
	}
	if resting.Kind() != domain.KindAccelerometer {
		t.Errorf("unexpected kind %v", resting.Kind())
	}
}
