package domain

import (
	"math"
	"time"
)

const (
	// StandardGravity is Earth's gravity in m/s^2
	StandardGravity = 9.80665

	// ShakeThreshold is the minimum magnitude score counted as a shake
	ShakeThreshold = 200.0

	// LightDeltaThreshold is the minimum change in lx from the last
	// accepted light reading
	LightDeltaThreshold = 200.0

	// DebounceWindow is the minimum time between two accepted samples
	DebounceWindow = 1000 * time.Millisecond
)

// MagnitudeScore derives the shake score of an acceleration triple.
//
// Only the z term is divided by g^2. This matches the formula the panel
// has always used; ShakeThreshold is calibrated against it, so do not
// "fix" one without re-validating the other.
func MagnitudeScore(x, y, z float64) float64 {
	return x*x + y*y + z*z/(StandardGravity*StandardGravity)
}

// Classifier holds the debounce state shared by both sensor streams
// An accepted sample of either kind restarts the debounce window for both.
// Classifier is not safe for concurrent use; callers serialize samples.
type Classifier struct {
	lastUpdate    time.Time
	lastIntensity float64
}

// NewClassifier returns a classifier whose debounce window starts at armedAt
func NewClassifier(armedAt time.Time) *Classifier {
	return &Classifier{lastUpdate: armedAt}
}

// LastUpdate returns the time of the last accepted sample
func (c *Classifier) LastUpdate() time.Time {
	return c.lastUpdate
}

// LastIntensity returns the intensity of the last accepted light sample
func (c *Classifier) LastIntensity() float64 {
	return c.lastIntensity
}

func (c *Classifier) debounced(now time.Time) bool {
	return now.Sub(c.lastUpdate) < DebounceWindow
}

// ClassifyAcceleration reports whether the sample should toggle the display color
func (c *Classifier) ClassifyAcceleration(x, y, z float64, now time.Time) bool {
	if MagnitudeScore(x, y, z) < ShakeThreshold {
		return false
	}
	if c.debounced(now) {
		return false
	}
	c.lastUpdate = now
	return true
}

// ClassifyLight buckets an accepted light reading
// The bool result is false when either debounce gate rejects the sample.
func (c *Classifier) ClassifyLight(intensity, maxRange float64, now time.Time) (LightClassification, bool) {
	if c.debounced(now) || math.Abs(intensity-c.lastIntensity) < LightDeltaThreshold {
		return LightClassification{}, false
	}

	result := LightClassification{
		Intensity: intensity,
		MaxRange:  maxRange,
		Bucket:    BucketFor(intensity, maxRange),
	}
	c.lastUpdate = now
	c.lastIntensity = intensity
	return result, true
}

// LightClassification is the outcome of an accepted light sample
type LightClassification struct {
	Intensity float64
	MaxRange  float64
	Bucket    Bucket
}

// Bucket is a light intensity class relative to the sensor's range
type Bucket string

const (
	BucketLow    Bucket = "LOW"
	BucketMedium Bucket = "MEDIUM"
	BucketHigh   Bucket = "HIGH"
)

// BucketFor compares intensity against thirds of maxRange
// Boundaries are half-open: a value equal to a threshold lands in the higher bucket.
func BucketFor(intensity, maxRange float64) Bucket {
	top := maxRange * 2 / 3
	bot := maxRange / 3

	if intensity >= top {
		return BucketHigh
	} else if intensity >= bot {
		return BucketMedium
	}
	return BucketLow
}
