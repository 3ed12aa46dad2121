package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LogEntry is one line of the light log
// Entries are immutable once appended. Seq is assigned by the repository.
type LogEntry struct {
	Seq       int64
	SessionID string
	Text      string
	Timestamp time.Time

	// Set only for classification entries
	Intensity *float64
	Bucket    Bucket
}

// Clone returns a copy of e that shares no memory with it
func (e *LogEntry) Clone() *LogEntry {
	c := *e
	if e.Intensity != nil {
		v := *e.Intensity
		c.Intensity = &v
	}
	return &c
}

// NewLightEntry formats an accepted light classification
func NewLightEntry(sessionID string, c LightClassification, at time.Time) *LogEntry {
	intensity := c.Intensity
	return &LogEntry{
		SessionID: sessionID,
		Text:      fmt.Sprintf("New value light sensor = %s\n%s intensity", FormatValue(c.Intensity), c.Bucket),
		Timestamp: at,
		Intensity: &intensity,
		Bucket:    c.Bucket,
	}
}

// NewBannerEntry builds the first log line of a session
// It announces the light sensor, or its absence when info is nil.
func NewBannerEntry(sessionID string, info *SensorInfo, at time.Time) *LogEntry {
	text := "Sorry, there is no light sensor"
	if info != nil {
		text = fmt.Sprintf("There is a light sensor!\nMaximum Range: %s lxs", FormatValue(info.MaximumRange))
	}
	return &LogEntry{
		SessionID: sessionID,
		Text:      text,
		Timestamp: at,
	}
}

// FormatValue renders a reading the way the panel shows it:
// shortest representation, always with a fractional part ("250.0", "12.5")
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
