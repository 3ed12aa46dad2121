package grpc

// GetStateRequest asks for the session summary
type GetStateRequest struct{}

// GetStateResponse summarizes the running session
type GetStateResponse struct {
	SessionID     string `json:"session_id"`
	Color         string `json:"color"`
	StartedAt     int64  `json:"started_at"` // unix ms
	LogLength     int    `json:"log_length"`
	Accelerometer bool   `json:"accelerometer"`
	LightSensor   bool   `json:"light_sensor"`
}

// GetLogRequest asks for log entries with Seq > AfterSeq
type GetLogRequest struct {
	AfterSeq int64 `json:"after_seq,omitempty"`
}

// GetLogResponse holds log entries oldest first
type GetLogResponse struct {
	Entries []*LogEntry `json:"entries"`
}

// LogEntry is one line of the light log
type LogEntry struct {
	Seq       int64    `json:"seq"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp"` // unix ms
	Intensity *float64 `json:"intensity,omitempty"`
	Bucket    string   `json:"bucket,omitempty"`
}

// GetCapabilitiesRequest asks for the sensor capabilities
type GetCapabilitiesRequest struct{}

// GetCapabilitiesResponse describes the device sensors
// A nil sensor is absent from the device.
type GetCapabilitiesResponse struct {
	Accelerometer *SensorInfo `json:"accelerometer,omitempty"`
	LightSensor   *SensorInfo `json:"light_sensor,omitempty"`
	Panel         string      `json:"panel"`
}

// SensorInfo mirrors domain.SensorInfo
type SensorInfo struct {
	Name         string  `json:"name"`
	Vendor       string  `json:"vendor"`
	Version      int     `json:"version"`
	Power        float64 `json:"power"`
	Resolution   float64 `json:"resolution"`
	MaximumRange float64 `json:"maximum_range"`
}

// InjectSampleRequest feeds one sample to the session
// A zero Timestamp means "now".
type InjectSampleRequest struct {
	Kind      string    `json:"kind"` // "accelerometer" | "light"
	Values    []float64 `json:"values"`
	MaxRange  float64   `json:"max_range,omitempty"`
	Timestamp int64     `json:"timestamp,omitempty"` // unix ms
}

// InjectSampleResponse reports the session state after the sample
type InjectSampleResponse struct {
	Color     string `json:"color"`
	LogLength int    `json:"log_length"`
}

// WatchRequest opens a stream of session events
type WatchRequest struct{}

// WatchEvent is one session event; the first event of a stream is a snapshot
type WatchEvent struct {
	Kind      string    `json:"kind"`
	SessionID string    `json:"session_id"`
	At        int64     `json:"at"` // unix ms
	Color     string    `json:"color"`
	Entry     *LogEntry `json:"entry,omitempty"`
}

// EventSnapshot is the kind of the first event sent on a watch stream
const EventSnapshot = "snapshot"
