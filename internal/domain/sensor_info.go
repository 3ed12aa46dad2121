package domain

import (
	"fmt"
	"strings"
)

// SensorInfo describes the capabilities a device reports for a sensor
type SensorInfo struct {
	Name         string
	Vendor       string
	Version      int
	Power        float64 // mA
	Resolution   float64
	MaximumRange float64
}

// AccelerometerPanel renders the static capabilities text
// A nil info means the device has no accelerometer.
func AccelerometerPanel(info *SensorInfo) string {
	if info == nil {
		return "Sorry, there is no accelerometer"
	}

	var b strings.Builder
	b.WriteString("Accelerometer Sensor Capabilities:\n")
	fmt.Fprintf(&b, "Name: %s\n", info.Name)
	fmt.Fprintf(&b, "Vendor: %s\n", info.Vendor)
	fmt.Fprintf(&b, "Version: %d\n", info.Version)
	fmt.Fprintf(&b, "Power: %s mA\n", FormatValue(info.Power))
	fmt.Fprintf(&b, "Resolution: %s m/s^2\n", FormatValue(info.Resolution))
	fmt.Fprintf(&b, "Maximum Range: %s m/s^2\n", FormatValue(info.MaximumRange))
	return b.String()
}
