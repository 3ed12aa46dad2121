package domain

// DisplayColor is the two-valued color of the shake panel
type DisplayColor string

const (
	ColorGreen DisplayColor = "GREEN"
	ColorRed   DisplayColor = "RED"
)

// InitialColor is the color a new session starts with
const InitialColor = ColorGreen

// Toggle returns the other color
func (c DisplayColor) Toggle() DisplayColor {
	if c == ColorGreen {
		return ColorRed
	}
	return ColorGreen
}
