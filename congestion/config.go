package congestion

import "strings"

// Config selects the congestion control algorithm for a connection.
type Config struct {
	// Algorithm to use: "reno" or "cubic".
	Algorithm string `json:"algorithm"`
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{Algorithm: "reno"}
}

// Type maps the configured name to an algorithm type. Unknown names map to
// Reno-Modified.
func (c Config) Type() Type {
	switch strings.ToLower(c.Algorithm) {
	case "cubic":
		return TypeCubic
	default:
		return TypeRenoModified
	}
}
