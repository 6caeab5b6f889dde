package types

import "fmt"

// Direction represents whether a message was sent or received by the device owner
type Direction string

const (
	DirectionReceived Direction = "received"
	DirectionSent     Direction = "sent"
)

// AllDirections returns all valid message directions
func AllDirections() []Direction {
	return []Direction{
		DirectionReceived,
		DirectionSent,
	}
}

// IsValid checks if the direction is valid
func (d Direction) IsValid() bool {
	switch d {
	case DirectionReceived, DirectionSent:
		return true
	default:
		return false
	}
}

// IsSent reports whether the message was sent by the device owner
func (d Direction) IsSent() bool {
	return d == DirectionSent
}

// String returns the string representation of the direction
func (d Direction) String() string {
	return string(d)
}

// ParseDirection parses a string into a Direction
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid message direction: %s", s)
	}
	return d, nil
}
