package domain

import "fmt"

// Direction is the head movement applied after a write.
type Direction int

const (
	Stay Direction = iota
	Left
	Right
)

// String returns the short form used in diagrams and records: L, R or S.
func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	case Stay:
		return "S"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	switch d {
	case Left, Right, Stay:
		return []byte(d.String()), nil
	}
	return nil, fmt.Errorf("invalid direction %d", int(d))
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Accepts the short forms and the lowercase long forms.
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "L", "left":
		*d = Left
	case "R", "right":
		*d = Right
	case "S", "stay":
		*d = Stay
	default:
		return fmt.Errorf("invalid direction %q", string(text))
	}
	return nil
}
