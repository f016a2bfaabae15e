package valueobject

import "errors"

// Direction represents which side of a threshold is the concerning one (Value Object)
type Direction string

const (
	// DirectionBelow warns when the value falls under the threshold
	DirectionBelow Direction = "below"
	// DirectionAbove warns when the value rises above the threshold
	DirectionAbove Direction = "above"
)

// Validate checks that the direction is one of the allowed values
func (d Direction) Validate() error {
	switch d {
	case DirectionBelow, DirectionAbove:
		return nil
	default:
		return errors.New("invalid threshold direction")
	}
}

// String returns the string representation of the direction
func (d Direction) String() string {
	return string(d)
}
