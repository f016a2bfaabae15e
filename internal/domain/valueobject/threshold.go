package valueobject

import "errors"

// Threshold represents the static warning/critical boundaries for one
// indicator (Value Object). Immutable after construction.
type Threshold struct {
	warning   float64
	critical  float64
	direction Direction
}

// NewThreshold creates a Threshold with validation.
// For direction "below" the critical level must sit under the warning level;
// for "above" it must sit over it.
func NewThreshold(warning, critical float64, direction Direction) (Threshold, error) {
	if err := direction.Validate(); err != nil {
		return Threshold{}, err
	}

	switch direction {
	case DirectionBelow:
		if critical >= warning {
			return Threshold{}, errors.New("critical level must be below warning level")
		}
	case DirectionAbove:
		if critical <= warning {
			return Threshold{}, errors.New("critical level must be above warning level")
		}
	}

	return Threshold{
		warning:   warning,
		critical:  critical,
		direction: direction,
	}, nil
}

// Warning returns the warning level
func (t Threshold) Warning() float64 {
	return t.warning
}

// Critical returns the critical level
func (t Threshold) Critical() float64 {
	return t.critical
}

// Direction returns the comparison direction
func (t Threshold) Direction() Direction {
	return t.direction
}

// Classify maps a value to a status. Comparisons are strict: a value exactly
// on a boundary is stable, never warning or critical.
func (t Threshold) Classify(value float64) Status {
	switch t.direction {
	case DirectionBelow:
		if value < t.critical {
			return StatusCritical
		}
		if value < t.warning {
			return StatusWarning
		}
		return StatusStable
	case DirectionAbove:
		if value > t.critical {
			return StatusCritical
		}
		if value > t.warning {
			return StatusWarning
		}
		return StatusStable
	default:
		return StatusUnknown
	}
}
