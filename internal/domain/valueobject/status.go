package valueobject

import "errors"

// Status represents the evaluated state of one indicator (Value Object)
type Status string

const (
	StatusStable   Status = "stable"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
	StatusUnknown  Status = "unknown"
	StatusInfo     Status = "info"
)

// Validate checks that the status is one of the allowed values
func (s Status) Validate() error {
	switch s {
	case StatusStable, StatusWarning, StatusCritical, StatusUnknown, StatusInfo:
		return nil
	default:
		return errors.New("invalid status")
	}
}

// Known reports whether the status participates in aggregate counting.
// Unknown and info assessments are excluded from the totals.
func (s Status) Known() bool {
	switch s {
	case StatusStable, StatusWarning, StatusCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// AllStatuses returns the list of all allowed statuses
func AllStatuses() []Status {
	return []Status{StatusStable, StatusWarning, StatusCritical, StatusUnknown, StatusInfo}
}
