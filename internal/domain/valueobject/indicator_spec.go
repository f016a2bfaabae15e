package valueobject

import "errors"

// IndicatorSpec describes one tracked indicator: identity, display hints and
// the optional threshold (Value Object). Specs with a nil threshold are
// informational and are never assessed against levels.
type IndicatorSpec struct {
	ID        string
	Title     string
	Unit      string // "%", "$B" or "" for index points
	Precision int    // decimal places applied at render time
	Threshold *Threshold
	Context   string // historical context shown in the report's threshold note
}

// Informational reports whether the indicator carries no threshold
func (s IndicatorSpec) Informational() bool {
	return s.Threshold == nil
}

// Validate checks the spec's structural invariants
func (s IndicatorSpec) Validate() error {
	if s.ID == "" {
		return errors.New("indicator id cannot be empty")
	}
	if s.Title == "" {
		return errors.New("indicator title cannot be empty")
	}
	if s.Precision < 0 || s.Precision > 4 {
		return errors.New("indicator precision must be between 0 and 4")
	}
	if s.Threshold != nil {
		if err := s.Threshold.Direction().Validate(); err != nil {
			return err
		}
	}
	return nil
}
