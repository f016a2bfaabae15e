package entity

import (
	"github.com/dreschagin/macro-watch/internal/domain/valueobject"
)

// Assessment represents one indicator's evaluated result for a run
// (Aggregate Root). Derived deterministically from the indicator spec and
// the reading: no clock, no randomness, so evaluating the same inputs twice
// produces identical assessments.
type Assessment struct {
	spec    valueobject.IndicatorSpec
	status  valueobject.Status
	reading valueobject.Reading
}

// NewAssessment creates an assessment (Factory Method)
func NewAssessment(
	spec valueobject.IndicatorSpec,
	status valueobject.Status,
	reading valueobject.Reading,
) (*Assessment, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Assessment{
		spec:    spec,
		status:  status,
		reading: reading,
	}, nil
}

// Spec returns the indicator specification
func (a *Assessment) Spec() valueobject.IndicatorSpec {
	return a.spec
}

// Status returns the evaluated status
func (a *Assessment) Status() valueobject.Status {
	return a.status
}

// Reading returns the normalized source reading
func (a *Assessment) Reading() valueobject.Reading {
	return a.reading
}

// Domain Methods

// HasValue reports whether the underlying fetch produced a usable value
func (a *Assessment) HasValue() bool {
	return a.reading.Valid
}

// Informational reports whether the indicator is display-only.
// Informational assessments never contribute to aggregate counts.
func (a *Assessment) Informational() bool {
	return a.spec.Informational()
}

// Counted reports whether the assessment joins the aggregate totals
func (a *Assessment) Counted() bool {
	return !a.Informational() && a.status.Known()
}
