package service

import (
	"github.com/dreschagin/macro-watch/internal/domain/entity"
	"github.com/dreschagin/macro-watch/internal/domain/valueobject"
)

// Evaluator derives an assessment from a reading and its indicator spec
// (Domain Service). It is a total function: any well-formed input produces
// an assessment, a failed fetch is data, not an exception.
type Evaluator struct{}

// NewEvaluator creates a new Evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate applies the status rules:
//   - no usable value  -> unknown, no threshold comparison attempted
//   - no threshold     -> info (contextual indicator)
//   - otherwise        -> the threshold's strict below/above classification
func (e *Evaluator) Evaluate(spec valueobject.IndicatorSpec, reading valueobject.Reading) *entity.Assessment {
	status := e.statusFor(spec, reading)

	assessment, err := entity.NewAssessment(spec, status, reading)
	if err != nil {
		// Specs are validated at startup and statuses come from the rules
		// above, so this branch only guards against future catalogue bugs.
		fallback, _ := entity.NewAssessment(spec, valueobject.StatusUnknown, valueobject.FailedReading(reading.Source, err.Error()))
		return fallback
	}

	return assessment
}

func (e *Evaluator) statusFor(spec valueobject.IndicatorSpec, reading valueobject.Reading) valueobject.Status {
	if !reading.Valid {
		return valueobject.StatusUnknown
	}
	if spec.Informational() {
		return valueobject.StatusInfo
	}
	return spec.Threshold.Classify(reading.Value)
}
