package service

import (
	"fmt"

	"github.com/dreschagin/macro-watch/internal/domain/entity"
	"github.com/dreschagin/macro-watch/internal/domain/valueobject"
)

// Aggregate is the combined severity of one run.
type Aggregate struct {
	Overall       valueobject.Status
	WarningCount  int
	CriticalCount int
	TotalKnown    int
	Summary       string
}

// AggregateResolver combines per-indicator assessments into one overall
// severity (Domain Service). Deliberately separate from the evaluator: "is
// this one number bad" and "how alarmed should the whole report sound" are
// different policies with different thresholds.
type AggregateResolver struct{}

// NewAggregateResolver creates a new AggregateResolver
func NewAggregateResolver() *AggregateResolver {
	return &AggregateResolver{}
}

// Resolve applies the tier rules, first match wins:
//  1. 2+ criticals                    -> critical
//  2. 1+ critical and 2+ warnings    -> critical
//  3. 3+ warnings                    -> critical
//  4. 1+ critical                    -> warning
//  5. 2+ warnings                    -> warning
//  6. anything known                 -> stable (a single warning stays green)
//  7. nothing known                  -> unknown
//
// Informational assessments never affect counts or tier.
func (r *AggregateResolver) Resolve(assessments []*entity.Assessment) Aggregate {
	var warnings, criticals, known int

	for _, a := range assessments {
		if a.Informational() {
			continue
		}
		switch a.Status() {
		case valueobject.StatusCritical:
			criticals++
			known++
		case valueobject.StatusWarning:
			warnings++
			known++
		case valueobject.StatusStable:
			known++
		}
	}

	agg := Aggregate{
		WarningCount:  warnings,
		CriticalCount: criticals,
		TotalKnown:    known,
	}

	switch {
	case criticals >= 2 || (criticals >= 1 && warnings >= 2) || warnings >= 3:
		agg.Overall = valueobject.StatusCritical
		agg.Summary = fmt.Sprintf("HIGH ALERT: %d critical, %d warning out of %d metrics", criticals, warnings, known)
	case criticals >= 1:
		agg.Overall = valueobject.StatusWarning
		agg.Summary = fmt.Sprintf("Elevated concern: %d critical, %d warning out of %d metrics", criticals, warnings, known)
	case warnings >= 2:
		agg.Overall = valueobject.StatusWarning
		agg.Summary = fmt.Sprintf("Elevated concern: %d warnings out of %d metrics", warnings, known)
	case known > 0 && warnings == 1:
		agg.Overall = valueobject.StatusStable
		agg.Summary = fmt.Sprintf("All %d metrics stable (1 warning)", known)
	case known > 0:
		agg.Overall = valueobject.StatusStable
		agg.Summary = fmt.Sprintf("All %d metrics stable", known)
	default:
		agg.Overall = valueobject.StatusUnknown
		agg.Summary = "Data unavailable"
	}

	return agg
}
