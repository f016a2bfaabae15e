package port

import (
	"context"

	"github.com/dreschagin/macro-watch/internal/domain/valueobject"
)

// FetchResult is the raw outcome of one source adapter fetch.
// Used to pass data between the Infrastructure and Application layers.
type FetchResult struct {
	Success   bool
	Value     float64
	HasValue  bool
	AsOf      string
	Freshness string
	Source    string
	Err       string
	Deltas    []valueobject.Delta
	Details   []valueobject.Detail
}

// Failure builds a FetchResult for an upstream failure
func Failure(source, errMsg string) FetchResult {
	return FetchResult{
		Source: source,
		Err:    errMsg,
	}
}

// Reading converts the result into the domain-side value object
func (r FetchResult) Reading() valueobject.Reading {
	return valueobject.Reading{
		Valid:     r.Success && r.HasValue,
		Value:     r.Value,
		AsOf:      r.AsOf,
		Freshness: r.Freshness,
		Source:    r.Source,
		Err:       r.Err,
		Deltas:    r.Deltas,
		Details:   r.Details,
	}
}

// SourceAdapter defines the interface for fetching one indicator from an
// upstream data source (Port). Implementations live in the Infrastructure
// layer and must never return errors for ordinary network or payload-shape
// failures: such failures are translated into FetchResult with Success=false
// so a bad upstream degrades one indicator instead of aborting the run.
// When a source returns a time series, Value is the latest non-null
// observation, skipping nulls from the tail backward.
type SourceAdapter interface {
	// Indicator returns the catalogue indicator id this adapter serves
	Indicator() string

	// Fetch obtains the latest observation for the indicator
	Fetch(ctx context.Context) FetchResult
}
