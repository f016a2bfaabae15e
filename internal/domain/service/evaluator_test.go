package service

import (
	"testing"

	"github.com/dreschagin/macro-watch/internal/domain/valueobject"
)

func reserveShareSpec(t *testing.T) valueobject.IndicatorSpec {
	t.Helper()

	threshold, err := valueobject.NewThreshold(55, 50, valueobject.DirectionBelow)
	if err != nil {
		t.Fatalf("NewThreshold() error = %v", err)
	}

	return valueobject.IndicatorSpec{
		ID:        "usd_reserve_share",
		Title:     "USD Share of Global Reserves",
		Unit:      "%",
		Precision: 1,
		Threshold: &threshold,
	}
}

func TestEvaluator_ThresholdStatuses(t *testing.T) {
	eval := NewEvaluator()
	spec := reserveShareSpec(t)

	tests := []struct {
		value float64
		want  valueobject.Status
	}{
		{58.0, valueobject.StatusStable},
		{52.3, valueobject.StatusWarning},
		{48.0, valueobject.StatusCritical},
	}

	for _, tt := range tests {
		reading := valueobject.Reading{Valid: true, Value: tt.value}
		assessment := eval.Evaluate(spec, reading)
		if assessment.Status() != tt.want {
			t.Errorf("Evaluate(value=%v) status = %s, want %s", tt.value, assessment.Status(), tt.want)
		}
	}
}

func TestEvaluator_FailedFetchIsUnknown(t *testing.T) {
	eval := NewEvaluator()
	spec := reserveShareSpec(t)

	reading := valueobject.FailedReading("IMF COFER", "connection refused")
	assessment := eval.Evaluate(spec, reading)

	if assessment.Status() != valueobject.StatusUnknown {
		t.Errorf("status = %s, want unknown", assessment.Status())
	}
	if assessment.HasValue() {
		t.Error("HasValue() = true for a failed fetch")
	}
	if assessment.Counted() {
		t.Error("Counted() = true for an unknown assessment")
	}
	if assessment.Reading().Err != "connection refused" {
		t.Errorf("reading error = %q, want original failure", assessment.Reading().Err)
	}
}

func TestEvaluator_InformationalIsInfo(t *testing.T) {
	eval := NewEvaluator()
	spec := valueobject.IndicatorSpec{
		ID:        "intl_vs_us",
		Title:     "International vs US Stock Performance",
		Unit:      "%",
		Precision: 1,
	}

	assessment := eval.Evaluate(spec, valueobject.Reading{Valid: true, Value: -12.4})
	if assessment.Status() != valueobject.StatusInfo {
		t.Errorf("status = %s, want info", assessment.Status())
	}
	if assessment.Counted() {
		t.Error("informational assessment must never be counted")
	}

	// A failed informational fetch is still unknown, not info
	failed := eval.Evaluate(spec, valueobject.FailedReading("Yahoo Finance", "timeout"))
	if failed.Status() != valueobject.StatusUnknown {
		t.Errorf("failed fetch status = %s, want unknown", failed.Status())
	}
}

func TestEvaluator_Deterministic(t *testing.T) {
	eval := NewEvaluator()
	spec := reserveShareSpec(t)
	reading := valueobject.Reading{Valid: true, Value: 52.3, AsOf: "2025-Q1", Source: "IMF COFER"}

	first := eval.Evaluate(spec, reading)
	second := eval.Evaluate(spec, reading)

	if first.Status() != second.Status() {
		t.Errorf("statuses differ across evaluations: %s vs %s", first.Status(), second.Status())
	}
	if first.Reading().Value != second.Reading().Value || first.Reading().AsOf != second.Reading().AsOf {
		t.Error("readings differ across evaluations of identical input")
	}
}
