package dto

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dreschagin/macro-watch/internal/domain/entity"
	"github.com/dreschagin/macro-watch/internal/domain/service"
)

// DeltaDTO is a formatted trend change row
type DeltaDTO struct {
	Label   string `json:"label"`
	Display string `json:"display"`
}

// DetailDTO is an auxiliary display row
type DetailDTO struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AssessmentDTO represents one evaluated indicator for rendering and for
// event payloads. Numeric rounding happens here, at the presentation
// boundary; the assessment itself keeps full precision.
type AssessmentDTO struct {
	IndicatorID   string      `json:"indicator_id"`
	Title         string      `json:"title"`
	Status        string      `json:"status"`
	Informational bool        `json:"informational"`
	Value         float64     `json:"value"`
	HasValue      bool        `json:"has_value"`
	DisplayValue  string      `json:"display_value"`
	Unit          string      `json:"unit"`
	AsOf          string      `json:"as_of,omitempty"`
	Freshness     string      `json:"freshness,omitempty"`
	Source        string      `json:"source,omitempty"`
	Error         string      `json:"error,omitempty"`
	Deltas        []DeltaDTO  `json:"deltas,omitempty"`
	Details       []DetailDTO `json:"details,omitempty"`
	ThresholdNote string      `json:"threshold_note,omitempty"`
	Context       string      `json:"context,omitempty"`
}

// HostDTO describes the machine that produced the report
type HostDTO struct {
	Hostname       string  `json:"hostname"`
	Platform       string  `json:"platform"`
	UptimeHours    float64 `json:"uptime_hours"`
	MemUsedPercent float64 `json:"mem_used_percent"`
}

// ReportDTO represents one complete run
type ReportDTO struct {
	RunID         string           `json:"run_id"`
	GeneratedAt   time.Time        `json:"generated_at"`
	Overall       string           `json:"overall"`
	WarningCount  int              `json:"warning_count"`
	CriticalCount int              `json:"critical_count"`
	TotalKnown    int              `json:"total_known"`
	Summary       string           `json:"summary"`
	Assessments   []*AssessmentDTO `json:"assessments"`
	Host          *HostDTO         `json:"host,omitempty"`
}

// FromAssessment converts a Domain Entity to a DTO
func FromAssessment(a *entity.Assessment) *AssessmentDTO {
	spec := a.Spec()
	reading := a.Reading()

	d := &AssessmentDTO{
		IndicatorID:   spec.ID,
		Title:         spec.Title,
		Status:        a.Status().String(),
		Informational: spec.Informational(),
		Value:         reading.Value,
		HasValue:      reading.Valid,
		DisplayValue:  FormatValue(reading.Value, reading.Valid, spec.Unit, spec.Precision),
		Unit:          spec.Unit,
		AsOf:          reading.AsOf,
		Freshness:     reading.Freshness,
		Source:        reading.Source,
		Error:         reading.Err,
		Context:       spec.Context,
	}

	for _, delta := range reading.Deltas {
		d.Deltas = append(d.Deltas, DeltaDTO{
			Label:   delta.Label,
			Display: FormatDelta(delta.Value, delta.Unit, spec.Precision),
		})
	}

	for _, detail := range reading.Details {
		d.Details = append(d.Details, DetailDTO{Label: detail.Label, Value: detail.Value})
	}

	if spec.Threshold != nil {
		t := spec.Threshold
		d.ThresholdNote = fmt.Sprintf("Warning: %s %s | Critical: %s %s",
			t.Direction().String(),
			FormatValue(t.Warning(), true, spec.Unit, spec.Precision),
			t.Direction().String(),
			FormatValue(t.Critical(), true, spec.Unit, spec.Precision),
		)
	}

	return d
}

// NewReportDTO builds the report DTO for one run. Assessments keep the
// catalogue order they were passed in.
func NewReportDTO(
	runID string,
	generatedAt time.Time,
	aggregate service.Aggregate,
	assessments []*entity.Assessment,
) *ReportDTO {
	report := &ReportDTO{
		RunID:         runID,
		GeneratedAt:   generatedAt,
		Overall:       aggregate.Overall.String(),
		WarningCount:  aggregate.WarningCount,
		CriticalCount: aggregate.CriticalCount,
		TotalKnown:    aggregate.TotalKnown,
		Summary:       aggregate.Summary,
		Assessments:   make([]*AssessmentDTO, 0, len(assessments)),
	}

	for _, a := range assessments {
		report.Assessments = append(report.Assessments, FromAssessment(a))
	}

	return report
}

// Subject builds the one-line delivery subject from the aggregate tier
func (r *ReportDTO) Subject() string {
	monthYear := r.GeneratedAt.Format("January 2006")

	switch {
	case r.CriticalCount > 0:
		return fmt.Sprintf("Macro Watch: %d CRITICAL - %s", r.CriticalCount, monthYear)
	case r.WarningCount > 0:
		return fmt.Sprintf("Macro Watch: %d Warning - %s", r.WarningCount, monthYear)
	case r.TotalKnown > 0:
		return fmt.Sprintf("Macro Watch: All Stable - %s", monthYear)
	default:
		return fmt.Sprintf("Macro Watch: Data Unavailable - %s", monthYear)
	}
}

// FormatValue renders a numeric value with its unit at the indicator's
// precision. Missing values render as the "N/A" sentinel.
func FormatValue(value float64, valid bool, unit string, precision int) string {
	if !valid {
		return "N/A"
	}

	number := strconv.FormatFloat(value, 'f', precision, 64)

	switch unit {
	case "%":
		return number + "%"
	case "$B":
		return "$" + number + "B"
	default:
		return number
	}
}

// FormatDelta renders a trend change with an explicit sign, e.g. "+0.5%"
// or "-12.3B". Deltas in the indicator's native unit use its precision.
func FormatDelta(value float64, unit string, precision int) string {
	number := strconv.FormatFloat(value, 'f', precision, 64)
	if value > 0 {
		number = "+" + number
	}

	switch unit {
	case "%":
		return number + "%"
	case "$B":
		return number + "B"
	default:
		return number
	}
}
