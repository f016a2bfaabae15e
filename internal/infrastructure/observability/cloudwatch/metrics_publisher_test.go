package cloudwatch

import (
	"context"
	"testing"
	"time"

	"github.com/dreschagin/macro-watch/internal/application/dto"
)

func TestBuildMetricData(t *testing.T) {
	report := &dto.ReportDTO{
		RunID:         "run-1",
		GeneratedAt:   time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC),
		Overall:       "warning",
		WarningCount:  1,
		CriticalCount: 0,
		TotalKnown:    2,
		Assessments: []*dto.AssessmentDTO{
			{IndicatorID: "usd_reserve_share", Status: "warning", Value: 54.3, HasValue: true},
			{IndicatorID: "china_treasury", Status: "stable", Value: 756.0, HasValue: true},
			{IndicatorID: "debt_to_gdp", Status: "unknown", HasValue: false},
		},
	}

	data := buildMetricData(report)

	// two valued indicators plus three count metrics; the failed fetch
	// produces no IndicatorValue datum
	if len(data) != 5 {
		t.Fatalf("got %d data points, want 5", len(data))
	}

	first := data[0]
	if first.MetricName == nil || *first.MetricName != "IndicatorValue" {
		t.Errorf("MetricName = %v", first.MetricName)
	}
	if first.Value == nil || *first.Value != 54.3 {
		t.Errorf("Value = %v", first.Value)
	}
	if first.Timestamp == nil || !first.Timestamp.Equal(report.GeneratedAt) {
		t.Errorf("Timestamp = %v", first.Timestamp)
	}
	if len(first.Dimensions) != 2 {
		t.Fatalf("got %d dimensions, want 2", len(first.Dimensions))
	}

	dims := map[string]string{}
	for _, dim := range first.Dimensions {
		if dim.Name == nil || dim.Value == nil {
			t.Fatal("dimension name or value is nil")
		}
		dims[*dim.Name] = *dim.Value
	}
	if dims["Indicator"] != "usd_reserve_share" {
		t.Errorf("Indicator dimension = %q", dims["Indicator"])
	}
	if dims["Status"] != "warning" {
		t.Errorf("Status dimension = %q", dims["Status"])
	}

	counts := map[string]float64{}
	for _, datum := range data[2:] {
		counts[*datum.MetricName] = *datum.Value
	}
	if counts["WarningCount"] != 1 {
		t.Errorf("WarningCount = %v", counts["WarningCount"])
	}
	if counts["CriticalCount"] != 0 {
		t.Errorf("CriticalCount = %v", counts["CriticalCount"])
	}
	if counts["KnownIndicators"] != 2 {
		t.Errorf("KnownIndicators = %v", counts["KnownIndicators"])
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		config    MetricsPublisherConfig
		expectErr bool
	}{
		{
			name:      "valid config",
			config:    MetricsPublisherConfig{Namespace: "Test/Namespace", Region: "us-east-1"},
			expectErr: false,
		},
		{
			name:      "missing namespace",
			config:    MetricsPublisherConfig{Region: "us-east-1"},
			expectErr: true,
		},
		{
			name:      "missing region",
			config:    MetricsPublisherConfig{Namespace: "Test/Namespace"},
			expectErr: true,
		},
		{
			name:      "partial static credentials",
			config:    MetricsPublisherConfig{Namespace: "Test/Namespace", Region: "us-east-1", AccessKeyID: "key"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMetricsPublisher(context.Background(), tt.config)
			if tt.expectErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
