package render

import (
	"strings"
	"testing"
	"time"

	"github.com/dreschagin/macro-watch/internal/application/dto"
)

func sampleReport() *dto.ReportDTO {
	return &dto.ReportDTO{
		RunID:         "run-42",
		GeneratedAt:   time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC),
		Overall:       "warning",
		WarningCount:  1,
		CriticalCount: 0,
		TotalKnown:    2,
		Summary:       "Elevated concern: 0 critical, 1 warning out of 2 metrics",
		Assessments: []*dto.AssessmentDTO{
			{
				IndicatorID:   "usd_reserve_share",
				Title:         "USD share of global FX reserves",
				Status:        "warning",
				HasValue:      true,
				DisplayValue:  "54.3%",
				Deltas:        []dto.DeltaDTO{{Label: "1-year change", Display: "-1.2%"}},
				ThresholdNote: "Warning: below 55.0% | Critical: below 50.0%",
				Freshness:     "2026-Q2",
				Source:        "IMF COFER via DBnomics",
			},
			{
				IndicatorID:  "china_treasury",
				Title:        "China Treasury holdings",
				Status:       "stable",
				HasValue:     true,
				DisplayValue: "$756.0B",
				Details:      []dto.DetailDTO{{Label: "12-month trend", Value: "Selling"}},
			},
			{
				IndicatorID:   "intl_vs_us",
				Title:         "International vs US equities",
				Status:        "info",
				Informational: true,
				HasValue:      true,
				DisplayValue:  "11.2%",
			},
			{
				IndicatorID:  "debt_to_gdp",
				Title:        "Federal debt to GDP",
				Status:       "unknown",
				DisplayValue: "N/A",
				Error:        "fetch GFDEGDQ188S: status 502",
			},
		},
	}
}

func TestHTMLRenderer_Render(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("NewHTMLRenderer() error = %v", err)
	}

	document, contentType, err := renderer.Render(sampleReport())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if contentType != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", contentType)
	}

	html := string(document)

	for _, want := range []string{
		"Elevated concern: 0 critical, 1 warning out of 2 metrics",
		"USD share of global FX reserves",
		"54.3%",
		"-1.2%",
		"Warning: below 55.0% | Critical: below 50.0%",
		"$756.0B",
		"12-month trend",
		"fetch GFDEGDQ188S: status 502",
		"Run run-42",
		"IMF COFER via DBnomics",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}

	// banner tinted by the overall tier, pills by per-indicator status
	if !strings.Contains(html, "#f39c12") {
		t.Error("missing warning color")
	}
	if !strings.Contains(html, "#27ae60") {
		t.Error("missing stable color")
	}
	if !strings.Contains(html, ">INFO<") {
		t.Error("missing INFO pill")
	}
	if !strings.Contains(html, ">NO DATA<") {
		t.Error("missing NO DATA pill for the failed indicator")
	}
}

func TestHTMLRenderer_HostLineOptional(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("NewHTMLRenderer() error = %v", err)
	}

	report := sampleReport()
	report.Host = &dto.HostDTO{
		Hostname:       "watch-box",
		Platform:       "ubuntu 24.04",
		UptimeHours:    72.5,
		MemUsedPercent: 41.0,
	}

	document, _, err := renderer.Render(report)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(document), "watch-box (ubuntu 24.04), up 72.5h, mem 41%") {
		t.Error("host line not rendered")
	}

	report.Host = nil
	document, _, err = renderer.Render(report)
	if err != nil {
		t.Fatalf("Render() without host error = %v", err)
	}
	if strings.Contains(string(document), "watch-box") {
		t.Error("host line rendered without host info")
	}
}

func TestStatusHelpers(t *testing.T) {
	if statusColor("critical") != "#dc3545" {
		t.Error("critical color")
	}
	if statusColor("unknown") != "#95a5a6" {
		t.Error("fallback color")
	}
	if statusLabel("unknown") != "NO DATA" {
		t.Error("fallback label")
	}
}
