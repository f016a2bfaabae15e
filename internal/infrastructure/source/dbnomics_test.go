package source

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func dbnomicsBody(periods []string, values []string) string {
	return fmt.Sprintf(`{"series":{"docs":[{"period":[%s],"value":[%s]}]}}`,
		`"`+strings.Join(periods, `","`)+`"`,
		strings.Join(values, ","),
	)
}

func TestUSDReserveShareAdapter_DBnomics(t *testing.T) {
	periods := make([]string, 0, 21)
	values := make([]string, 0, 21)
	for i := 0; i < 21; i++ {
		periods = append(periods, fmt.Sprintf("20%02d-Q1", i+4))
		values = append(values, fmt.Sprintf("%0.1f", 70.0-float64(i)*0.5))
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/IMF/COFER/") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, dbnomicsBody(periods, values))
	}))
	defer server.Close()

	adapter := NewUSDReserveShareAdapter(testClient(), server.URL, "http://127.0.0.1:1")

	if adapter.Indicator() != "usd_reserve_share" {
		t.Errorf("Indicator() = %s", adapter.Indicator())
	}

	result := adapter.Fetch(context.Background())
	if !result.Success {
		t.Fatalf("fetch failed: %s", result.Err)
	}
	if result.Value != 60.0 {
		t.Errorf("Value = %v, want 60.0", result.Value)
	}
	if result.Source != "IMF COFER via DBnomics" {
		t.Errorf("Source = %q", result.Source)
	}
	if len(result.Deltas) != 2 {
		t.Fatalf("got %d deltas, want 2", len(result.Deltas))
	}
	// Quarterly decline of 0.5: 1y = -2.0, 5y = -10.0
	if math.Abs(result.Deltas[0].Value-(-2.0)) > 1e-9 {
		t.Errorf("1-year delta = %v, want -2.0", result.Deltas[0].Value)
	}
	if math.Abs(result.Deltas[1].Value-(-10.0)) > 1e-9 {
		t.Errorf("5-year delta = %v, want -10.0", result.Deltas[1].Value)
	}
}

func TestUSDReserveShareAdapter_NullTail(t *testing.T) {
	// The latest quarter is often published before the share is allocated;
	// a null tail must fall back to the newest non-null observation.
	body := `{"series":{"docs":[{"period":["2024-Q4","2025-Q1","2025-Q2"],"value":[58.4,57.8,null]}]}}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	adapter := NewUSDReserveShareAdapter(testClient(), server.URL, "http://127.0.0.1:1")

	result := adapter.Fetch(context.Background())
	if !result.Success {
		t.Fatalf("fetch failed: %s", result.Err)
	}
	if result.Value != 57.8 {
		t.Errorf("Value = %v, want 57.8", result.Value)
	}
	if result.AsOf != "2025-Q1" {
		t.Errorf("AsOf = %q, want 2025-Q1", result.AsOf)
	}
}

func TestUSDReserveShareAdapter_IMFFallback(t *testing.T) {
	imfBody := `{"CompactData":{"DataSet":{"Series":{"Obs":[
		{"@TIME_PERIOD":"2025-Q1","@OBS_VALUE":"57.74"},
		{"@TIME_PERIOD":"2025-Q2","@OBS_VALUE":"57.10"}
	]}}}}`

	dbnomics := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer dbnomics.Close()

	imf := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/COFER/") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, imfBody)
	}))
	defer imf.Close()

	adapter := NewUSDReserveShareAdapter(testClient(), dbnomics.URL, imf.URL)

	result := adapter.Fetch(context.Background())
	if !result.Success {
		t.Fatalf("fetch failed: %s", result.Err)
	}
	if result.Value != 57.10 {
		t.Errorf("Value = %v, want 57.10", result.Value)
	}
	if result.Source != "IMF COFER (SDMX)" {
		t.Errorf("Source = %q, want the SDMX fallback label", result.Source)
	}
}

func TestUSDReserveShareAdapter_IMFSingleObservation(t *testing.T) {
	// SDMX collapses one-observation series into a bare object
	imfBody := `{"CompactData":{"DataSet":{"Series":{"Obs":{"@TIME_PERIOD":"2025-Q2","@OBS_VALUE":"57.10"}}}}}`

	dbnomics := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer dbnomics.Close()

	imf := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, imfBody)
	}))
	defer imf.Close()

	adapter := NewUSDReserveShareAdapter(testClient(), dbnomics.URL, imf.URL)

	result := adapter.Fetch(context.Background())
	if !result.Success {
		t.Fatalf("fetch failed: %s", result.Err)
	}
	if result.Value != 57.10 {
		t.Errorf("Value = %v, want 57.10", result.Value)
	}
}

func TestUSDReserveShareAdapter_BothSourcesDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	adapter := NewUSDReserveShareAdapter(testClient(), down.URL, down.URL)

	result := adapter.Fetch(context.Background())
	if result.Success {
		t.Fatal("fetch succeeded with both sources down")
	}
	if !strings.Contains(result.Err, "dbnomics") || !strings.Contains(result.Err, "imf") {
		t.Errorf("error %q does not mention both attempts", result.Err)
	}
}
