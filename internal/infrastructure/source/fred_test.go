package source

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient() *Client {
	return NewClient(ClientConfig{RatePerSecond: 1000, RateBurst: 1000})
}

func fredServer(t *testing.T, series map[string]string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		body, ok := series[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
}

func TestFREDClient_Series(t *testing.T) {
	server := fredServer(t, map[string]string{
		"GFDEGDQ188S": "DATE,GFDEGDQ188S\n2024-10-01,120.5\n2025-01-01,.\n2025-04-01,121.8\n",
	})
	defer server.Close()

	fred := NewFREDClient(testClient(), server.URL)

	observations, err := fred.Series(context.Background(), "GFDEGDQ188S")
	if err != nil {
		t.Fatalf("Series() error = %v", err)
	}

	// The "." row is a missing observation and must be dropped
	if len(observations) != 2 {
		t.Fatalf("got %d observations, want 2", len(observations))
	}
	latest := observations[len(observations)-1]
	if latest.Date != "2025-04-01" || latest.Value != 121.8 {
		t.Errorf("latest = %+v, want 2025-04-01 / 121.8", latest)
	}
}

func TestFREDClient_SeriesErrors(t *testing.T) {
	server := fredServer(t, map[string]string{
		"EMPTY":   "DATE,EMPTY\n",
		"ALLDOTS": "DATE,ALLDOTS\n2025-01-01,.\n2025-04-01,.\n",
	})
	defer server.Close()

	fred := NewFREDClient(testClient(), server.URL)

	for _, id := range []string{"EMPTY", "ALLDOTS", "MISSING"} {
		if _, err := fred.Series(context.Background(), id); err == nil {
			t.Errorf("Series(%s) succeeded, want error", id)
		}
	}
}

func TestDebtToGDPAdapter(t *testing.T) {
	// 22 quarterly observations so both the 1y and 5y deltas resolve
	csv := "DATE,GFDEGDQ188S\n"
	for i := 0; i < 22; i++ {
		csv += fmt.Sprintf("20%02d-01-01,%0.1f\n", i, 100.0+float64(i))
	}

	server := fredServer(t, map[string]string{"GFDEGDQ188S": csv})
	defer server.Close()

	adapter := NewDebtToGDPAdapter(NewFREDClient(testClient(), server.URL))

	if adapter.Indicator() != "debt_to_gdp" {
		t.Errorf("Indicator() = %s", adapter.Indicator())
	}

	result := adapter.Fetch(context.Background())
	if !result.Success {
		t.Fatalf("fetch failed: %s", result.Err)
	}
	if result.Value != 121.0 {
		t.Errorf("Value = %v, want 121.0", result.Value)
	}
	if len(result.Deltas) != 2 {
		t.Fatalf("got %d deltas, want 2", len(result.Deltas))
	}
	// Series grows 1.0 per quarter: 1y = +4, 5y = +20
	if result.Deltas[0].Value != 4.0 {
		t.Errorf("1-year delta = %v, want 4.0", result.Deltas[0].Value)
	}
	if result.Deltas[1].Value != 20.0 {
		t.Errorf("5-year delta = %v, want 20.0", result.Deltas[1].Value)
	}
}

func TestDebtToGDPAdapter_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	adapter := NewDebtToGDPAdapter(NewFREDClient(testClient(), server.URL))

	result := adapter.Fetch(context.Background())
	if result.Success {
		t.Fatal("fetch succeeded against a broken upstream")
	}
	if result.Err == "" {
		t.Error("failure carries no error message")
	}
	if result.Source == "" {
		t.Error("failure carries no source label")
	}
}

func TestInterestToRevenueAdapter(t *testing.T) {
	// Annual fiscal series in millions
	interest := "DATE,FYOINT\n2023-01-01,660000\n2024-01-01,880000\n2025-01-01,950000\n"
	revenue := "DATE,FYFR\n2023-01-01,4400000\n2024-01-01,4400000\n2025-01-01,5000000\n"

	server := fredServer(t, map[string]string{"FYOINT": interest, "FYFR": revenue})
	defer server.Close()

	adapter := NewInterestToRevenueAdapter(NewFREDClient(testClient(), server.URL))

	result := adapter.Fetch(context.Background())
	if !result.Success {
		t.Fatalf("fetch failed: %s", result.Err)
	}
	if result.Value != 19.0 {
		t.Errorf("Value = %v, want 19.0", result.Value)
	}
	if len(result.Deltas) != 1 {
		t.Fatalf("got %d deltas, want 1 (5y history unavailable)", len(result.Deltas))
	}
	// Prior year ratio: 880000/4400000 = 20%
	if math.Abs(result.Deltas[0].Value-(-1.0)) > 1e-9 {
		t.Errorf("1-year delta = %v, want -1.0", result.Deltas[0].Value)
	}
	if len(result.Details) != 2 {
		t.Fatalf("got %d details, want 2", len(result.Details))
	}
	if result.Details[0].Value != "$950B" {
		t.Errorf("interest detail = %q, want $950B", result.Details[0].Value)
	}
	if result.Freshness != "FY 2025" {
		t.Errorf("Freshness = %q, want FY 2025", result.Freshness)
	}
}

func TestInterestToDefenseAdapter(t *testing.T) {
	// Quarterly series in billions SAAR; interest overtakes defense
	interest := "DATE,A091RC1Q027SBEA\n"
	defense := "DATE,FDEFX\n"
	for i := 0; i < 5; i++ {
		interest += fmt.Sprintf("2024-%02d-01,%0.0f\n", i*3+1, 800.0+float64(i)*25)
		defense += fmt.Sprintf("2024-%02d-01,%0.0f\n", i*3+1, 800.0)
	}

	server := fredServer(t, map[string]string{"A091RC1Q027SBEA": interest, "FDEFX": defense})
	defer server.Close()

	adapter := NewInterestToDefenseAdapter(NewFREDClient(testClient(), server.URL))

	result := adapter.Fetch(context.Background())
	if !result.Success {
		t.Fatalf("fetch failed: %s", result.Err)
	}
	// Latest: 900/800 = 112.5%; four quarters back: 800/800 = 100%
	if result.Value != 112.5 {
		t.Errorf("Value = %v, want 112.5", result.Value)
	}
	if len(result.Deltas) != 1 || result.Deltas[0].Value != 12.5 {
		t.Errorf("deltas = %+v, want one 12.5", result.Deltas)
	}
}

func TestTradeBalanceGDPAdapter(t *testing.T) {
	// 15 monthly deficits of -70000 million and steady GDP of 28000 billion
	trade := "DATE,BOPGSTB\n"
	for i := 0; i < 15; i++ {
		trade += fmt.Sprintf("2024-%02d-01,-70000\n", i%12+1)
	}
	gdp := "DATE,GDP\n"
	for i := 0; i < 5; i++ {
		gdp += fmt.Sprintf("2024-%02d-01,28000\n", i*3+1)
	}

	server := fredServer(t, map[string]string{"BOPGSTB": trade, "GDP": gdp})
	defer server.Close()

	adapter := NewTradeBalanceGDPAdapter(NewFREDClient(testClient(), server.URL))

	result := adapter.Fetch(context.Background())
	if !result.Success {
		t.Fatalf("fetch failed: %s", result.Err)
	}
	// -70000M * 12 / 1000 = -840B annualized; -840/28000 = -3%
	if math.Abs(result.Value-(-3.0)) > 1e-9 {
		t.Errorf("Value = %v, want -3.0", result.Value)
	}
	// Same deficit and GDP a year ago, so the delta is zero
	if len(result.Deltas) != 1 || math.Abs(result.Deltas[0].Value) > 1e-9 {
		t.Errorf("deltas = %+v, want one 0.0", result.Deltas)
	}
}
