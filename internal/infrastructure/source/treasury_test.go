package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

const ticSample = `MAJOR FOREIGN HOLDERS OF TREASURY SECURITIES
(in billions of dollars)
HOLDINGS 1/ AT END OF PERIOD

Country	Jun 2025	May 2025	Apr 2025	Mar 2025	Feb 2025	Jan 2025	Dec 2024	Nov 2024	Oct 2024	Sep 2024	Aug 2024	Jul 2024	Jun 2024
Japan	1,135.0	1,130.0	1,125.0	1,120.0	1,115.0	1,110.0	1,105.0	1,100.0	1,095.0	1,090.0	1,085.0	1,080.0	1,075.0
China, Mainland	756.0	760.0	765.0	770.0	775.0	780.0	785.0	790.0	795.0	800.0	805.0	810.0	816.0
United Kingdom	690.0	685.0	680.0	675.0	670.0	665.0	660.0	655.0	650.0	645.0	640.0	635.0	630.0

Grand Total	8,500.0	8,450.0	8,400.0	8,350.0	8,300.0	8,250.0	8,200.0	8,150.0	8,100.0	8,050.0	8,000.0	7,950.0	7,900.0
`

func ticServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			atomic.AddInt64(hits, 1)
		}
		fmt.Fprint(w, ticSample)
	}))
}

func TestParseTICTable(t *testing.T) {
	table, err := parseTICTable(ticSample)
	if err != nil {
		t.Fatalf("parseTICTable() error = %v", err)
	}

	if len(table.periods) != 13 {
		t.Fatalf("got %d periods, want 13", len(table.periods))
	}
	if table.periods[0] != "Jun 2025" {
		t.Errorf("newest period = %q, want Jun 2025", table.periods[0])
	}

	china := table.row("China, Mainland")
	if china == nil {
		t.Fatal("China row not found")
	}
	if china.values[0] == nil || *china.values[0] != 756.0 {
		t.Errorf("China current = %v, want 756.0", china.values[0])
	}

	// Lookup is case-insensitive
	if table.row("japan") == nil {
		t.Error("case-insensitive lookup failed for Japan")
	}
	if table.row("Germany") != nil {
		t.Error("lookup returned a row for an absent country")
	}
}

func TestParseTICTable_NoHeader(t *testing.T) {
	if _, err := parseTICTable("just a preamble\nwith no header row\n"); err == nil {
		t.Fatal("parseTICTable() succeeded without a header row")
	}
}

func TestChinaTreasuryAdapter(t *testing.T) {
	server := ticServer(t, nil)
	defer server.Close()

	adapter := NewChinaTreasuryAdapter(NewTICClient(testClient(), server.URL))

	if adapter.Indicator() != "china_treasury" {
		t.Errorf("Indicator() = %s", adapter.Indicator())
	}

	result := adapter.Fetch(context.Background())
	if !result.Success {
		t.Fatalf("fetch failed: %s", result.Err)
	}
	if result.Value != 756.0 {
		t.Errorf("Value = %v, want 756.0", result.Value)
	}
	if result.AsOf != "Jun 2025" {
		t.Errorf("AsOf = %q, want Jun 2025", result.AsOf)
	}

	if len(result.Deltas) != 2 {
		t.Fatalf("got %d deltas, want 2", len(result.Deltas))
	}
	// 6 months back: 785.0; 12 months back: 816.0
	if result.Deltas[0].Value != 756.0-785.0 {
		t.Errorf("6-month delta = %v, want %v", result.Deltas[0].Value, 756.0-785.0)
	}
	if result.Deltas[1].Value != 756.0-816.0 {
		t.Errorf("12-month delta = %v, want %v", result.Deltas[1].Value, 756.0-816.0)
	}

	// 12-month change of -60B marks the holder as selling
	if len(result.Details) != 1 || result.Details[0].Value != "Selling" {
		t.Errorf("details = %+v, want 12-month trend Selling", result.Details)
	}
}

func TestJapanTreasuryAdapter_Trend(t *testing.T) {
	server := ticServer(t, nil)
	defer server.Close()

	adapter := NewJapanTreasuryAdapter(NewTICClient(testClient(), server.URL))

	result := adapter.Fetch(context.Background())
	if !result.Success {
		t.Fatalf("fetch failed: %s", result.Err)
	}
	if result.Value != 1135.0 {
		t.Errorf("Value = %v, want 1135.0", result.Value)
	}
	// +60B over 12 months marks the holder as accumulating
	if len(result.Details) != 1 || result.Details[0].Value != "Accumulating" {
		t.Errorf("details = %+v, want 12-month trend Accumulating", result.Details)
	}
}

func TestTICClient_SharedDownload(t *testing.T) {
	var hits int64
	server := ticServer(t, &hits)
	defer server.Close()

	tic := NewTICClient(testClient(), server.URL)
	china := NewChinaTreasuryAdapter(tic)
	japan := NewJapanTreasuryAdapter(tic)

	if result := china.Fetch(context.Background()); !result.Success {
		t.Fatalf("china fetch failed: %s", result.Err)
	}
	if result := japan.Fetch(context.Background()); !result.Success {
		t.Fatalf("japan fetch failed: %s", result.Err)
	}

	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("report downloaded %d times, want 1", got)
	}
}

func TestTreasuryAdapter_MissingCountry(t *testing.T) {
	truncated := strings.Replace(ticSample, "China, Mainland", "Belgium", 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, truncated)
	}))
	defer server.Close()

	adapter := NewChinaTreasuryAdapter(NewTICClient(testClient(), server.URL))

	result := adapter.Fetch(context.Background())
	if result.Success {
		t.Fatal("fetch succeeded for an absent country")
	}
	if !strings.Contains(result.Err, "China") {
		t.Errorf("error %q does not name the missing holder", result.Err)
	}
}
