package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dreschagin/macro-watch/internal/application/port"
	"github.com/dreschagin/macro-watch/internal/domain/catalogue"
	"github.com/dreschagin/macro-watch/internal/domain/valueobject"
)

const (
	defaultTICBaseURL = "https://ticdata.treasury.gov/resource-center/data-chart-center/tic/Documents/slt_table5.txt"

	ticSourceName = "Treasury TIC (SLT Table 5)"

	// One download serves both treasury adapters within a run; the daemon
	// refetches on the next cycle once this window passes.
	ticMemoWindow = 5 * time.Minute
)

type ticRow struct {
	country string
	values  []*float64 // newest first, nil where the cell is not numeric
}

type ticTable struct {
	periods []string // newest first
	rows    []ticRow
}

func (t *ticTable) row(country string) *ticRow {
	needle := strings.ToLower(country)
	for i := range t.rows {
		if strings.ToLower(t.rows[i].country) == needle {
			return &t.rows[i]
		}
	}
	return nil
}

// TICClient downloads and parses the Treasury International Capital report
// on major foreign holders of U.S. Treasury securities. The report is a
// tab-separated text file with a free-form preamble, a "Country" header row
// carrying the period columns (newest first), then one row per holder.
type TICClient struct {
	client  *Client
	baseURL string

	mu        sync.Mutex
	table     *ticTable
	fetchedAt time.Time
}

func NewTICClient(client *Client, baseURL string) *TICClient {
	if baseURL == "" {
		baseURL = defaultTICBaseURL
	}
	return &TICClient{client: client, baseURL: baseURL}
}

// Table returns the parsed report, downloading it at most once per memo
// window so the China and Japan adapters share a single request.
func (t *TICClient) Table(ctx context.Context) (*ticTable, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.table != nil && time.Since(t.fetchedAt) < ticMemoWindow {
		return t.table, nil
	}

	body, err := t.client.Get(ctx, t.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}

	table, err := parseTICTable(string(body))
	if err != nil {
		return nil, err
	}

	t.table = table
	t.fetchedAt = time.Now()
	return table, nil
}

func parseTICTable(text string) (*ticTable, error) {
	table := &ticTable{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}

		label := strings.TrimSpace(fields[0])
		if table.periods == nil {
			if strings.EqualFold(label, "Country") {
				for _, field := range fields[1:] {
					table.periods = append(table.periods, strings.TrimSpace(field))
				}
			}
			continue // still in the preamble
		}

		row := ticRow{country: label}
		for _, field := range fields[1:] {
			raw := strings.ReplaceAll(strings.TrimSpace(field), ",", "")
			if value, err := strconv.ParseFloat(raw, 64); err == nil {
				v := value
				row.values = append(row.values, &v)
			} else {
				row.values = append(row.values, nil)
			}
		}
		table.rows = append(table.rows, row)
	}

	if table.periods == nil {
		return nil, fmt.Errorf("header row not found")
	}
	if len(table.rows) == 0 {
		return nil, fmt.Errorf("no holder rows found")
	}
	return table, nil
}

// TreasuryHoldingsAdapter reads one holder's position from the shared TIC
// report. Values are already billions of dollars.
type TreasuryHoldingsAdapter struct {
	tic       *TICClient
	indicator string
	country   string
	label     string
}

func NewChinaTreasuryAdapter(tic *TICClient) *TreasuryHoldingsAdapter {
	return &TreasuryHoldingsAdapter{tic: tic, indicator: catalogue.ChinaTreasury, country: "China, Mainland", label: "China"}
}

func NewJapanTreasuryAdapter(tic *TICClient) *TreasuryHoldingsAdapter {
	return &TreasuryHoldingsAdapter{tic: tic, indicator: catalogue.JapanTreasury, country: "Japan", label: "Japan"}
}

func (a *TreasuryHoldingsAdapter) Indicator() string {
	return a.indicator
}

func (a *TreasuryHoldingsAdapter) Fetch(ctx context.Context) port.FetchResult {
	table, err := a.tic.Table(ctx)
	if err != nil {
		return port.Failure(ticSourceName, err.Error())
	}

	row := table.row(a.country)
	if row == nil {
		return port.Failure(ticSourceName, fmt.Sprintf("%s not found in report", a.label))
	}
	if len(row.values) == 0 || row.values[0] == nil {
		return port.Failure(ticSourceName, fmt.Sprintf("no current value for %s", a.label))
	}

	current := *row.values[0]
	asOf := ""
	if len(table.periods) > 0 {
		asOf = table.periods[0]
	}

	result := port.FetchResult{
		Success:   true,
		Value:     current,
		HasValue:  true,
		AsOf:      asOf,
		Freshness: asOf,
		Source:    ticSourceName,
	}

	// Columns are monthly, newest first.
	twelveMonth := 0.0
	haveTwelve := false
	if len(row.values) > 6 && row.values[6] != nil {
		result.Deltas = append(result.Deltas, valueobject.Delta{Label: "6-month change", Value: current - *row.values[6], Unit: "$B"})
	}
	if len(row.values) > 12 && row.values[12] != nil {
		twelveMonth = current - *row.values[12]
		haveTwelve = true
		result.Deltas = append(result.Deltas, valueobject.Delta{Label: "12-month change", Value: twelveMonth, Unit: "$B"})
	}

	if haveTwelve {
		trend := "Stable"
		switch {
		case twelveMonth < -10:
			trend = "Selling"
		case twelveMonth > 10:
			trend = "Accumulating"
		}
		result.Details = append(result.Details, valueobject.Detail{Label: "12-month trend", Value: trend})
	}

	return result
}
