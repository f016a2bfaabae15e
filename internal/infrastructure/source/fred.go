package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/dreschagin/macro-watch/internal/application/port"
	"github.com/dreschagin/macro-watch/internal/domain/catalogue"
	"github.com/dreschagin/macro-watch/internal/domain/valueobject"
)

const defaultFREDBaseURL = "https://fred.stlouisfed.org/graph/fredgraph.csv"

// Observation is a single dated value from a FRED series.
type Observation struct {
	Date  string
	Value float64
}

// FREDClient downloads series from the St. Louis Fed CSV endpoint.
type FREDClient struct {
	client  *Client
	baseURL string
}

func NewFREDClient(client *Client, baseURL string) *FREDClient {
	if baseURL == "" {
		baseURL = defaultFREDBaseURL
	}
	return &FREDClient{client: client, baseURL: baseURL}
}

// Series fetches a series and returns its observations in chronological
// order, with missing values ("." in the CSV) dropped.
func (f *FREDClient) Series(ctx context.Context, seriesID string) ([]Observation, error) {
	body, err := f.client.Get(ctx, fmt.Sprintf("%s?id=%s", f.baseURL, seriesID), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch series %s: %w", seriesID, err)
	}

	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse series %s: %w", seriesID, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("series %s: empty response", seriesID)
	}

	observations := make([]Observation, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		raw := strings.TrimSpace(record[1])
		if raw == "" || raw == "." {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		observations = append(observations, Observation{Date: strings.TrimSpace(record[0]), Value: value})
	}

	if len(observations) == 0 {
		return nil, fmt.Errorf("series %s: no usable observations", seriesID)
	}
	return observations, nil
}

// DebtToGDPAdapter reads federal debt as a percent of GDP (GFDEGDQ188S).
type DebtToGDPAdapter struct {
	fred *FREDClient
}

func NewDebtToGDPAdapter(fred *FREDClient) *DebtToGDPAdapter {
	return &DebtToGDPAdapter{fred: fred}
}

func (a *DebtToGDPAdapter) Indicator() string {
	return catalogue.DebtToGDP
}

func (a *DebtToGDPAdapter) Fetch(ctx context.Context) port.FetchResult {
	const sourceName = "FRED (GFDEGDQ188S)"

	observations, err := a.fred.Series(ctx, "GFDEGDQ188S")
	if err != nil {
		return port.Failure(sourceName, err.Error())
	}

	latest := observations[len(observations)-1]
	result := port.FetchResult{
		Success:   true,
		Value:     latest.Value,
		HasValue:  true,
		AsOf:      latest.Date,
		Freshness: latest.Date,
		Source:    sourceName,
	}

	// Quarterly series: 1y = 4 observations back, 5y = 20.
	if idx := len(observations) - 5; idx >= 0 {
		result.Deltas = append(result.Deltas, valueobject.Delta{
			Label: "1-year change",
			Value: latest.Value - observations[idx].Value,
			Unit:  "%",
		})
	}
	if idx := len(observations) - 21; idx >= 0 {
		result.Deltas = append(result.Deltas, valueobject.Delta{
			Label: "5-year change",
			Value: latest.Value - observations[idx].Value,
			Unit:  "%",
		})
	}

	return result
}

// InterestToRevenueAdapter computes annual federal interest outlays as a
// percent of federal receipts (FYOINT / FYFR, both fiscal-year, millions).
type InterestToRevenueAdapter struct {
	fred *FREDClient
}

func NewInterestToRevenueAdapter(fred *FREDClient) *InterestToRevenueAdapter {
	return &InterestToRevenueAdapter{fred: fred}
}

func (a *InterestToRevenueAdapter) Indicator() string {
	return catalogue.InterestToRevenue
}

func (a *InterestToRevenueAdapter) Fetch(ctx context.Context) port.FetchResult {
	const sourceName = "FRED (FYOINT / FYFR)"

	interest, err := a.fred.Series(ctx, "FYOINT")
	if err != nil {
		return port.Failure(sourceName, err.Error())
	}
	revenue, err := a.fred.Series(ctx, "FYFR")
	if err != nil {
		return port.Failure(sourceName, err.Error())
	}

	n := len(interest)
	if len(revenue) < n {
		n = len(revenue)
	}
	if n == 0 {
		return port.Failure(sourceName, "no overlapping observations")
	}

	ratioAt := func(offset int) (float64, bool) {
		i := n - 1 - offset
		if i < 0 || revenue[i].Value == 0 {
			return 0, false
		}
		return interest[i].Value / revenue[i].Value * 100, true
	}

	current, ok := ratioAt(0)
	if !ok {
		return port.Failure(sourceName, "latest revenue observation is zero")
	}

	latestInterest := interest[n-1]
	latestRevenue := revenue[n-1]

	result := port.FetchResult{
		Success:   true,
		Value:     current,
		HasValue:  true,
		AsOf:      latestInterest.Date,
		Freshness: fmt.Sprintf("FY %s", fiscalYear(latestInterest.Date)),
		Source:    sourceName,
		Details: []valueobject.Detail{
			{Label: "Interest outlays", Value: fmt.Sprintf("$%.0fB", latestInterest.Value/1000)},
			{Label: "Federal receipts", Value: fmt.Sprintf("$%.0fB", latestRevenue.Value/1000)},
		},
	}

	if prior, ok := ratioAt(1); ok {
		result.Deltas = append(result.Deltas, valueobject.Delta{Label: "1-year change", Value: current - prior, Unit: "%"})
	}
	if prior, ok := ratioAt(5); ok {
		result.Deltas = append(result.Deltas, valueobject.Delta{Label: "5-year change", Value: current - prior, Unit: "%"})
	}

	return result
}

func fiscalYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}

// InterestToDefenseAdapter compares quarterly federal interest payments to
// defense spending (A091RC1Q027SBEA / FDEFX, both billions SAAR).
type InterestToDefenseAdapter struct {
	fred *FREDClient
}

func NewInterestToDefenseAdapter(fred *FREDClient) *InterestToDefenseAdapter {
	return &InterestToDefenseAdapter{fred: fred}
}

func (a *InterestToDefenseAdapter) Indicator() string {
	return catalogue.InterestToDefense
}

func (a *InterestToDefenseAdapter) Fetch(ctx context.Context) port.FetchResult {
	const sourceName = "FRED (A091RC1Q027SBEA / FDEFX)"

	interest, err := a.fred.Series(ctx, "A091RC1Q027SBEA")
	if err != nil {
		return port.Failure(sourceName, err.Error())
	}
	defense, err := a.fred.Series(ctx, "FDEFX")
	if err != nil {
		return port.Failure(sourceName, err.Error())
	}

	n := len(interest)
	if len(defense) < n {
		n = len(defense)
	}
	if n == 0 {
		return port.Failure(sourceName, "no overlapping observations")
	}

	ratioAt := func(offset int) (float64, bool) {
		i := n - 1 - offset
		if i < 0 || defense[i].Value == 0 {
			return 0, false
		}
		return interest[i].Value / defense[i].Value * 100, true
	}

	current, ok := ratioAt(0)
	if !ok {
		return port.Failure(sourceName, "latest defense observation is zero")
	}

	result := port.FetchResult{
		Success:   true,
		Value:     current,
		HasValue:  true,
		AsOf:      interest[n-1].Date,
		Freshness: interest[n-1].Date,
		Source:    sourceName,
		Details: []valueobject.Detail{
			{Label: "Interest payments", Value: fmt.Sprintf("$%.0fB annualized", interest[n-1].Value)},
			{Label: "Defense spending", Value: fmt.Sprintf("$%.0fB annualized", defense[n-1].Value)},
		},
	}

	// Quarterly series: 1y = 4 observations back.
	if prior, ok := ratioAt(4); ok {
		result.Deltas = append(result.Deltas, valueobject.Delta{Label: "1-year change", Value: current - prior, Unit: "%"})
	}

	return result
}

// TradeBalanceGDPAdapter computes the goods and services trade balance as a
// percent of GDP: BOPGSTB (monthly, millions) averaged over the trailing
// three months and annualized, divided by quarterly GDP (billions SAAR).
type TradeBalanceGDPAdapter struct {
	fred *FREDClient
}

func NewTradeBalanceGDPAdapter(fred *FREDClient) *TradeBalanceGDPAdapter {
	return &TradeBalanceGDPAdapter{fred: fred}
}

func (a *TradeBalanceGDPAdapter) Indicator() string {
	return catalogue.TradeBalanceGDP
}

func (a *TradeBalanceGDPAdapter) Fetch(ctx context.Context) port.FetchResult {
	const sourceName = "FRED (BOPGSTB / GDP)"

	trade, err := a.fred.Series(ctx, "BOPGSTB")
	if err != nil {
		return port.Failure(sourceName, err.Error())
	}
	gdp, err := a.fred.Series(ctx, "GDP")
	if err != nil {
		return port.Failure(sourceName, err.Error())
	}
	if len(trade) < 3 || len(gdp) == 0 {
		return port.Failure(sourceName, "not enough observations")
	}

	// Trailing 3-month average, annualized, converted to billions.
	annualizedAt := func(end int) (float64, bool) {
		if end < 3 {
			return 0, false
		}
		var sum float64
		for _, obs := range trade[end-3 : end] {
			sum += obs.Value
		}
		return sum / 3 * 12 / 1000, true
	}

	tradeAnnual, _ := annualizedAt(len(trade))
	latestGDP := gdp[len(gdp)-1].Value
	if latestGDP == 0 {
		return port.Failure(sourceName, "latest GDP observation is zero")
	}
	current := tradeAnnual / latestGDP * 100

	result := port.FetchResult{
		Success:   true,
		Value:     current,
		HasValue:  true,
		AsOf:      trade[len(trade)-1].Date,
		Freshness: trade[len(trade)-1].Date,
		Source:    sourceName,
		Details: []valueobject.Detail{
			{Label: "Trade balance", Value: fmt.Sprintf("$%.0fB annualized", tradeAnnual)},
			{Label: "GDP", Value: fmt.Sprintf("$%.0fB", latestGDP)},
		},
	}

	if priorAnnual, ok := annualizedAt(len(trade) - 12); ok {
		if gdpIdx := len(gdp) - 5; gdpIdx >= 0 && gdp[gdpIdx].Value != 0 {
			prior := priorAnnual / gdp[gdpIdx].Value * 100
			result.Deltas = append(result.Deltas, valueobject.Delta{Label: "1-year change", Value: current - prior, Unit: "%"})
		}
	}

	return result
}
