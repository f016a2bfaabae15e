package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dreschagin/macro-watch/internal/application/port"
	"github.com/dreschagin/macro-watch/internal/domain/catalogue"
	"github.com/dreschagin/macro-watch/internal/domain/valueobject"
)

const (
	defaultYahooBaseURL = "https://query1.finance.yahoo.com"

	// Yahoo throttles generic clients hard; a browser User-Agent is required.
	yahooUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	tradingDaysPerYear = 252
)

type pricePoint struct {
	Timestamp time.Time
	Close     float64
}

// YahooClient reads daily closes from the Yahoo Finance chart API.
type YahooClient struct {
	client  *Client
	baseURL string
}

func NewYahooClient(client *Client, baseURL string) *YahooClient {
	if baseURL == "" {
		baseURL = defaultYahooBaseURL
	}
	return &YahooClient{client: client, baseURL: baseURL}
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History returns up to five years of daily closes for a symbol, oldest
// first, with null closes dropped.
func (y *YahooClient) History(ctx context.Context, symbol string) ([]pricePoint, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5y", y.baseURL, symbol)

	body, err := y.client.Get(ctx, url, map[string]string{"User-Agent": yahooUserAgent})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	var payload yahooChartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", symbol, err)
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("%s: %s", symbol, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%s: empty chart result", symbol)
	}

	result := payload.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	points := make([]pricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, pricePoint{
			Timestamp: time.Unix(ts, 0).UTC(),
			Close:     *closes[i],
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%s: no usable closes", symbol)
	}
	return points, nil
}

// totalReturn computes the percent return over roughly the given number of
// years, using trading-day offsets into the series.
func totalReturn(points []pricePoint, years int) (float64, bool) {
	offset := years * tradingDaysPerYear
	idx := len(points) - 1 - offset
	if idx < 0 {
		return 0, false
	}
	start := points[idx].Close
	if start == 0 {
		return 0, false
	}
	return (points[len(points)-1].Close - start) / start * 100, true
}

// DXYAdapter reads the U.S. Dollar Index level (ICE DX-Y.NYB).
type DXYAdapter struct {
	yahoo *YahooClient
}

func NewDXYAdapter(yahoo *YahooClient) *DXYAdapter {
	return &DXYAdapter{yahoo: yahoo}
}

func (a *DXYAdapter) Indicator() string {
	return catalogue.DollarIndex
}

func (a *DXYAdapter) Fetch(ctx context.Context) port.FetchResult {
	const sourceName = "Yahoo Finance (DX-Y.NYB)"

	points, err := a.yahoo.History(ctx, "DX-Y.NYB")
	if err != nil {
		return port.Failure(sourceName, err.Error())
	}

	latest := points[len(points)-1]
	result := port.FetchResult{
		Success:   true,
		Value:     latest.Close,
		HasValue:  true,
		AsOf:      latest.Timestamp.Format("2006-01-02"),
		Freshness: latest.Timestamp.Format("2006-01-02"),
		Source:    sourceName,
	}

	if change, ok := totalReturn(points, 1); ok {
		result.Deltas = append(result.Deltas, valueobject.Delta{Label: "1-year change", Value: change, Unit: "%"})
		idx := len(points) - 1 - tradingDaysPerYear
		result.Details = append(result.Details, valueobject.Detail{
			Label: "1 year ago",
			Value: fmt.Sprintf("%.2f (%s)", points[idx].Close, points[idx].Timestamp.Format("2006-01-02")),
		})
	}
	if change, ok := totalReturn(points, 3); ok {
		result.Deltas = append(result.Deltas, valueobject.Delta{Label: "3-year change", Value: change, Unit: "%"})
	}

	return result
}

// IntlVsUSAdapter compares international equity performance to U.S. equity
// performance via VXUS and VTI total returns. Informational only.
type IntlVsUSAdapter struct {
	yahoo *YahooClient
}

func NewIntlVsUSAdapter(yahoo *YahooClient) *IntlVsUSAdapter {
	return &IntlVsUSAdapter{yahoo: yahoo}
}

func (a *IntlVsUSAdapter) Indicator() string {
	return catalogue.IntlVsUS
}

func (a *IntlVsUSAdapter) Fetch(ctx context.Context) port.FetchResult {
	const sourceName = "Yahoo Finance (VXUS vs VTI)"

	intl, err := a.yahoo.History(ctx, "VXUS")
	if err != nil {
		return port.Failure(sourceName, err.Error())
	}
	us, err := a.yahoo.History(ctx, "VTI")
	if err != nil {
		return port.Failure(sourceName, err.Error())
	}

	result := port.FetchResult{
		Success:   true,
		AsOf:      intl[len(intl)-1].Timestamp.Format("2006-01-02"),
		Freshness: intl[len(intl)-1].Timestamp.Format("2006-01-02"),
		Source:    sourceName,
	}

	intl3, intlOK3 := totalReturn(intl, 3)
	us3, usOK3 := totalReturn(us, 3)
	intl1, intlOK1 := totalReturn(intl, 1)
	us1, usOK1 := totalReturn(us, 1)

	switch {
	case intlOK3 && usOK3:
		result.Value = intl3 - us3
		result.HasValue = true
		result.Details = append(result.Details,
			valueobject.Detail{Label: "Intl 3-year return", Value: fmt.Sprintf("%+.1f%%", intl3)},
			valueobject.Detail{Label: "US 3-year return", Value: fmt.Sprintf("%+.1f%%", us3)},
		)
	case intlOK1 && usOK1:
		result.Value = intl1 - us1
		result.HasValue = true
	default:
		return port.Failure(sourceName, "not enough price history")
	}

	if intlOK1 && usOK1 {
		result.Details = append(result.Details,
			valueobject.Detail{Label: "Intl 1-year return", Value: fmt.Sprintf("%+.1f%%", intl1)},
			valueobject.Detail{Label: "US 1-year return", Value: fmt.Sprintf("%+.1f%%", us1)},
			valueobject.Detail{Label: "1-year gap", Value: fmt.Sprintf("%+.1f%%", intl1-us1)},
		)
	}

	return result
}
