package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dreschagin/macro-watch/internal/application/port"
	"github.com/dreschagin/macro-watch/internal/domain/catalogue"
	"github.com/dreschagin/macro-watch/internal/domain/valueobject"
)

const (
	defaultDBnomicsBaseURL = "https://api.db.nomics.world/v22/series"
	defaultIMFBaseURL      = "https://dataservices.imf.org/REST/SDMX_JSON.svc/CompactData"

	coferSeriesKey = "Q.W00.RAXGFXARUSDRT_PT"
)

// USDReserveShareAdapter reads the USD share of allocated global FX reserves
// from the IMF COFER dataset. DBnomics mirrors the dataset with a much
// friendlier API, so it is tried first; the IMF SDMX endpoint is the
// fallback when the mirror is down or stale.
type USDReserveShareAdapter struct {
	client          *Client
	dbnomicsBaseURL string
	imfBaseURL      string
}

func NewUSDReserveShareAdapter(client *Client, dbnomicsBaseURL, imfBaseURL string) *USDReserveShareAdapter {
	if dbnomicsBaseURL == "" {
		dbnomicsBaseURL = defaultDBnomicsBaseURL
	}
	if imfBaseURL == "" {
		imfBaseURL = defaultIMFBaseURL
	}
	return &USDReserveShareAdapter{client: client, dbnomicsBaseURL: dbnomicsBaseURL, imfBaseURL: imfBaseURL}
}

func (a *USDReserveShareAdapter) Indicator() string {
	return catalogue.USDReserveShare
}

func (a *USDReserveShareAdapter) Fetch(ctx context.Context) port.FetchResult {
	result, dbErr := a.fetchDBnomics(ctx)
	if dbErr == nil {
		return result
	}

	result, imfErr := a.fetchIMF(ctx)
	if imfErr == nil {
		return result
	}

	return port.Failure("IMF COFER", fmt.Sprintf("dbnomics: %v; imf: %v", dbErr, imfErr))
}

type dbnomicsResponse struct {
	Series struct {
		Docs []struct {
			Period []string   `json:"period"`
			Value  []*float64 `json:"value"`
		} `json:"docs"`
	} `json:"series"`
}

func (a *USDReserveShareAdapter) fetchDBnomics(ctx context.Context) (port.FetchResult, error) {
	url := fmt.Sprintf("%s/IMF/COFER/%s?observations=1", a.dbnomicsBaseURL, coferSeriesKey)

	body, err := a.client.Get(ctx, url, nil)
	if err != nil {
		return port.FetchResult{}, err
	}

	var payload dbnomicsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return port.FetchResult{}, fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Series.Docs) == 0 {
		return port.FetchResult{}, fmt.Errorf("no series in response")
	}

	doc := payload.Series.Docs[0]
	periods := make([]string, 0, len(doc.Period))
	values := make([]float64, 0, len(doc.Value))
	for i, value := range doc.Value {
		if value == nil || i >= len(doc.Period) {
			continue
		}
		periods = append(periods, doc.Period[i])
		values = append(values, *value)
	}
	if len(values) == 0 {
		return port.FetchResult{}, fmt.Errorf("no non-null observations")
	}

	return a.buildResult(periods, values, "IMF COFER via DBnomics"), nil
}

type imfCompactData struct {
	CompactData struct {
		DataSet struct {
			Series struct {
				Obs json.RawMessage `json:"Obs"`
			} `json:"Series"`
		} `json:"DataSet"`
	} `json:"CompactData"`
}

type imfObservation struct {
	TimePeriod string      `json:"@TIME_PERIOD"`
	ObsValue   json.Number `json:"@OBS_VALUE"`
}

func (a *USDReserveShareAdapter) fetchIMF(ctx context.Context) (port.FetchResult, error) {
	url := fmt.Sprintf("%s/COFER/%s", a.imfBaseURL, coferSeriesKey)

	body, err := a.client.Get(ctx, url, nil)
	if err != nil {
		return port.FetchResult{}, err
	}

	var payload imfCompactData
	if err := json.Unmarshal(body, &payload); err != nil {
		return port.FetchResult{}, fmt.Errorf("decode response: %w", err)
	}

	// SDMX collapses a one-observation series into a bare object.
	raw := payload.CompactData.DataSet.Series.Obs
	var observations []imfObservation
	if err := json.Unmarshal(raw, &observations); err != nil {
		var single imfObservation
		if err := json.Unmarshal(raw, &single); err != nil {
			return port.FetchResult{}, fmt.Errorf("decode observations: %w", err)
		}
		observations = []imfObservation{single}
	}

	periods := make([]string, 0, len(observations))
	values := make([]float64, 0, len(observations))
	for _, obs := range observations {
		value, err := obs.ObsValue.Float64()
		if err != nil {
			continue
		}
		periods = append(periods, obs.TimePeriod)
		values = append(values, value)
	}
	if len(values) == 0 {
		return port.FetchResult{}, fmt.Errorf("no usable observations")
	}

	return a.buildResult(periods, values, "IMF COFER (SDMX)"), nil
}

func (a *USDReserveShareAdapter) buildResult(periods []string, values []float64, sourceName string) port.FetchResult {
	last := len(values) - 1

	result := port.FetchResult{
		Success:   true,
		Value:     values[last],
		HasValue:  true,
		AsOf:      periods[last],
		Freshness: periods[last],
		Source:    sourceName,
	}

	// Quarterly series: 1y = 4 observations back, 5y = 20.
	if idx := last - 4; idx >= 0 {
		result.Deltas = append(result.Deltas, valueobject.Delta{Label: "1-year change", Value: values[last] - values[idx], Unit: "%"})
	}
	if idx := last - 20; idx >= 0 {
		result.Deltas = append(result.Deltas, valueobject.Delta{Label: "5-year change", Value: values[last] - values[idx], Unit: "%"})
	}

	return result
}
