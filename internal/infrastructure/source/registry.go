package source

import (
	"github.com/dreschagin/macro-watch/internal/application/port"
	"github.com/dreschagin/macro-watch/internal/domain/catalogue"
	"github.com/dreschagin/macro-watch/pkg/logger"
)

// Endpoints overrides upstream base URLs; zero values mean production URLs.
type Endpoints struct {
	DBnomics string
	IMF      string
	FRED     string
	TIC      string
	Yahoo    string
}

// BuildAdapters wires one adapter per catalogued indicator, all sharing a
// single HTTP client. When cache is non-nil every adapter is wrapped so
// successful payloads are reused across closely spaced runs.
func BuildAdapters(client *Client, endpoints Endpoints, cache port.Cache, log *logger.Logger) map[string]port.SourceAdapter {
	fred := NewFREDClient(client, endpoints.FRED)
	tic := NewTICClient(client, endpoints.TIC)
	yahoo := NewYahooClient(client, endpoints.Yahoo)

	adapters := map[string]port.SourceAdapter{
		catalogue.USDReserveShare:   NewUSDReserveShareAdapter(client, endpoints.DBnomics, endpoints.IMF),
		catalogue.ChinaTreasury:     NewChinaTreasuryAdapter(tic),
		catalogue.JapanTreasury:     NewJapanTreasuryAdapter(tic),
		catalogue.DollarIndex:       NewDXYAdapter(yahoo),
		catalogue.DebtToGDP:         NewDebtToGDPAdapter(fred),
		catalogue.InterestToRevenue: NewInterestToRevenueAdapter(fred),
		catalogue.InterestToDefense: NewInterestToDefenseAdapter(fred),
		catalogue.TradeBalanceGDP:   NewTradeBalanceGDPAdapter(fred),
		catalogue.IntlVsUS:          NewIntlVsUSAdapter(yahoo),
	}

	if cache != nil {
		for id, adapter := range adapters {
			adapters[id] = NewCachedAdapter(adapter, cache, log)
		}
	}

	return adapters
}
