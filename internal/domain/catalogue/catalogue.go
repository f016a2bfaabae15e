// Package catalogue holds the static, ordered table of tracked indicators.
// The order here is the order of the rendered report.
package catalogue

import (
	"fmt"

	"github.com/dreschagin/macro-watch/internal/domain/valueobject"
)

// Indicator identifiers. Source adapters register under these IDs.
const (
	USDReserveShare   = "usd_reserve_share"
	ChinaTreasury     = "china_treasury"
	JapanTreasury     = "japan_treasury"
	DollarIndex       = "dxy"
	DebtToGDP         = "debt_to_gdp"
	InterestToRevenue = "interest_to_revenue"
	InterestToDefense = "interest_to_defense"
	TradeBalanceGDP   = "trade_balance_gdp"
	IntlVsUS          = "intl_vs_us"
)

// Indicators returns the ordered indicator catalogue. The slice is rebuilt on
// every call so callers cannot mutate the shared table.
func Indicators() []valueobject.IndicatorSpec {
	return []valueobject.IndicatorSpec{
		{
			ID:        USDReserveShare,
			Title:     "USD Share of Global Reserves",
			Unit:      "%",
			Precision: 1,
			Threshold: mustThreshold(55.0, 50.0, valueobject.DirectionBelow),
			Context:   "Peaked at 71% in 2000. Declined to ~58% by 2024. Below 50% would be unprecedented since tracking began in 1999.",
		},
		{
			ID:        ChinaTreasury,
			Title:     "China Treasury Holdings",
			Unit:      "$B",
			Precision: 1,
			Threshold: mustThreshold(700.0, 500.0, valueobject.DirectionBelow),
			Context:   "Peaked at $1.32T in Nov 2013. Has been steadily declining since 2018. Below $500B would signal aggressive divestment.",
		},
		{
			ID:        JapanTreasury,
			Title:     "Japan Treasury Holdings",
			Unit:      "$B",
			Precision: 1,
			Threshold: mustThreshold(1000.0, 850.0, valueobject.DirectionBelow),
			Context:   "Largest foreign holder. Peaked at $1.29T in Nov 2021. Selling often reflects yen defense rather than dedollarization.",
		},
		{
			ID:        DollarIndex,
			Title:     "Dollar Index (DXY)",
			Unit:      "",
			Precision: 2,
			Threshold: mustThreshold(90.0, 80.0, valueobject.DirectionBelow),
			Context:   "Created 1973 at 100. All-time high: 164.7 (Feb 1985). All-time low: 70.7 (Mar 2008). Measures USD vs EUR (57.6%), JPY (13.6%), GBP (11.9%), CAD (9.1%), SEK (4.2%), CHF (3.6%).",
		},
		{
			ID:        DebtToGDP,
			Title:     "US Federal Debt to GDP",
			Unit:      "%",
			Precision: 1,
			Threshold: mustThreshold(130.0, 150.0, valueobject.DirectionAbove),
			Context:   "Was 55% in 2000, crossed 100% in 2013, peaked at 126% in 2020. For comparison: Japan ~260%, Italy ~140%, UK ~100%, Germany ~65%.",
		},
		{
			ID:        InterestToRevenue,
			Title:     "Interest Payments vs Federal Revenue",
			Unit:      "%",
			Precision: 1,
			Threshold: mustThreshold(20.0, 22.0, valueobject.DirectionAbove),
			Context:   "Previous peak was ~18% in 1991. Fell to ~6% by 2015 due to low rates. Japan at ~260% debt/GDP only pays ~8% of revenue to interest due to BoJ ownership and near-zero rates.",
		},
		{
			ID:        InterestToDefense,
			Title:     "Interest Payments vs Defense Spending",
			Unit:      "%",
			Precision: 1,
			Threshold: mustThreshold(100.0, 120.0, valueobject.DirectionAbove),
			Context:   "Crossed 100% for the first time in 2024 (~$880B interest vs ~$820B defense). Great powers historically decline when debt service exceeds military spending.",
		},
		{
			ID:        TradeBalanceGDP,
			Title:     "Trade Balance as % of GDP",
			Unit:      "%",
			Precision: 2,
			Threshold: mustThreshold(-1.5, -0.5, valueobject.DirectionAbove),
			Context:   "The US has run continuous deficits since 1976. Peak deficit was -5.7% in 2006. A rapid move toward zero would signal the world is no longer willing to finance US consumption.",
		},
		{
			ID:        IntlVsUS,
			Title:     "International vs US Stock Performance",
			Unit:      "%",
			Precision: 1,
			Threshold: nil, // informational only, never counted
			Context:   "VXUS 3-year return minus VTI 3-year return. Positive means international markets are outperforming US markets.",
		},
	}
}

// Validate checks the catalogue at startup. A broken table is a programming
// error, so the entrypoints fail fast instead of degrading per run.
func Validate() error {
	seen := make(map[string]bool)

	for i, spec := range Indicators() {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("catalogue entry %d (%s): %w", i, spec.ID, err)
		}
		if seen[spec.ID] {
			return fmt.Errorf("catalogue entry %d: duplicate indicator id %q", i, spec.ID)
		}
		seen[spec.ID] = true
	}

	return nil
}

func mustThreshold(warning, critical float64, direction valueobject.Direction) *valueobject.Threshold {
	t, err := valueobject.NewThreshold(warning, critical, direction)
	if err != nil {
		panic(fmt.Sprintf("invalid threshold in catalogue: %v", err))
	}
	return &t
}
