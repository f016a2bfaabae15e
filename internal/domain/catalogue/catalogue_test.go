package catalogue

import (
	"testing"

	"github.com/dreschagin/macro-watch/internal/domain/valueobject"
)

func TestCatalogue_Valid(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestCatalogue_OrderAndContents(t *testing.T) {
	specs := Indicators()

	wantOrder := []string{
		USDReserveShare,
		ChinaTreasury,
		JapanTreasury,
		DollarIndex,
		DebtToGDP,
		InterestToRevenue,
		InterestToDefense,
		TradeBalanceGDP,
		IntlVsUS,
	}

	if len(specs) != len(wantOrder) {
		t.Fatalf("catalogue has %d entries, want %d", len(specs), len(wantOrder))
	}
	for i, spec := range specs {
		if spec.ID != wantOrder[i] {
			t.Errorf("entry %d = %s, want %s", i, spec.ID, wantOrder[i])
		}
	}
}

func TestCatalogue_OnlyIntlVsUSIsInformational(t *testing.T) {
	for _, spec := range Indicators() {
		informational := spec.Informational()
		if spec.ID == IntlVsUS && !informational {
			t.Errorf("%s should be informational", spec.ID)
		}
		if spec.ID != IntlVsUS && informational {
			t.Errorf("%s should carry a threshold", spec.ID)
		}
	}
}

func TestCatalogue_ThresholdDirections(t *testing.T) {
	wantBelow := map[string]bool{
		USDReserveShare: true,
		ChinaTreasury:   true,
		JapanTreasury:   true,
		DollarIndex:     true,
	}

	for _, spec := range Indicators() {
		if spec.Threshold == nil {
			continue
		}
		direction := spec.Threshold.Direction()
		if wantBelow[spec.ID] && direction != valueobject.DirectionBelow {
			t.Errorf("%s direction = %s, want below", spec.ID, direction)
		}
		if !wantBelow[spec.ID] && direction != valueobject.DirectionAbove {
			t.Errorf("%s direction = %s, want above", spec.ID, direction)
		}
	}
}

func TestCatalogue_CallersCannotMutateTable(t *testing.T) {
	first := Indicators()
	first[0].Title = "mutated"

	second := Indicators()
	if second[0].Title == "mutated" {
		t.Error("mutating a returned slice leaked into the catalogue")
	}
}
