package rates

import (
	"context"
	"testing"

	"gridquote/pkg/models"
)

func TestStaticProvider_KnownState(t *testing.T) {
	p := NewStaticProvider()
	ctx := context.Background()

	r, err := p.GetUtilityRate(ctx, models.Location{State: "CA"})
	if err != nil {
		t.Fatalf("GetUtilityRate failed: %v", err)
	}
	if r.EnergyRatePerKWh != 0.225 {
		t.Errorf("CA energy rate = %f, want 0.225", r.EnergyRatePerKWh)
	}
	if r.IsEstimate {
		t.Error("tabled state must not be flagged as estimate")
	}

	// Case and whitespace tolerant.
	r2, _ := p.GetUtilityRate(ctx, models.Location{State: " ca "})
	if r2.EnergyRatePerKWh != r.EnergyRatePerKWh {
		t.Error("state lookup should be case-insensitive")
	}
}

func TestStaticProvider_UnknownStateFlagged(t *testing.T) {
	p := NewStaticProvider()

	r, err := p.GetUtilityRate(context.Background(), models.Location{State: "WY"})
	if err != nil {
		t.Fatalf("GetUtilityRate failed: %v", err)
	}
	if !r.IsEstimate {
		t.Error("national-default rates must be flagged as estimates")
	}
	if r.Source != "EIA-861-NATIONAL-AVG" {
		t.Errorf("Source = %q, want national average marker", r.Source)
	}
	if r.EnergyRatePerKWh <= 0 || r.DemandChargePerKWMonth <= 0 {
		t.Error("fallback tariff must still carry usable numbers")
	}
}

func TestStaticProvider_Incentives(t *testing.T) {
	p := NewStaticProvider()
	ctx := context.Background()

	inc, err := p.GetIncentives(ctx, models.Location{State: "CA"})
	if err != nil {
		t.Fatalf("GetIncentives failed: %v", err)
	}
	if inc.StateRebatePerKWh != 200 {
		t.Errorf("CA rebate = %f, want 200", inc.StateRebatePerKWh)
	}
	if inc.StateCapAmount != 1000000 {
		t.Errorf("CA cap = %f, want 1000000", inc.StateCapAmount)
	}

	// No program is a real zero answer, not an estimate.
	none, err := p.GetIncentives(ctx, models.Location{State: "TX"})
	if err != nil {
		t.Fatalf("GetIncentives failed: %v", err)
	}
	if none.StateRebatePerKWh != 0 {
		t.Errorf("TX rebate = %f, want 0", none.StateRebatePerKWh)
	}
	if none.IsEstimate {
		t.Error("absence of a program is a fact, not an estimate")
	}
}
