package benchmark

import (
	"testing"

	"gridquote/pkg/models"
)

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()

	b, err := reg.Lookup("cost.battery.per_kwh")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if b.Value != 380 {
		t.Errorf("battery cost = %f, want 380", b.Value)
	}
	if b.SourceID == "" || b.SourceLabel == "" {
		t.Error("catalog entries must carry a source id and label")
	}

	if _, err := reg.Lookup("cost.flux_capacitor.per_kw"); err == nil {
		t.Error("Lookup of unknown id must fail")
	}
}

func TestRegistryOverride(t *testing.T) {
	reg := NewRegistry()

	err := reg.Override(Benchmark{
		ID: "finance.discount_rate", Value: 0.10, Unit: "fraction",
		SourceID: "GQ-FIN-POLICY-2025", SourceLabel: "override",
	})
	if err != nil {
		t.Fatalf("Override failed: %v", err)
	}
	if v := reg.MustValue("finance.discount_rate"); v != 0.10 {
		t.Errorf("overridden value = %f, want 0.10", v)
	}

	// Overrides are per-registry, not global.
	fresh := NewRegistry()
	if v := fresh.MustValue("finance.discount_rate"); v == 0.10 {
		t.Error("override leaked into a fresh registry")
	}

	if err := reg.Override(Benchmark{ID: "x"}); err == nil {
		t.Error("override without a source id must fail")
	}
	if err := reg.Override(Benchmark{Value: 1, SourceID: "S"}); err == nil {
		t.Error("override without an id must fail")
	}
}

func TestRegistryRecord(t *testing.T) {
	reg := NewRegistry()

	var trail models.AuditTrail
	v, trail, err := reg.Record(trail, "test.component", "finance.itc.basis_reduction_fraction")
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if v != 0.5 {
		t.Errorf("value = %f, want 0.5", v)
	}
	if len(trail) != 1 {
		t.Fatalf("trail length = %d, want 1", len(trail))
	}
	if trail[0].Component != "test.component" || trail[0].SourceID == "" {
		t.Errorf("audit entry incomplete: %+v", trail[0])
	}

	if _, _, err := reg.Record(trail, "test.component", "no.such.id"); err == nil {
		t.Error("Record of unknown id must fail")
	}
}

func TestCatalogSourcesResolvable(t *testing.T) {
	reg := NewRegistry()
	for _, id := range reg.List() {
		b, err := reg.Lookup(id)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", id, err)
		}
		if b.SourceID == "" {
			t.Errorf("%s has no source id", id)
		}
		if b.SourceLabel == "" {
			t.Errorf("%s has no source label", id)
		}
	}
}
