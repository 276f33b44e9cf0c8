package models

import "testing"

// =============================================================================
// UNIT CONVERSION ROUND TRIPS
// =============================================================================

func TestPowerConversionRoundTrip(t *testing.T) {
	// Representative wizard answers. Conversion must not drift: a value
	// converted to the other unit and back is bit-identical.
	mwValues := []float64{0.0625, 0.285, 0.72, 1.5, 2.4, 12}
	for _, mw := range mwValues {
		if got := MWFromKW(KWFromMW(mw)); got != mw {
			t.Errorf("MW round trip drifted: %v -> %v", mw, got)
		}
	}

	kwValues := []float64{62.5, 285, 720, 1500, 2400, 12000}
	for _, kw := range kwValues {
		if got := KWFromMW(MWFromKW(kw)); got != kw {
			t.Errorf("kW round trip drifted: %v -> %v", kw, got)
		}
	}
}

func TestEnergyConversionRoundTrip(t *testing.T) {
	mwhValues := []float64{0.5, 0.72, 1.5, 5.6, 800}
	for _, mwh := range mwhValues {
		if got := MWhFromKWh(KWhFromMWh(mwh)); got != mwh {
			t.Errorf("MWh round trip drifted: %v -> %v", mwh, got)
		}
	}

	kwhValues := []float64{400, 720, 5600, 1500000}
	for _, kwh := range kwhValues {
		if got := KWhFromMWh(MWhFromKWh(kwh)); got != kwh {
			t.Errorf("kWh round trip drifted: %v -> %v", kwh, got)
		}
	}
}

func TestPowerConversionScale(t *testing.T) {
	if got := KWFromMW(1.5); got != 1500 {
		t.Errorf("KWFromMW(1.5) = %v, want 1500", got)
	}
	if got := MWFromKW(250); got != 0.25 {
		t.Errorf("MWFromKW(250) = %v, want 0.25", got)
	}
	if got := KWhFromMWh(0.8); got != 800 {
		t.Errorf("KWhFromMWh(0.8) = %v, want 800", got)
	}
}
