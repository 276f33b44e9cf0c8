package models

// The wizard asks for peak load and grid capacity in MW; the engine
// works in kW throughout. All unit conversion happens through these
// helpers so a value converted in and back out is bit-identical.

const kwPerMW = 1000.0

// KWFromMW converts a power figure from megawatts to kilowatts.
func KWFromMW(mw float64) float64 { return mw * kwPerMW }

// MWFromKW converts a power figure from kilowatts to megawatts.
func MWFromKW(kw float64) float64 { return kw / kwPerMW }

// KWhFromMWh converts an energy figure from megawatt-hours to
// kilowatt-hours.
func KWhFromMWh(mwh float64) float64 { return mwh * kwPerMW }

// MWhFromKWh converts an energy figure from kilowatt-hours to
// megawatt-hours.
func MWhFromKWh(kwh float64) float64 { return kwh / kwPerMW }
