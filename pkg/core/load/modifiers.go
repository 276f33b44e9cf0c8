package load

import (
	"gridquote/pkg/models"
)

// modifier is one derived load modifier plus where it came from, so the
// audit trail can show which raw answer triggered it.
type modifier struct {
	token      string // benchmark id suffix, e.g. "restaurant"
	answerKey  string // raw field that triggered it
	answerNote string // raw value or "true"
}

// foodServiceTable normalizes the hotel food-service answer. Values on
// the right say whether the tier implies a restaurant-class kitchen
// load. The table is total: an unlisted tier string is an error, it
// does not quietly mean "no restaurant".
var foodServiceTable = map[string]bool{
	"none":            false,
	"breakfast-only":  false,
	"breakfast_only":  false,
	"continental":     false,
	"limited":         true,
	"limited-service": true,
	"limited_service": true,
	"restaurant":      true,
	"full-restaurant": true,
	"full_restaurant": true,
	"full-service":    true,
	"full_service":    true,
}

// deriveModifiers maps raw wizard answers (flags and categorical
// strings) to the modifier set for an industry. This mapping is part of
// the load calculator's contract: the UI hands over raw answers and may
// not pre-digest them. Amenity answers that never reached the load model
// were a documented multi-hundred-percent sizing bug.
func deriveModifiers(industry Industry, in *models.FacilityInput) ([]modifier, error) {
	var mods []modifier

	flagMod := func(flagKey, token string) {
		if in.Flag(flagKey) {
			mods = append(mods, modifier{token: token, answerKey: flagKey, answerNote: "true"})
		}
	}

	switch industry {
	case IndustryHotel:
		if raw, ok := in.Choice("foodService"); ok {
			implies, known := foodServiceTable[canonKey(raw)]
			if !known {
				return nil, &models.UnknownSubtypeError{
					Field:    "foodService",
					Value:    raw,
					Industry: string(industry),
					Known:    sortedKeys(foodServiceTable),
				}
			}
			if implies {
				mods = append(mods, modifier{token: "restaurant", answerKey: "foodService", answerNote: raw})
			}
		}
		flagMod("hasRestaurant", "restaurant")
		flagMod("hasSpa", "spa")
		flagMod("hasPool", "pool")
		flagMod("hasConferenceSpace", "conference")
		flagMod("hasLaundry", "laundry")

	case IndustryOffice:
		flagMod("hasDataCloset", "data_closet")
		flagMod("hasCafeteria", "cafeteria")

	case IndustryRetail:
		flagMod("hasFoodCourt", "food_court")

	case IndustryGrocery:
		flagMod("hasPreparedFoods", "prepared_foods")
	}

	// A flag and a categorical answer can both imply the same modifier
	// (hasRestaurant alongside foodService); it must only count once.
	return dedupeModifiers(mods), nil
}

func dedupeModifiers(mods []modifier) []modifier {
	seen := make(map[string]bool, len(mods))
	out := mods[:0]
	for _, m := range mods {
		if seen[m.token] {
			continue
		}
		seen[m.token] = true
		out = append(out, m)
	}
	return out
}
