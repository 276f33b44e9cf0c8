package load

import (
	"sort"
	"strings"

	"gridquote/pkg/models"
)

// NormalizeIndustry maps a raw industry string to its canonical tag.
// Unknown values are a hard error: silently picking a "closest" industry
// is exactly the bug class this table exists to kill.
func NormalizeIndustry(raw string) (Industry, error) {
	key := canonKey(raw)
	if ind, ok := industryTable[key]; ok {
		return ind, nil
	}
	return "", &models.UnknownSubtypeError{
		Field: "industry",
		Value: raw,
		Known: sortedKeys(industryTable),
	}
}

// NormalizeSubtype maps a raw subtype string to the canonical token used
// in benchmark ids for the given industry. The per-industry tables are
// total over every variant the wizard has emitted; anything else fails.
func NormalizeSubtype(industry Industry, raw string) (string, error) {
	model, ok := industryModels[industry]
	if !ok {
		return "", &models.UnknownSubtypeError{
			Field: "industry",
			Value: string(industry),
			Known: industryNames(),
		}
	}

	key := canonKey(raw)
	if sub, ok := model.subtypes[key]; ok {
		return sub, nil
	}
	return "", &models.UnknownSubtypeError{
		Field:    "subtype",
		Value:    raw,
		Industry: string(industry),
		Known:    sortedKeys(model.subtypes),
	}
}

// NormalizeGridConnection maps the grid-quality answer. An empty answer
// normalizes to reliable only for industries that do not require it; the
// caller handles requiredness.
func NormalizeGridConnection(raw string) (GridConnection, error) {
	key := canonKey(raw)
	if gc, ok := gridConnectionTable[key]; ok {
		return gc, nil
	}
	return "", &models.UnknownSubtypeError{
		Field: "gridConnection",
		Value: raw,
		Known: sortedKeys(gridConnectionTable),
	}
}

// canonKey lowercases and collapses separator noise so "Upper-Scale",
// "upper_scale" and "upper scale" all hit the same table row. It never
// changes which row a value maps to, only how it is spelled.
func canonKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func industryNames() []string {
	names := make([]string, 0, len(industryModels))
	for ind := range industryModels {
		names = append(names, string(ind))
	}
	sort.Strings(names)
	return names
}
