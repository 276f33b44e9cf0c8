package quote

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"gridquote/pkg/models"
)

// fingerprintPayload is the exact value identity of one engine
// invocation. Anything that can change the output must be in here;
// nothing else may be.
type fingerprintPayload struct {
	Input       models.FacilityInput `json:"input"`
	Prefs       models.Preferences   `json:"prefs"`
	InstallYear int                  `json:"installYear"`
}

// Fingerprint returns the content-derived cache key for an invocation.
// encoding/json writes map keys in sorted order, so the serialization
// is canonical for the map-typed answer fields.
func Fingerprint(input models.FacilityInput, prefs models.Preferences, installYear int) (string, error) {
	raw, err := json.Marshal(fingerprintPayload{
		Input:       input,
		Prefs:       prefs,
		InstallYear: installYear,
	})
	if err != nil {
		return "", fmt.Errorf("fingerprint serialization failed: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
