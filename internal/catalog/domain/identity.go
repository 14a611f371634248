package domain

import "strings"

// The backend emits product references under two identifier fields:
// the primary one and a legacy one, used interchangeably by different
// producers. CanonicalID collapses both shapes to a single key so that
// two differently-shaped records for the same product collide in every
// collection keyed by product identity (cart, favorites, catalog
// cache). Prefers the primary field, falls back to the legacy one;
// reports false when neither is present, in which case the record is
// invalid and must be excluded from the operation in progress.
func CanonicalID(primary, legacy string) (string, bool) {
	if id := strings.TrimSpace(primary); id != "" {
		return id, true
	}
	if id := strings.TrimSpace(legacy); id != "" {
		return id, true
	}
	return "", false
}
