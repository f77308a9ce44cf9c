// Package match decides whether two free-text identifiers from independently
// maintained feeds refer to the same real-world ship or cabin. All functions
// are pure and total: unmatched or malformed input yields false, never an error.
package match

import "strings"

// Generic vessel words that carry no identity on their own. Stripping them
// lets "MV Aurora" line up with "Aurora Liveaboard".
var boatFillerWords = map[string]struct{}{
	"mv":         {},
	"ms":         {},
	"km":         {},
	"klm":        {},
	"sv":         {},
	"kapal":      {},
	"liveaboard": {},
	"cruise":     {},
	"cruises":    {},
	"boat":       {},
	"ship":       {},
	"yacht":      {},
	"phinisi":    {},
}

var cabinFillerWords = map[string]struct{}{
	"cabin":  {},
	"cabins": {},
	"room":   {},
	"rooms":  {},
}

// NormalizeName lowercases, strips punctuation, and collapses whitespace
// runs so that feeds which drift in spelling still compare equal.
func NormalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// BoatNamesMatch reports whether two ship/operator names refer to the same
// vessel. Empty input never matches anything.
func BoatNamesMatch(a, b string) bool {
	return namesMatch(a, b, boatFillerWords)
}

// CabinNamesMatch reports whether two cabin/room-type names refer to the
// same cabin class. Empty input never matches anything.
func CabinNamesMatch(a, b string) bool {
	return namesMatch(a, b, cabinFillerWords)
}

func namesMatch(a, b string, filler map[string]struct{}) bool {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb || strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}

	// Retry with generic words stripped; the remainder is the identity.
	sa, sb := stripFiller(na, filler), stripFiller(nb, filler)
	if sa == "" || sb == "" {
		return false
	}
	return sa == sb || strings.Contains(sa, sb) || strings.Contains(sb, sa)
}

func stripFiller(normalized string, filler map[string]struct{}) string {
	fields := strings.Fields(normalized)
	kept := fields[:0]
	for _, f := range fields {
		if _, ok := filler[f]; !ok {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
