// Package slug derives URL-safe identifiers from human-readable names.
package slug

import (
	"strings"
)

// diacritics is the fixed fold table applied before stripping. The table is
// deliberately small and locale-independent so the output never depends on
// the runtime locale.
var diacritics = strings.NewReplacer(
	"á", "a", "à", "a",
	"é", "e", "è", "e",
	"í", "i", "ì", "i",
	"ó", "o", "ò", "o",
	"ú", "u", "ù", "u",
	"ñ", "n",
	"ü", "u",
)

// Make derives a slug from a title or name: lowercase, fold the fixed
// diacritic table, collapse non-[a-z0-9] runs to single hyphens, trim
// leading/trailing hyphens. Deterministic and idempotent:
// Make(Make(x)) == Make(x).
func Make(s string) string {
	s = strings.ToLower(s)
	s = diacritics.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
