// Package slug derives URL-safe identifiers from display names.
package slug

import "strings"

// Fallback is used when a name normalizes to nothing (e.g. all punctuation),
// so candidate sequences never start with a bare hyphen.
const Fallback = "item"

// Make normalizes name into a base slug: lowercase, trimmed, whitespace runs
// collapsed to single hyphens, everything outside [a-z0-9_-] stripped,
// repeated hyphens collapsed, leading/trailing hyphens removed.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // swallow leading hyphens
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			b.WriteRune(r)
			lastHyphen = false
		default:
			// dropped
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// MakeOrFallback is Make with the empty result replaced by Fallback.
func MakeOrFallback(name string) string {
	if s := Make(name); s != "" {
		return s
	}
	return Fallback
}
