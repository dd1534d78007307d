package match

import (
	"slices"
	"strings"
)

// DefaultMaxDistance is the largest edit distance still reported as a
// suggestion for component type names.
const DefaultMaxDistance = 3

// Fold lower-cases s and drops '_', '-' and spaces, so that
// "Output_Devices_Mask" and "OutputDevicesMask" compare equal.
func Fold(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch r {
		case '_', '-', ' ':
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Closest returns the candidates nearest to name, compared after Fold.
// Only candidates within maxDistance are considered; ties are all returned
// in lexical order. An exact match of name itself is never suggested.
func Closest(name string, candidates []string, maxDistance int) []string {
	target := Fold(name)
	best := maxDistance + 1

	var out []string

	for _, c := range candidates {
		if c == name {
			continue
		}

		d := Levenshtein(target, Fold(c))

		switch {
		case d < best:
			best = d
			out = append(out[:0], c)
		case d == best && !slices.Contains(out, c):
			out = append(out, c)
		}
	}

	slices.Sort(out)

	return out
}
