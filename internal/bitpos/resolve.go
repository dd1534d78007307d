// Package bitpos maps single-bit values to their bit index.
package bitpos

import "errors"

// MaxBits is the width of the bit field a position must fit in.
const MaxBits = 64

var (
	// ErrMultipleBits is returned for values that are not a power of two.
	// Such values cannot be expressed as a single-bit flag and are skipped.
	ErrMultipleBits = errors.New("value has multiple bits set")
	// ErrOverflow is returned when the position would not fit in MaxBits.
	ErrOverflow = errors.New("bit position out of range")
)

// Resolve returns k for v == 1<<k. A probe bit is shifted left one position
// at a time until it reaches v; overshooting means v is not a power of two.
// Zero is never reached by the probe and is reported as ErrMultipleBits.
func Resolve(v uint64) (int, error) {
	pos := 0
	probe := uint64(1)

	for probe < v {
		probe <<= 1
		pos++

		if pos == MaxBits {
			return -1, ErrOverflow
		}
	}

	if probe != v {
		return -1, ErrMultipleBits
	}

	return pos, nil
}
