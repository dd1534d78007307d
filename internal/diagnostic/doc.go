// Package diagnostic provides structured warnings, errors, and
// "why this value changed" explanations for the structure generator.
//
// Key capabilities:
//   - Renamed and deprecated literal reports
//   - Duplicate value resolution (which literal was dropped, which kept)
//   - Stub injection and multi-bit remapping notices
//   - Bit resolution skips and template mismatches
package diagnostic
