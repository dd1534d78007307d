// Package policy turns extracted header constants into the finalized
// literal/value mapping of every component type.
//
// Reduction pipeline, per constant in source order:
//  1. Route the prefix to its component type rule
//  2. Parse the value text (0x/0X is hex, anything else decimal)
//  3. Lower-case the literal and apply renames (default -> stub)
//  4. Drop deprecated literals
//  5. Assign the value: verbatim, sequential powers of two, or a fresh
//     single bit for multi-bit values
//  6. Evict any earlier literal holding the same value (latest wins)
//
// After the last constant, missing stub literals are injected and a summary
// is recorded. Every decision is reported as a diagnostic; only malformed
// values are errors.
package policy
