// Package header extracts symbolic constants from enumeration macros in a C
// header.
//
// A recognised line looks like
//
//	V(AUDIO_DEVICE_IN_BUILTIN_MIC, AUDIO_DEVICE_BIT_IN | 0x4u) \
//
// and yields the triple (AUDIO_DEVICE_IN, BUILTIN_MIC, 0x4). The wrapper
// token, the prefixes and the discarded mask token come from the rule set.
// Values are returned as written; numeric interpretation happens later.
//
// Literals that equal, or start with, a reserved suffix (CNT, MAX, ALL, NONE
// by default) are helpers for enum users and are rejected after the match.
// Lines that do not match are skipped without error.
package header
