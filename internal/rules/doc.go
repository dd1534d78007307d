// Package rules provides the YAML rule set that drives extraction and value
// policy: which header prefixes map to which component types, how each
// type's values are assigned, and which literals are renamed, dropped or
// stubbed.
//
// The built-in Default rule set reproduces the audio policy header
// conventions. A rule file only needs the keys it overrides.
//
// # Schema Overview
//
//	version: "1"
//	wrapper: "V("
//	mask: "AUDIO_DEVICE_BIT_IN | "
//	reserved_suffixes: [CNT, MAX, ALL, NONE]
//	criteria:
//	  - prefix: AUDIO_DEVICE_IN
//	    name: InputDevicesMask
//	    representation: [bitfield]
//	    values: sequential
//	    renames: {default: stub}
//	    deprecated: [ambient, communication]
//	    stub: 0x40000000
//
// # Value strategies
//
//   - verbatim: the header value is used as-is
//   - sequential: values are 1, 2, 4, ... in first-encounter order
//   - remap-multibit: values with more than one bit set are replaced by
//     single bits counting up from remap_start
package rules
