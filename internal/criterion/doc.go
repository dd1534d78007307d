// Package criterion defines the data model shared by the pipeline: component
// type names, their structural representation, literal/value pairs and the
// finalized per-type mappings.
//
// A Builder is used while values are being reduced; it keeps literal names
// unique and numeric values unique (the latest literal for a value wins).
// Freeze turns it into an immutable Mapping whose entries are always
// reported in ascending numeric order.
package criterion
