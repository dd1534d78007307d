package criterion

import (
	"fmt"
	"strings"

	"cap-structure-generator/internal/common"
)

// Name identifies a component type in the structure document.
type Name string

const (
	VolumeProfileType Name = "VolumeProfileType"
	OutputDevicesMask Name = "OutputDevicesMask"
	InputDevicesMask  Name = "InputDevicesMask"
)

// String returns the name as used in the Name attribute of a ComponentType node.
func (n Name) String() string { return string(n) }

// Representation is the structural kind a component type is rendered as.
// Values combine as a bit set.
type Representation int

const (
	RepresentationBitField    Representation = 1 << iota // one BitParameter per literal
	RepresentationEnumeration                            // one ValuePair per literal

	RepresentationAll  = (1 << iota) - 1 // every representation
	RepresentationNone = 0               // nothing is rendered
)

// Has reports whether r includes every representation in other.
func (r Representation) Has(other Representation) bool {
	return other != RepresentationNone && r&other == other
}

// String returns a human-readable representation name.
func (r Representation) String() string {
	switch r {
	case RepresentationNone:
		return "none"
	case RepresentationBitField:
		return "bitfield"
	case RepresentationEnumeration:
		return "enumeration"
	case RepresentationAll:
		return "bitfield|enumeration"
	default:
		return common.UnknownStr
	}
}

// ParseRepresentation parses a single representation name.
func ParseRepresentation(s string) (Representation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bitfield", "bit_field", "bits":
		return RepresentationBitField, nil
	case "enumeration", "enum":
		return RepresentationEnumeration, nil
	default:
		return RepresentationNone, fmt.Errorf("unknown representation %q", s)
	}
}

// LiteralValue is a symbolic name paired with its numeric value.
type LiteralValue struct {
	Literal string
	Value   uint64
}

// String renders the pair as "literal:value".
func (lv LiteralValue) String() string {
	return fmt.Sprintf("%s:%d", lv.Literal, lv.Value)
}
