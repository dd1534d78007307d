package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"cap-structure-generator/internal/criterion"
)

// Default returns the built-in rule set for the audio policy base header.
func Default() *RuleSet {
	stub := StubValue
	remap := DefaultRemapStart

	return &RuleSet{
		Version:          "1",
		Wrapper:          "V(",
		Mask:             "AUDIO_DEVICE_BIT_IN | ",
		ReservedSuffixes: []string{"CNT", "MAX", "ALL", "NONE"},
		Criteria: []CriterionRule{
			{
				Prefix:         "AUDIO_STREAM",
				Name:           criterion.VolumeProfileType,
				Representation: RepresentationList{"enumeration"},
				Values:         ValuesVerbatim,
			},
			{
				Prefix:         "AUDIO_DEVICE_OUT",
				Name:           criterion.OutputDevicesMask,
				Representation: RepresentationList{"bitfield"},
				Values:         ValuesRemapMultiBit,
				RemapStart:     &remap,
				Renames:        map[string]string{"default": StubLiteral},
				Stub:           &stub,
			},
			{
				Prefix:         "AUDIO_DEVICE_IN",
				Name:           criterion.InputDevicesMask,
				Representation: RepresentationList{"bitfield"},
				Values:         ValuesSequential,
				Renames:        map[string]string{"default": StubLiteral},
				Deprecated:     []string{"ambient", "communication"},
				Stub:           &stub,
			},
		},
	}
}

// LoadFile loads a YAML rule file and overlays it on Default.
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data and overlays it on Default.
func Parse(data []byte) (*RuleSet, error) {
	var overlay RuleSet

	err := yaml.Unmarshal(data, &overlay)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule YAML: %w", err)
	}

	rs := Default()
	merge(rs, &overlay)
	applyDefaults(rs)

	return rs, nil
}

// merge copies every key set in overlay into rs. Criteria are matched by prefix;
// unknown prefixes are appended.
func merge(rs, overlay *RuleSet) {
	if overlay.Version != "" {
		rs.Version = overlay.Version
	}

	if overlay.Wrapper != "" {
		rs.Wrapper = overlay.Wrapper
	}

	if overlay.Mask != "" {
		rs.Mask = overlay.Mask
	}

	if overlay.ReservedSuffixes != nil {
		rs.ReservedSuffixes = overlay.ReservedSuffixes
	}

	for _, oc := range overlay.Criteria {
		base, ok := rs.Rule(oc.Prefix)
		if !ok {
			rs.Criteria = append(rs.Criteria, oc)
			continue
		}

		if oc.Name != "" {
			base.Name = oc.Name
		}

		if oc.Representation != nil {
			base.Representation = oc.Representation
		}

		if oc.Values != "" {
			base.Values = oc.Values
		}

		if oc.RemapStart != nil {
			base.RemapStart = oc.RemapStart
		}

		if oc.Renames != nil {
			base.Renames = oc.Renames
		}

		if oc.Deprecated != nil {
			base.Deprecated = oc.Deprecated
		}

		if oc.Stub != nil {
			base.Stub = oc.Stub
		}
	}
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(rs *RuleSet) {
	if rs.Version == "" {
		rs.Version = "1"
	}

	for i := range rs.Criteria {
		c := &rs.Criteria[i]
		if c.Values == "" {
			c.Values = ValuesVerbatim
		}

		if c.Name == "" {
			c.Name = criterion.Name(c.Prefix)
		}

		// Literals are compared lower-cased.
		if len(c.Renames) > 0 {
			renames := make(map[string]string, len(c.Renames))
			for from, to := range c.Renames {
				renames[strings.ToLower(from)] = strings.ToLower(to)
			}

			c.Renames = renames
		}

		for j, d := range c.Deprecated {
			c.Deprecated[j] = strings.ToLower(d)
		}
	}
}

// Marshal serializes a RuleSet to YAML.
func Marshal(rs *RuleSet) ([]byte, error) {
	return yaml.Marshal(rs)
}
