package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"cap-structure-generator/internal/common"
	"cap-structure-generator/internal/criterion"
)

// StubValue is the placeholder value injected for a missing stub literal.
const StubValue uint64 = 0x40000000

// StubLiteral is the literal name used for injected stubs.
const StubLiteral = "stub"

// DefaultRemapStart is the first bit used for remapped multi-bit values.
const DefaultRemapStart = 32

// RuleSet is the root of a rule file.
type RuleSet struct {
	Version          string          `yaml:"version"`
	Wrapper          string          `yaml:"wrapper,omitempty"`
	Mask             string          `yaml:"mask,omitempty"`
	ReservedSuffixes []string        `yaml:"reserved_suffixes,omitempty"`
	Criteria         []CriterionRule `yaml:"criteria"`
}

// CriterionRule configures one header prefix and the component type it feeds.
type CriterionRule struct {
	Prefix         string             `yaml:"prefix"`
	Name           criterion.Name     `yaml:"name"`
	Representation RepresentationList `yaml:"representation,omitempty"`
	Values         ValueStrategy      `yaml:"values,omitempty"`
	RemapStart     *int               `yaml:"remap_start,omitempty"`
	Renames        map[string]string  `yaml:"renames,omitempty"`
	Deprecated     []string           `yaml:"deprecated,omitempty"`
	Stub           *uint64            `yaml:"stub,omitempty"`
}

// ValueStrategy selects how a criterion's numeric values are assigned.
type ValueStrategy string

const (
	ValuesVerbatim      ValueStrategy = "verbatim"
	ValuesSequential    ValueStrategy = "sequential"
	ValuesRemapMultiBit ValueStrategy = "remap-multibit"
)

// IsValid reports whether s is a known strategy.
func (s ValueStrategy) IsValid() bool {
	switch s {
	case ValuesVerbatim, ValuesSequential, ValuesRemapMultiBit:
		return true
	default:
		return false
	}
}

// RepresentationList is a YAML list of representation names.
type RepresentationList []string

// Representation folds the list into a bit set.
func (l RepresentationList) Representation() (criterion.Representation, error) {
	r := criterion.Representation(criterion.RepresentationNone)

	for _, name := range l {
		one, err := criterion.ParseRepresentation(name)
		if err != nil {
			return criterion.RepresentationNone, err
		}

		r |= one
	}

	return r, nil
}

// MarshalYAML writes a single name as a scalar, otherwise a list.
func (l RepresentationList) MarshalYAML() (any, error) {
	if common.IsSingle(l) {
		v, _ := common.First(l)
		return v, nil
	}

	return []string(l), nil
}

// UnmarshalYAML accepts either a single name or a list of names.
func (l *RepresentationList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string

		err := node.Decode(&s)
		if err != nil {
			return err
		}

		if s != "" {
			*l = RepresentationList{s}
		} else {
			*l = RepresentationList{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*l = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// Rule returns the rule for prefix.
func (rs *RuleSet) Rule(prefix string) (*CriterionRule, bool) {
	for i := range rs.Criteria {
		if rs.Criteria[i].Prefix == prefix {
			return &rs.Criteria[i], true
		}
	}

	return nil, false
}

// Prefixes returns every configured header prefix in rule order.
func (rs *RuleSet) Prefixes() []string {
	out := make([]string, 0, len(rs.Criteria))
	for _, c := range rs.Criteria {
		out = append(out, c.Prefix)
	}

	return out
}

// Names returns the distinct component type names in rule order.
func (rs *RuleSet) Names() []criterion.Name {
	var out []criterion.Name

	seen := map[criterion.Name]struct{}{}

	for _, c := range rs.Criteria {
		if _, ok := seen[c.Name]; ok {
			continue
		}

		seen[c.Name] = struct{}{}
		out = append(out, c.Name)
	}

	return out
}

// Representations returns the declared representation of every component type.
// Invalid entries are reported by Validate and resolve to RepresentationNone here.
func (rs *RuleSet) Representations() map[criterion.Name]criterion.Representation {
	out := make(map[criterion.Name]criterion.Representation, len(rs.Criteria))

	for _, c := range rs.Criteria {
		r, err := c.Representation.Representation()
		if err != nil {
			r = criterion.RepresentationNone
		}

		out[c.Name] |= r
	}

	return out
}

// RemapStartBit returns the configured remap start or DefaultRemapStart.
func (c *CriterionRule) RemapStartBit() int {
	if c.RemapStart == nil {
		return DefaultRemapStart
	}

	return *c.RemapStart
}

// IsDeprecated reports whether literal is listed as deprecated.
func (c *CriterionRule) IsDeprecated(literal string) bool {
	for _, d := range c.Deprecated {
		if d == literal {
			return true
		}
	}

	return false
}
