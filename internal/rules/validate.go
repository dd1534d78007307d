package rules

import (
	"fmt"
	"regexp"

	"cap-structure-generator/internal/bitpos"
	"cap-structure-generator/internal/diagnostic"
)

var identPattern = regexp.MustCompile(`^\w+$`)

// Validate checks a rule set for structural problems. It does not look at any
// header or template.
func Validate(rs *RuleSet) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if rs == nil {
		res.AddError(diagnostic.CodeInvalidRule, "rule set is nil", "", "")
		return res
	}

	if len(rs.Criteria) == 0 {
		res.AddError(diagnostic.CodeInvalidRule, "no criteria configured", "", "")
	}

	for _, suffix := range rs.ReservedSuffixes {
		if !identPattern.MatchString(suffix) {
			res.AddError(diagnostic.CodeInvalidRule, fmt.Sprintf("invalid reserved suffix %q", suffix), "", "")
		}
	}

	seenPrefixes := map[string]struct{}{}

	for i := range rs.Criteria {
		c := &rs.Criteria[i]
		name := string(c.Name)

		if !identPattern.MatchString(c.Prefix) {
			res.AddError(diagnostic.CodeInvalidRule, fmt.Sprintf("invalid prefix %q", c.Prefix), name, "")
			continue
		}

		if _, ok := seenPrefixes[c.Prefix]; ok {
			res.AddError(diagnostic.CodeInvalidRule, fmt.Sprintf("duplicate prefix %q", c.Prefix), name, "")
			continue
		}

		seenPrefixes[c.Prefix] = struct{}{}

		if c.Name == "" {
			res.AddError(diagnostic.CodeInvalidRule, fmt.Sprintf("prefix %q has no name", c.Prefix), "", "")
		}

		if _, err := c.Representation.Representation(); err != nil {
			res.AddError(diagnostic.CodeInvalidRule, err.Error(), name, "")
		}

		if !c.Values.IsValid() {
			res.AddError(diagnostic.CodeInvalidRule, fmt.Sprintf("unknown value strategy %q", c.Values), name, "")
		}

		if start := c.RemapStartBit(); start < 0 || start >= bitpos.MaxBits {
			res.AddError(diagnostic.CodeInvalidRule,
				fmt.Sprintf("remap_start %d outside [0,%d)", start, bitpos.MaxBits), name, "")
		}

		for from, to := range c.Renames {
			if to == "" {
				res.AddError(diagnostic.CodeInvalidRule, fmt.Sprintf("rename of %q has empty target", from), name, from)
			}
		}

		if c.Stub != nil && *c.Stub == 0 {
			res.AddWarning(diagnostic.CodeInvalidRule, "stub value 0 cannot be rendered as a bit", name, StubLiteral)
		}
	}

	return res
}
