package policy

import (
	"fmt"
	"math/bits"
	"strings"

	"cap-structure-generator/internal/bitpos"
	"cap-structure-generator/internal/criterion"
	"cap-structure-generator/internal/diagnostic"
	"cap-structure-generator/internal/header"
	"cap-structure-generator/internal/rules"
)

// Result is the outcome of a reduction.
type Result struct {
	Table       criterion.Table
	Diagnostics diagnostic.Diagnostics
}

// Reduce folds constants, in order, into the finalized mappings described by rs.
// The only error is a *ValueParseError. The result returned with it has an
// empty table and the diagnostics of the constants applied before the failure.
func Reduce(constants []header.Constant, rs *rules.RuleSet) (*Result, error) {
	e := NewEngine(rs)

	for _, c := range constants {
		if err := e.Apply(c); err != nil {
			return &Result{Diagnostics: e.diags}, err
		}
	}

	res := e.Finalize()

	return &res, nil
}

// Engine applies the rule set one constant at a time.
// An Engine must not be used after Finalize.
type Engine struct {
	rules    *rules.RuleSet
	builders map[criterion.Name]*criterion.Builder
	// nextBit holds the next bit handed out per component type, for the
	// sequential and remap-multibit strategies.
	nextBit map[criterion.Name]int
	diags   diagnostic.Diagnostics
}

// NewEngine returns an engine with an empty mapping for every component type in rs.
func NewEngine(rs *rules.RuleSet) *Engine {
	e := &Engine{
		rules:    rs,
		builders: make(map[criterion.Name]*criterion.Builder),
		nextBit:  make(map[criterion.Name]int),
	}

	for _, name := range rs.Names() {
		e.builders[name] = criterion.NewBuilder(name)
	}

	return e
}

// Apply routes one constant through the rules.
func (e *Engine) Apply(c header.Constant) error {
	rule, ok := e.rules.Rule(c.Prefix)
	if !ok {
		e.diags.AddWarning(diagnostic.CodeMappingMissing,
			fmt.Sprintf("no rule for prefix %s, line %d ignored", c.Prefix, c.Line), "", c.Literal)

		return nil
	}

	value, err := ParseValue(c.Value)
	if err != nil {
		return &ValueParseError{Line: c.Line, Prefix: c.Prefix, Literal: c.Literal, Text: c.Value, Err: err}
	}

	name := rule.Name
	crit := string(name)
	literal := strings.ToLower(c.Literal)

	if to, ok := rule.Renames[literal]; ok && to != literal {
		e.diags.AddInfo(diagnostic.CodeRenamed, fmt.Sprintf("renamed %s to %s", literal, to), crit, to)
		literal = to
	}

	if rule.IsDeprecated(literal) {
		e.diags.AddInfo(diagnostic.CodeDeprecated, "removed deprecated literal", crit, literal)
		return nil
	}

	switch rule.Values {
	case rules.ValuesSequential:
		value, ok = e.takeBit(name, 0, crit, literal)
		if !ok {
			return nil
		}

	case rules.ValuesRemapMultiBit:
		if n := bits.OnesCount64(value); n > 1 {
			original := value

			value, ok = e.takeBit(name, rule.RemapStartBit(), crit, literal)
			if !ok {
				return nil
			}

			e.diags.AddInfo(diagnostic.CodeMultiBitRemapped,
				fmt.Sprintf("value %#x (%b) has %d bits set, assigned %#x", original, original, n, value),
				crit, literal)
		}

	case rules.ValuesVerbatim:
	}

	e.set(name, literal, value)

	return nil
}

// takeBit hands out the next free single-bit value of name, starting at start
// the first time. Running past the top bit drops the literal.
func (e *Engine) takeBit(name criterion.Name, start int, crit, literal string) (uint64, bool) {
	bit, ok := e.nextBit[name]
	if !ok {
		bit = start
	}

	if bit >= bitpos.MaxBits {
		e.diags.AddWarning(diagnostic.CodeBitSpaceExhausted,
			fmt.Sprintf("no bit left below %d, literal dropped", bitpos.MaxBits), crit, literal)

		return 0, false
	}

	e.nextBit[name] = bit + 1

	return uint64(1) << bit, true
}

func (e *Engine) set(name criterion.Name, literal string, value uint64) {
	b, ok := e.builders[name]
	if !ok {
		b = criterion.NewBuilder(name)
		e.builders[name] = b
	}

	if prev, evicted := b.Set(literal, value); evicted {
		e.diags.AddInfo(diagnostic.CodeDuplicate,
			fmt.Sprintf("value %#x is duplicated, keeping latest %s over %s", value, literal, prev),
			string(name), literal)
	}
}

// Finalize injects missing stubs and returns the finalized mappings in rule order.
func (e *Engine) Finalize() Result {
	for _, rule := range e.rules.Criteria {
		if rule.Stub == nil {
			continue
		}

		if b := e.builders[rule.Name]; b.Has(rules.StubLiteral) {
			continue
		}

		e.set(rule.Name, rules.StubLiteral, *rule.Stub)
		e.diags.AddInfo(diagnostic.CodeStubInjected,
			fmt.Sprintf("added %s with value %#x", rules.StubLiteral, *rule.Stub), string(rule.Name), rules.StubLiteral)
	}

	names := e.rules.Names()
	mappings := make([]criterion.Mapping, 0, len(names))

	for _, name := range names {
		m := e.builders[name].Freeze()
		mappings = append(mappings, m)
		e.diags.AddInfo(diagnostic.CodeSummary, m.String(), string(name), "")
	}

	return Result{
		Table:       criterion.NewTable(mappings...),
		Diagnostics: e.diags,
	}
}
