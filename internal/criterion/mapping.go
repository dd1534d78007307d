package criterion

import (
	"cmp"
	"slices"
	"strings"
)

// Builder accumulates literal/value pairs for one component type.
type Builder struct {
	name    Name
	values  map[string]uint64
	byValue map[uint64]string
}

// NewBuilder returns an empty builder for the named component type.
func NewBuilder(name Name) *Builder {
	return &Builder{
		name:    name,
		values:  make(map[string]uint64),
		byValue: make(map[uint64]string),
	}
}

// Has reports whether literal is present.
func (b *Builder) Has(literal string) bool {
	_, ok := b.values[literal]
	return ok
}

// Lookup returns the literal currently holding value, if any.
func (b *Builder) Lookup(value uint64) (string, bool) {
	literal, ok := b.byValue[value]
	return literal, ok
}

// Len returns the number of literals.
func (b *Builder) Len() int { return len(b.values) }

// Set stores literal with value. A different literal already holding value is
// evicted and returned; re-setting an existing literal moves it to the new value.
func (b *Builder) Set(literal string, value uint64) (evicted string, ok bool) {
	if prev, found := b.byValue[value]; found {
		delete(b.values, prev)
		delete(b.byValue, value)

		if prev != literal {
			evicted, ok = prev, true
		}
	}

	if old, found := b.values[literal]; found {
		delete(b.byValue, old)
	}

	b.values[literal] = value
	b.byValue[value] = literal

	return evicted, ok
}

// Freeze returns an immutable snapshot of the builder.
func (b *Builder) Freeze() Mapping {
	entries := make([]LiteralValue, 0, len(b.values))
	for literal, value := range b.values {
		entries = append(entries, LiteralValue{Literal: literal, Value: value})
	}

	sortEntries(entries)

	return Mapping{name: b.name, entries: entries}
}

// Mapping is the finalized set of literal/value pairs for one component type.
type Mapping struct {
	name    Name
	entries []LiteralValue
}

// NewMapping builds a mapping from pairs; later pairs win on value clashes.
func NewMapping(name Name, pairs ...LiteralValue) Mapping {
	b := NewBuilder(name)
	for _, p := range pairs {
		b.Set(p.Literal, p.Value)
	}

	return b.Freeze()
}

// Name returns the component type name.
func (m Mapping) Name() Name { return m.name }

// Len returns the number of entries.
func (m Mapping) Len() int { return len(m.entries) }

// Entries returns the entries in ascending value order. The slice is a copy.
func (m Mapping) Entries() []LiteralValue {
	return slices.Clone(m.entries)
}

// Value returns the value held by literal.
func (m Mapping) Value(literal string) (uint64, bool) {
	for _, e := range m.entries {
		if e.Literal == literal {
			return e.Value, true
		}
	}

	return 0, false
}

// String renders the mapping as "<literal:value,...>".
func (m Mapping) String() string {
	parts := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		parts = append(parts, e.String())
	}

	return "<" + strings.Join(parts, ",") + ">"
}

func sortEntries(entries []LiteralValue) {
	slices.SortFunc(entries, func(a, b LiteralValue) int {
		if c := cmp.Compare(a.Value, b.Value); c != 0 {
			return c
		}

		return cmp.Compare(a.Literal, b.Literal)
	})
}

// Table is an ordered collection of finalized mappings.
type Table struct {
	mappings []Mapping
}

// NewTable returns a table holding mappings in the given order.
func NewTable(mappings ...Mapping) Table {
	return Table{mappings: slices.Clone(mappings)}
}

// Mappings returns the mappings in insertion order.
func (t Table) Mappings() []Mapping {
	return slices.Clone(t.mappings)
}

// Get returns the mapping for name.
func (t Table) Get(name Name) (Mapping, bool) {
	for _, m := range t.mappings {
		if m.name == name {
			return m, true
		}
	}

	return Mapping{}, false
}

// Len returns the number of mappings.
func (t Table) Len() int { return len(t.mappings) }
