package criterion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderSetEvictsDuplicateValue(t *testing.T) {
	b := NewBuilder(OutputDevicesMask)

	_, evicted := b.Set("speaker", 2)
	assert.False(t, evicted)

	prev, evicted := b.Set("earpiece", 2)
	require.True(t, evicted)
	assert.Equal(t, "speaker", prev)

	assert.False(t, b.Has("speaker"))
	assert.True(t, b.Has("earpiece"))
	assert.Equal(t, 1, b.Len())

	literal, ok := b.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "earpiece", literal)
}

func TestBuilderSetSameLiteral(t *testing.T) {
	b := NewBuilder(VolumeProfileType)

	b.Set("music", 3)
	_, evicted := b.Set("music", 3)
	assert.False(t, evicted, "re-setting the same pair is not a clash")

	b.Set("music", 7)
	_, ok := b.Lookup(3)
	assert.False(t, ok, "old value must be released when a literal moves")

	v, ok := b.Freeze().Value("music")
	require.True(t, ok)
	assert.Equal(t, uint64(7), v)
}

func TestFreezeOrdersByValue(t *testing.T) {
	m := NewMapping(InputDevicesMask,
		LiteralValue{"stub", 0x40000000},
		LiteralValue{"builtin_mic", 4},
		LiteralValue{"communication", 1},
		LiteralValue{"wired_headset", 16},
	)

	assert.Equal(t, []LiteralValue{
		{"communication", 1},
		{"builtin_mic", 4},
		{"wired_headset", 16},
		{"stub", 0x40000000},
	}, m.Entries())
	assert.Equal(t, "<communication:1,builtin_mic:4,wired_headset:16,stub:1073741824>", m.String())
}

func TestEntriesIsCopy(t *testing.T) {
	m := NewMapping(VolumeProfileType, LiteralValue{"voice_call", 0})

	entries := m.Entries()
	entries[0].Literal = "mutated"

	assert.Equal(t, "voice_call", m.Entries()[0].Literal)
}

func TestTableGet(t *testing.T) {
	table := NewTable(
		NewMapping(VolumeProfileType, LiteralValue{"music", 3}),
		NewMapping(OutputDevicesMask),
	)

	assert.Equal(t, 2, table.Len())

	m, ok := table.Get(VolumeProfileType)
	require.True(t, ok)
	assert.Equal(t, 1, m.Len())

	_, ok = table.Get(InputDevicesMask)
	assert.False(t, ok)
}

func TestRepresentation(t *testing.T) {
	r, err := ParseRepresentation("BitField")
	require.NoError(t, err)
	assert.Equal(t, RepresentationBitField, r)

	r, err = ParseRepresentation(" enum ")
	require.NoError(t, err)
	assert.Equal(t, RepresentationEnumeration, r)

	_, err = ParseRepresentation("matrix")
	require.Error(t, err)

	both := RepresentationBitField | RepresentationEnumeration
	assert.True(t, both.Has(RepresentationBitField))
	assert.True(t, both.Has(RepresentationEnumeration))
	assert.False(t, RepresentationBitField.Has(RepresentationEnumeration))
	assert.False(t, both.Has(RepresentationNone))
	assert.Equal(t, "bitfield|enumeration", both.String())
}
