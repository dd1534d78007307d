package policy

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cap-structure-generator/internal/criterion"
	"cap-structure-generator/internal/diagnostic"
	"cap-structure-generator/internal/header"
	"cap-structure-generator/internal/rules"
)

func constant(line int, prefix, literal, value string) header.Constant {
	return header.Constant{Line: line, Prefix: prefix, Literal: literal, Value: value}
}

func reduce(t *testing.T, constants ...header.Constant) *Result {
	t.Helper()

	res, err := Reduce(constants, rules.Default())
	require.NoError(t, err)
	require.NotNil(t, res)

	return res
}

func mapping(t *testing.T, res *Result, name criterion.Name) criterion.Mapping {
	t.Helper()

	m, ok := res.Table.Get(name)
	require.True(t, ok, "missing mapping %s", name)

	return m
}

func TestReduceInputDefaultBecomesStub(t *testing.T) {
	res := reduce(t, constant(1, "AUDIO_DEVICE_IN", "DEFAULT", "0x1"))

	in := mapping(t, res, criterion.InputDevicesMask)
	assert.Equal(t, []criterion.LiteralValue{{Literal: "stub", Value: 1}}, in.Entries())
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeRenamed), 1)

	for _, d := range res.Diagnostics.ByCode(diagnostic.CodeStubInjected) {
		assert.NotEqual(t, string(criterion.InputDevicesMask), d.Criterion, "stub already present, nothing to inject")
	}
}

func TestReduceInputSequentialPowersOfTwo(t *testing.T) {
	res := reduce(t,
		constant(1, "AUDIO_DEVICE_IN", "BUILTIN_MIC", "0x80000004"),
		constant(2, "AUDIO_DEVICE_IN", "AMBIENT", "0x80000002"),
		constant(3, "AUDIO_DEVICE_IN", "WIRED_HEADSET", "0x80000010"),
		constant(4, "AUDIO_DEVICE_IN", "COMMUNICATION", "0x80000001"),
		constant(5, "AUDIO_DEVICE_IN", "BACK_MIC", "0x80000080"),
		constant(6, "AUDIO_DEVICE_IN", "TELEPHONY_RX", "12"),
	)

	in := mapping(t, res, criterion.InputDevicesMask)
	assert.Equal(t, []criterion.LiteralValue{
		{Literal: "builtin_mic", Value: 1},
		{Literal: "wired_headset", Value: 2},
		{Literal: "back_mic", Value: 4},
		{Literal: "telephony_rx", Value: 8},
		{Literal: "stub", Value: 0x40000000},
	}, in.Entries(), spew.Sdump(res.Diagnostics))

	deprecated := res.Diagnostics.ByCode(diagnostic.CodeDeprecated)
	require.Len(t, deprecated, 2)
	assert.Equal(t, "ambient", deprecated[0].Literal)
	assert.Equal(t, "communication", deprecated[1].Literal)
}

func TestReduceInputAmbientDropped(t *testing.T) {
	res := reduce(t, constant(1, "AUDIO_DEVICE_IN", "AMBIENT", "0x1000000"))

	in := mapping(t, res, criterion.InputDevicesMask)
	_, ok := in.Value("ambient")
	assert.False(t, ok)
	assert.Equal(t, 1, in.Len(), "only the injected stub remains")
}

func TestReduceOutputDuplicateKeepsLatest(t *testing.T) {
	res := reduce(t,
		constant(1, "AUDIO_DEVICE_OUT", "SPEAKER", "0x2"),
		constant(2, "AUDIO_DEVICE_OUT", "EARPIECE", "0x2"),
	)

	out := mapping(t, res, criterion.OutputDevicesMask)
	assert.Equal(t, []criterion.LiteralValue{
		{Literal: "earpiece", Value: 2},
		{Literal: "stub", Value: 0x40000000},
	}, out.Entries())

	dups := res.Diagnostics.ByCode(diagnostic.CodeDuplicate)
	require.Len(t, dups, 1)
	assert.Contains(t, dups[0].Message, "speaker")
}

func TestReduceOutputMultiBitRemapped(t *testing.T) {
	res := reduce(t,
		constant(1, "AUDIO_DEVICE_OUT", "EARPIECE", "0x1"),
		constant(2, "AUDIO_DEVICE_OUT", "BLE_HEADSET", "0x20000000"),
		constant(3, "AUDIO_DEVICE_OUT", "BLE_SPEAKER", "0x20000001"),
		constant(4, "AUDIO_DEVICE_OUT", "BLE_BROADCAST", "0x20000002"),
		constant(5, "AUDIO_DEVICE_OUT", "MULTI", "3"),
		constant(6, "AUDIO_DEVICE_OUT", "DEFAULT", "0x40000000"),
	)

	out := mapping(t, res, criterion.OutputDevicesMask)

	expected := map[string]uint64{
		"earpiece":      1,
		"ble_headset":   0x20000000,
		"ble_speaker":   1 << 32,
		"ble_broadcast": 1 << 33,
		"multi":         1 << 34,
		"stub":          0x40000000,
	}
	for literal, value := range expected {
		got, ok := out.Value(literal)
		require.True(t, ok, literal)
		assert.Equal(t, value, got, literal)
	}

	seen := map[uint64]struct{}{}
	for _, e := range out.Entries() {
		assert.Equal(t, 1, bits.OnesCount64(e.Value), "%s has %#x", e.Literal, e.Value)
		assert.NotContains(t, seen, e.Value)
		seen[e.Value] = struct{}{}
	}

	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeMultiBitRemapped), 3)

	for _, d := range res.Diagnostics.ByCode(diagnostic.CodeStubInjected) {
		assert.NotEqual(t, string(criterion.OutputDevicesMask), d.Criterion, "default already renamed to stub")
	}
}

func TestReduceOutputRemapExhausted(t *testing.T) {
	var constants []header.Constant
	for i := 0; i < 33; i++ {
		constants = append(constants, constant(i+1, "AUDIO_DEVICE_OUT", fmt.Sprintf("COMBO_%d", i), "0x3"))
	}

	res := reduce(t, constants...)

	out := mapping(t, res, criterion.OutputDevicesMask)
	assert.Equal(t, 33, out.Len(), "32 remapped literals plus the stub")

	_, ok := out.Value("combo_32")
	assert.False(t, ok)

	top, ok := out.Value("combo_31")
	require.True(t, ok)
	assert.Equal(t, uint64(1)<<63, top)

	require.Len(t, res.Diagnostics.ByCode(diagnostic.CodeBitSpaceExhausted), 1)
}

func TestReduceVolumeVerbatim(t *testing.T) {
	res := reduce(t,
		constant(1, "AUDIO_STREAM", "VOICE_CALL", "0"),
		constant(2, "AUDIO_STREAM", "MUSIC", "3"),
		constant(3, "AUDIO_STREAM", "PATCH", "0xE"),
	)

	vol := mapping(t, res, criterion.VolumeProfileType)
	assert.Equal(t, []criterion.LiteralValue{
		{Literal: "voice_call", Value: 0},
		{Literal: "music", Value: 3},
		{Literal: "patch", Value: 14},
	}, vol.Entries())
}

func TestReduceInjectsStubs(t *testing.T) {
	res := reduce(t)

	require.Equal(t, 3, res.Table.Len())

	vol := mapping(t, res, criterion.VolumeProfileType)
	assert.Equal(t, 0, vol.Len(), "volume types get no stub")

	for _, name := range []criterion.Name{criterion.OutputDevicesMask, criterion.InputDevicesMask} {
		v, ok := mapping(t, res, name).Value("stub")
		require.True(t, ok)
		assert.Equal(t, uint64(0x40000000), v)
	}

	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeStubInjected), 2)
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeSummary), 3)
}

func TestReduceInjectedStubEvictsClash(t *testing.T) {
	res := reduce(t, constant(1, "AUDIO_DEVICE_OUT", "PROXY", "0x40000000"))

	out := mapping(t, res, criterion.OutputDevicesMask)
	assert.Equal(t, []criterion.LiteralValue{{Literal: "stub", Value: 0x40000000}}, out.Entries())
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeDuplicate), 1)
}

func TestReduceValueParseError(t *testing.T) {
	rs := rules.Default()

	tests := []struct {
		name  string
		value string
	}{
		{name: "hex digits missing", value: "0x"},
		{name: "not a number", value: "abc"},
		{name: "too wide", value: "0x10000000000000000"},
		{name: "negative", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Reduce([]header.Constant{
				constant(1, "AUDIO_STREAM", "MUSIC", "3"),
				constant(2, "AUDIO_DEVICE_IN", "DEFAULT", "0x1"),
				constant(9, "AUDIO_DEVICE_IN", "AMBIENT", tt.value),
			}, rs)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrValueParse)

			require.NotNil(t, res)
			assert.Zero(t, res.Table.Len())
			assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeRenamed), 1, "decisions before the failure are kept")
			assert.Empty(t, res.Diagnostics.ByCode(diagnostic.CodeSummary))

			var vpe *ValueParseError
			require.ErrorAs(t, err, &vpe)
			assert.Equal(t, 9, vpe.Line)
			assert.Equal(t, tt.value, vpe.Text)
			assert.Contains(t, err.Error(), "AUDIO_DEVICE_IN_AMBIENT")
		})
	}
}

func TestReduceUnknownPrefix(t *testing.T) {
	res := reduce(t, constant(1, "AUDIO_SOURCE", "MIC", "1"))
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeMappingMissing), 1)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		text     string
		expected uint64
	}{
		{"0", 0},
		{"15", 15},
		{"010", 10},
		{"0x10", 16},
		{"0XfF", 255},
		{"0xffffffffffffffff", 1<<64 - 1},
	}

	for _, tt := range tests {
		v, err := ParseValue(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.expected, v, tt.text)
	}

	for _, bad := range []string{"", "0x", "x10", "1.5", "0b101"} {
		_, err := ParseValue(bad)
		assert.Error(t, err, bad)
	}
}
