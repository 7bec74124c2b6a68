package position

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
)

// statusPayload prepends five filler pairs so the position field starts
// at the fixed payload offset.
func statusPayload(field ...trace.SymbolPair) []trace.SymbolPair {
	filler := []trace.SymbolPair{
		{L: 2, H: 1}, {L: 6, H: 1}, {L: 4, H: 1}, {L: 2, H: 1}, {L: 1, H: 1},
	}

	return append(filler, field...)
}

// TestDecodeStandardPrefix checks the [1,7] prefix with a (9,9) delimiter.
func TestDecodeStandardPrefix(t *testing.T) {
	t.Parallel()

	d := NewDecoder(10)

	// prefix [1,7], region A = (2,1): bits 1,1,0 -> 3,
	// delimiter (9,9), region B = (1,2): bits 1,0,0 -> 1.
	payload := statusPayload(
		trace.SymbolPair{L: 1, H: 1},
		trace.SymbolPair{L: 7, H: 1},
		trace.SymbolPair{L: 2, H: 1},
		trace.SymbolPair{L: 9, H: 1},
		trace.SymbolPair{L: 9, H: 1},
		trace.SymbolPair{L: 1, H: 2},
	)

	field, filtered := d.Decode(payload)
	require.True(t, field.Decoded)
	require.Equal(t, PrefixStandard, field.Prefix)
	require.Equal(t, DelimiterNearOpen, field.Delimiter)
	require.Equal(t, 3, field.Check)
	require.Equal(t, 1, field.Counter)
	require.Equal(t, 3, field.CounterBits)
	require.Zero(t, filtered)
}

// TestDecodeShortPrefixEmptyRegionA covers a delimiter immediately after
// the prefix: region A is empty and decodes to 0.
func TestDecodeShortPrefixEmptyRegionA(t *testing.T) {
	t.Parallel()

	d := NewDecoder(10)

	// prefix [9], delimiter (7,9), region B = (3,1),(1,0):
	// bits 1,1,1,0,1 -> 0b10111 = 23.
	payload := statusPayload(
		trace.SymbolPair{L: 9, H: 1},
		trace.SymbolPair{L: 7, H: 1},
		trace.SymbolPair{L: 9, H: 1},
		trace.SymbolPair{L: 3, H: 1},
		trace.SymbolPair{L: 1, H: 0},
	)

	field, _ := d.Decode(payload)
	require.True(t, field.Decoded)
	require.Equal(t, PrefixShort, field.Prefix)
	require.Equal(t, DelimiterNearClosed, field.Delimiter)
	require.Zero(t, field.Check)
	require.Equal(t, 23, field.Counter)
}

// TestDecodeDelimiterAtFieldStart covers the case where the delimiter
// directly follows the standard prefix, leaving region A empty.
func TestDecodeDelimiterAtFieldStart(t *testing.T) {
	t.Parallel()

	d := NewDecoder(10)

	// [1,7] prefix consumed, then (9,9) delimiter at region index 0:
	// region A empty -> 0, region B = remaining pairs.
	payload := statusPayload(
		trace.SymbolPair{L: 1, H: 7},
		trace.SymbolPair{L: 7, H: 1},
		trace.SymbolPair{L: 9, H: 1},
		trace.SymbolPair{L: 9, H: 1},
		trace.SymbolPair{L: 2, H: 1},
	)

	field, _ := d.Decode(payload)
	require.True(t, field.Decoded)
	require.Zero(t, field.Check)
	require.Equal(t, 3, field.Counter) // bits 1,1,0
}

// TestDecodeMissingPrefixStops ensures an unframed field stays undecoded.
func TestDecodeMissingPrefixStops(t *testing.T) {
	t.Parallel()

	d := NewDecoder(10)

	payload := statusPayload(
		trace.SymbolPair{L: 2, H: 1},
		trace.SymbolPair{L: 7, H: 1},
		trace.SymbolPair{L: 9, H: 1},
	)

	field, _ := d.Decode(payload)
	require.False(t, field.Decoded)
	require.Empty(t, field.Prefix)
	require.Empty(t, field.Delimiter)
}

// TestDecodeMissingDelimiter leaves the prefix recorded but the counters
// undefined, which is valid for transitional messages.
func TestDecodeMissingDelimiter(t *testing.T) {
	t.Parallel()

	d := NewDecoder(10)

	payload := statusPayload(
		trace.SymbolPair{L: 1, H: 1},
		trace.SymbolPair{L: 7, H: 1},
		trace.SymbolPair{L: 2, H: 1},
		trace.SymbolPair{L: 3, H: 1},
	)

	field, _ := d.Decode(payload)
	require.False(t, field.Decoded)
	require.Equal(t, PrefixStandard, field.Prefix)
	require.Empty(t, field.Delimiter)
}

// TestDecodeShortField covers payloads that end before the field offset.
func TestDecodeShortField(t *testing.T) {
	t.Parallel()

	d := NewDecoder(10)

	field, filtered := d.Decode([]trace.SymbolPair{{L: 2, H: 1}, {L: 6, H: 1}})
	require.False(t, field.Decoded)
	require.Zero(t, filtered)
}

// TestDecodeCrosstalkFiltered verifies that pairs with large H are
// dropped; a region of nothing but crosstalk decodes to 0.
func TestDecodeCrosstalkFiltered(t *testing.T) {
	t.Parallel()

	d := NewDecoder(10)

	payload := statusPayload(
		trace.SymbolPair{L: 9, H: 1},
		trace.SymbolPair{L: 7, H: 1},
		trace.SymbolPair{L: 9, H: 1},
		trace.SymbolPair{L: 3, H: 40}, // carrier bleed
		trace.SymbolPair{L: 5, H: 87}, // carrier bleed
	)

	field, filtered := d.Decode(payload)
	require.True(t, field.Decoded)
	require.Zero(t, field.Counter)
	require.Zero(t, field.CounterBits)
	require.Equal(t, 2, filtered)
}

// TestDecodeFirstDelimiterWins ensures the scan stops at the first
// adjacent delimiter pair even when a later one exists.
func TestDecodeFirstDelimiterWins(t *testing.T) {
	t.Parallel()

	d := NewDecoder(10)

	payload := statusPayload(
		trace.SymbolPair{L: 9, H: 1},
		trace.SymbolPair{L: 7, H: 1},
		trace.SymbolPair{L: 9, H: 1},
		trace.SymbolPair{L: 9, H: 1},
		trace.SymbolPair{L: 9, H: 1},
		trace.SymbolPair{L: 1, H: 1},
	)

	field, _ := d.Decode(payload)
	require.Equal(t, DelimiterNearClosed, field.Delimiter)
	// Region B = (9,1),(9,1),(1,1): 9 ones, a zero, 9 ones, a zero, 1 one.
	require.Equal(t, 21, field.CounterBits)
}

// TestUnwrap checks wrap correction in both travel directions.
func TestUnwrap(t *testing.T) {
	t.Parallel()

	require.Nil(t, Unwrap(nil))

	// Opening: counter climbs and wraps 511 -> 3.
	got := Unwrap([]int{480, 500, 3, 20})
	require.Equal(t, []int{480, 500, 515, 532}, got)

	// Closing: counter falls and wraps 5 -> 498.
	got = Unwrap([]int{30, 5, 498, 470})
	require.Equal(t, []int{30, 5, -14, -42}, got)

	// Small jumps are preserved untouched.
	got = Unwrap([]int{100, 130, 160})
	require.Equal(t, []int{100, 130, 160}, got)
}

// TestCheckOffsets groups observed A-B differences by delimiter phase.
func TestCheckOffsets(t *testing.T) {
	t.Parallel()

	fields := []trace.PositionField{
		{Decoded: true, Delimiter: DelimiterNearClosed, Check: 110, Counter: 100},
		{Decoded: true, Delimiter: DelimiterNearClosed, Check: 130, Counter: 120},
		{Decoded: true, Delimiter: DelimiterNearOpen, Check: 300, Counter: 260},
		{Decoded: false},
	}

	offsets := CheckOffsets(fields)
	require.Equal(t, []int{10, 10}, offsets[DelimiterNearClosed])
	require.Equal(t, []int{40}, offsets[DelimiterNearOpen])
	require.Len(t, offsets, 2)
}
