package capture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
)

// TestParseDualWire checks 3-column parsing with duplicate-level collapsing.
func TestParseDualWire(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Time [s], Channel 0, Channel 1",
		"0.000000, 1, 1",
		"0.000100, 1, 1", // duplicate on both wires, collapsed
		"0.000200, 0, 1",
		"0.000300, 0, 0",
		"0.000400, 1, 0",
	}, "\n")

	c, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, c.Columns)
	require.Equal(t, []trace.Transition{
		{Time: 0, Level: 1},
		{Time: 0.0002, Level: 0},
		{Time: 0.0004, Level: 1},
	}, c.Wires[trace.WireReceiver])
	require.Equal(t, []trace.Transition{
		{Time: 0, Level: 1},
		{Time: 0.0003, Level: 0},
	}, c.Wires[trace.WireOpener])
	require.InDelta(t, 0.0004, c.Duration, 1e-9)
	require.Zero(t, c.SkippedRows)
}

// TestParseSingleWire checks 2-column header detection for either channel.
func TestParseSingleWire(t *testing.T) {
	t.Parallel()

	// Channel 0 only.
	c, err := Parse(strings.NewReader("Time [s], Channel 0\n0.0, 1\n0.1, 0\n"))
	require.NoError(t, err)
	require.Equal(t, 2, c.Columns)
	require.Len(t, c.Wires[trace.WireReceiver], 2)
	require.Empty(t, c.Wires[trace.WireOpener])

	// Channel 1 only: the single level column belongs to the opener wire.
	c, err = Parse(strings.NewReader("Time [s], Channel 1\n0.0, 1\n0.1, 0\n"))
	require.NoError(t, err)
	require.Equal(t, 2, c.Columns)
	require.Empty(t, c.Wires[trace.WireReceiver])
	require.Len(t, c.Wires[trace.WireOpener], 2)
}

// TestParseSkipsMalformedRows ensures bad rows are dropped, not fatal.
func TestParseSkipsMalformedRows(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Time [s], Channel 0, Channel 1",
		"garbage",
		"0.1, x, 1",
		"0.2, 1", // short row in a 3-column table
		"0.3, 0, 1",
	}, "\n")

	c, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, c.SkippedRows)
	require.Len(t, c.Wires[trace.WireReceiver], 1)
	require.Len(t, c.Wires[trace.WireOpener], 1)
}

// TestParseUnknownHeaderFallsBack verifies the 3-column fallback.
func TestParseUnknownHeaderFallsBack(t *testing.T) {
	t.Parallel()

	c, err := Parse(strings.NewReader("t,a,b\n0.0, 1, 0\n"))
	require.NoError(t, err)
	require.Equal(t, 3, c.Columns)
}

// TestParseEmptyInput returns an explicit error for an empty reader.
func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
}
