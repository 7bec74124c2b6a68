package decoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/doorlink-analyzer/internal/config"
	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
)

// burstFromMicros builds a transition list starting at the given time and
// level, holding each duration (in microseconds) in turn and toggling the
// level between holds.
func burstFromMicros(start float64, firstLevel int, micros ...float64) []trace.Transition {
	var (
		burst = []trace.Transition{{Time: start, Level: firstLevel}}
		t     = start
		level = firstLevel
	)

	for _, us := range micros {
		t += us / 1e6
		level = 1 - level
		burst = append(burst, trace.Transition{Time: t, Level: level})
	}

	return burst
}

func newTestDecoder(t *testing.T) *Decoder {
	t.Helper()

	cfg := config.Default()
	require.NoError(t, config.Validate(cfg))

	return New(cfg)
}

// TestSegment verifies splitting at idle gaps above the threshold.
func TestSegment(t *testing.T) {
	t.Parallel()

	d := newTestDecoder(t)

	transitions := []trace.Transition{
		{Time: 0.000, Level: 0},
		{Time: 0.001, Level: 1},
		{Time: 0.002, Level: 0},
		// 20ms idle gap here.
		{Time: 0.022, Level: 1},
		{Time: 0.023, Level: 0},
	}

	bursts := d.Segment(transitions)
	require.Len(t, bursts, 2)
	require.Len(t, bursts[0], 3)
	require.Len(t, bursts[1], 2)

	// A 10ms gap is not above the threshold, so no split.
	bursts = d.Segment([]trace.Transition{
		{Time: 0, Level: 0},
		{Time: 0.010, Level: 1},
	})
	require.Len(t, bursts, 1)

	require.Nil(t, d.Segment(transitions[:1]))
	require.Nil(t, d.Segment(nil))
}

// TestClassify covers the short/carrier/data decision.
func TestClassify(t *testing.T) {
	t.Parallel()

	d := newTestDecoder(t)

	// Fewer than 5 transitions: noise.
	short := burstFromMicros(0, 0, 26, 26, 26)
	require.Equal(t, trace.BurstShort, d.Classify(short))

	// Long burst with uniform low durations: carrier tone block.
	var carrierDurations []float64
	for i := 0; i < 16; i++ {
		carrierDurations = append(carrierDurations, 26, 234)
	}

	carrier := burstFromMicros(0, 0, carrierDurations...)
	require.Greater(t, len(carrier), 20)
	require.Equal(t, trace.BurstCarrier, d.Classify(carrier))

	// Variable low durations: data, regardless of length.
	data := burstFromMicros(0, 0, 182, 26, 26, 26, 130, 26, 52, 26, 234, 26)
	require.Equal(t, trace.BurstData, d.Classify(data))

	// Uniform but small burst: data.
	smallUniform := burstFromMicros(0, 0, 26, 26, 26, 26, 26, 26)
	require.Equal(t, trace.BurstData, d.Classify(smallUniform))
}

// TestQuantize checks rounding of low durations into symbol units.
func TestQuantize(t *testing.T) {
	t.Parallel()

	d := newTestDecoder(t)

	// Lows of 182/26/52us with 26us separators quantize to [7,1,2].
	burst := burstFromMicros(0, 0, 182, 26, 26, 26, 52, 26)

	symbols, lowMicros := d.Quantize(burst)
	require.Equal(t, []int{7, 1, 2}, symbols)
	require.Len(t, lowMicros, 3)
	require.InDelta(t, 182, lowMicros[0], 0.01)

	// Quantization is idempotent: re-quantizing the rounded value times
	// the unit yields the same symbol.
	requant := burstFromMicros(0, 0,
		float64(symbols[0])*26, 26,
		float64(symbols[1])*26, 26,
		float64(symbols[2])*26, 26)

	again, _ := d.Quantize(requant)
	require.Equal(t, symbols, again)
}

// TestPairs checks (L,H) pairing including a trailing low without separator.
func TestPairs(t *testing.T) {
	t.Parallel()

	d := newTestDecoder(t)

	// low 26, high 182, low 52 (no trailing high).
	burst := burstFromMicros(0, 0, 26, 182, 52)

	pairs := d.Pairs(burst)
	require.Equal(t, []trace.SymbolPair{
		{L: 1, H: 7},
		{L: 2, H: 0},
	}, pairs)
}

// TestUnitStats verifies accumulation and summaries of pulse widths.
func TestUnitStats(t *testing.T) {
	t.Parallel()

	d := newTestDecoder(t)
	s := NewUnitStats()

	s.AddBurst(d, burstFromMicros(0, 0, 182, 26, 26, 26, 52, 26))
	s.AddBurst(d, burstFromMicros(1, 0, 26, 28, 52, 24))

	high, ok := s.HighSummary()
	require.True(t, ok)
	require.Equal(t, 2, high.Count)
	require.InDelta(t, 26, high.Mean, 0.01)

	lows := s.LowSummaries()
	require.NotEmpty(t, lows)
	require.Equal(t, 1, lows[0].Symbol)
	require.Equal(t, 2, lows[0].Count)

	// Merging folds samples together.
	other := NewUnitStats()
	other.AddBurst(d, burstFromMicros(2, 0, 26, 26))
	s.Merge(other)

	high, ok = s.HighSummary()
	require.True(t, ok)
	require.Equal(t, 3, high.Count)
}
