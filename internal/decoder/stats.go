package decoder

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
)

// UnitStats accumulates pulse-width measurements across the data bursts of
// a capture set. It verifies the nominal base unit against the hardware:
// high separators should cluster around one unit and low gaps around
// integer multiples of it.
type UnitStats struct {
	// highMeans holds the mean high-pulse width of each burst, in microseconds.
	highMeans []float64
	// lowBySymbol holds the raw low durations observed per quantized symbol value.
	lowBySymbol map[int][]float64
}

// NewUnitStats creates an empty accumulator.
func NewUnitStats() *UnitStats {
	return &UnitStats{
		lowBySymbol: make(map[int][]float64),
	}
}

// AddBurst folds one data burst into the statistics.
func (s *UnitStats) AddBurst(d *Decoder, burst []trace.Transition) {
	var high []float64
	for _, p := range Pulses(burst) {
		if p.Level == 1 {
			high = append(high, p.Micros)
		}
	}

	if len(high) > 0 {
		s.highMeans = append(s.highMeans, stat.Mean(high, nil))
	}

	symbols, lowMicros := d.Quantize(burst)
	for i, sym := range symbols {
		s.lowBySymbol[sym] = append(s.lowBySymbol[sym], lowMicros[i])
	}
}

// DurationSummary is the distribution of one measured duration class.
type DurationSummary struct {
	Mean  float64
	Min   float64
	Max   float64
	Count int
}

// SymbolSummary is the low-duration distribution for one symbol value.
type SymbolSummary struct {
	Symbol int
	DurationSummary
}

// HighSummary returns the distribution of per-burst mean high-pulse widths.
// The second return is false when no bursts were recorded.
func (s *UnitStats) HighSummary() (DurationSummary, bool) {
	if len(s.highMeans) == 0 {
		return DurationSummary{}, false
	}

	return summarize(s.highMeans), true
}

// LowSummaries returns per-symbol low-duration distributions in ascending
// symbol order.
func (s *UnitStats) LowSummaries() []SymbolSummary {
	symbols := make([]int, 0, len(s.lowBySymbol))
	for sym := range s.lowBySymbol {
		symbols = append(symbols, sym)
	}

	sort.Ints(symbols)

	result := make([]SymbolSummary, 0, len(symbols))
	for _, sym := range symbols {
		result = append(result, SymbolSummary{
			Symbol:          sym,
			DurationSummary: summarize(s.lowBySymbol[sym]),
		})
	}

	return result
}

// Merge folds another accumulator into this one.
func (s *UnitStats) Merge(other *UnitStats) {
	if other == nil {
		return
	}

	s.highMeans = append(s.highMeans, other.highMeans...)
	for sym, vals := range other.lowBySymbol {
		s.lowBySymbol[sym] = append(s.lowBySymbol[sym], vals...)
	}
}

// summarize computes the distribution of a non-empty sample.
func summarize(vals []float64) DurationSummary {
	return DurationSummary{
		Mean:  stat.Mean(vals, nil),
		Min:   floats.Min(vals),
		Max:   floats.Max(vals),
		Count: len(vals),
	}
}
