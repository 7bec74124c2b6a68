package decoder

import (
	"math"

	"github.com/oshokin/doorlink-analyzer/internal/config"
	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
)

// Decoder converts raw transition lists into bursts and quantized symbols
// using the physical-layer parameters from the configuration. All methods
// are pure functions over their inputs.
type Decoder struct {
	// unitMicros is the quantization step in microseconds.
	unitMicros float64
	// gapSeconds is the minimum idle gap separating two bursts.
	gapSeconds float64
	// minTransitions is the noise cutoff for burst classification.
	minTransitions int
	// carrierMinTransitions is the size cutoff for carrier tone blocks.
	carrierMinTransitions int
	// carrierSpreadMicros is the low-duration spread cutoff for carrier blocks.
	carrierSpreadMicros float64
}

// New creates a decoder from the analyzer configuration.
func New(cfg *config.Config) *Decoder {
	return &Decoder{
		unitMicros:            cfg.UnitMicros,
		gapSeconds:            cfg.BurstGap.Seconds(),
		minTransitions:        cfg.MinBurstTransitions,
		carrierMinTransitions: cfg.CarrierMinTransitions,
		carrierSpreadMicros:   cfg.CarrierSpreadMicros,
	}
}

// Pulse is one level hold between two transitions.
type Pulse struct {
	// Level is the logic level held for the duration.
	Level int
	// Micros is the hold duration in microseconds.
	Micros float64
}

// Pulses extracts (level, duration) pairs from a burst's transitions.
// A burst of n transitions yields n-1 pulses; the level after the final
// transition has no bounded duration and is dropped.
func Pulses(burst []trace.Transition) []Pulse {
	if len(burst) < 2 {
		return nil
	}

	pulses := make([]Pulse, 0, len(burst)-1)
	for i := 1; i < len(burst); i++ {
		pulses = append(pulses, Pulse{
			Level:  burst[i-1].Level,
			Micros: (burst[i].Time - burst[i-1].Time) * 1e6,
		})
	}

	return pulses
}

// Segment splits a chronological transition list into bursts separated by
// idle gaps exceeding the configured threshold. Fewer than two transitions
// yield no bursts.
func (d *Decoder) Segment(transitions []trace.Transition) [][]trace.Transition {
	if len(transitions) < 2 {
		return nil
	}

	var (
		bursts  [][]trace.Transition
		current = []trace.Transition{transitions[0]}
	)

	for i := 1; i < len(transitions); i++ {
		if transitions[i].Time-transitions[i-1].Time > d.gapSeconds {
			bursts = append(bursts, current)
			current = nil
		}

		current = append(current, transitions[i])
	}

	if len(current) > 0 {
		bursts = append(bursts, current)
	}

	return bursts
}

// Classify tags a burst as data, carrier or short.
//
// Short bursts are noise glitches. A carrier block is a long burst whose
// low durations are nearly uniform (a fixed-frequency tone); true data has
// variable low durations, so a spread above the carrier cutoff always
// means data regardless of length.
func (d *Decoder) Classify(burst []trace.Transition) trace.BurstKind {
	if len(burst) < d.minTransitions {
		return trace.BurstShort
	}

	var (
		low      = lowDurations(Pulses(burst))
		min, max = math.Inf(1), math.Inf(-1)
	)

	if len(low) == 0 {
		return trace.BurstShort
	}

	for _, v := range low {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	if max-min > d.carrierSpreadMicros {
		return trace.BurstData
	}

	if len(burst) > d.carrierMinTransitions {
		return trace.BurstCarrier
	}

	return trace.BurstData
}

// Quantize converts a data burst into the L-only symbol sequence: each
// low duration rounded to the nearest multiple of the base unit. The raw
// microsecond durations are returned alongside for calibration statistics.
// No symbol value is clamped or validated here; the classifier owns validity.
func (d *Decoder) Quantize(burst []trace.Transition) (symbols []int, lowMicros []float64) {
	lowMicros = lowDurations(Pulses(burst))

	symbols = make([]int, len(lowMicros))
	for i, us := range lowMicros {
		symbols[i] = int(math.Round(us / d.unitMicros))
	}

	return symbols, lowMicros
}

// Pairs converts a data burst into (L,H) symbol pairs. Every segment is
// quantized to units; each low segment pairs with the immediately
// following high segment, and H is 0 when the burst ends on a low.
func (d *Decoder) Pairs(burst []trace.Transition) []trace.SymbolPair {
	var (
		pulses = Pulses(burst)
		units  = make([]int, len(pulses))
	)

	for i, p := range pulses {
		units[i] = int(math.Round(p.Micros / d.unitMicros))
	}

	var pairs []trace.SymbolPair

	for j := 0; j < len(pulses); {
		if pulses[j].Level != 0 {
			j++
			continue
		}

		pair := trace.SymbolPair{L: units[j]}
		if j+1 < len(pulses) && pulses[j+1].Level == 1 {
			pair.H = units[j+1]
		}

		pairs = append(pairs, pair)

		if pair.H > 0 {
			j += 2
		} else {
			j++
		}
	}

	return pairs
}

// lowDurations filters the low-level hold durations from a pulse list.
func lowDurations(pulses []Pulse) []float64 {
	var low []float64
	for _, p := range pulses {
		if p.Level == 0 {
			low = append(low, p.Micros)
		}
	}

	return low
}
