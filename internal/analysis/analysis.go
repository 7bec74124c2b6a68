package analysis

import (
	"context"
	"sort"

	"github.com/oshokin/doorlink-analyzer/internal/capture"
	"github.com/oshokin/doorlink-analyzer/internal/catalog"
	"github.com/oshokin/doorlink-analyzer/internal/config"
	"github.com/oshokin/doorlink-analyzer/internal/decoder"
	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
	"github.com/oshokin/doorlink-analyzer/internal/logger"
	"github.com/oshokin/doorlink-analyzer/internal/position"
	"github.com/oshokin/doorlink-analyzer/internal/status"
)

// Analyzer runs the full decoding pipeline over parsed captures:
// segmentation, quantization, classification and state decoding.
type Analyzer struct {
	// dec converts transitions into bursts and symbols.
	dec *decoder.Decoder
	// set classifies symbol sequences per wire.
	set *catalog.Set
	// pos reconstructs the position field of status messages.
	pos *position.Decoder
}

// Result is the complete analysis of one capture.
type Result struct {
	// Columns is the capture table format, 2 or 3.
	Columns int
	// Duration is the capture length in seconds.
	Duration float64
	// Messages holds every decoded message, sorted by timestamp.
	Messages []trace.Message
	// WireCounts is the number of messages per wire.
	WireCounts [2]int
	// CarrierBlocks counts the carrier tone bursts observed.
	CarrierBlocks int
	// FilteredPairs counts symbol pairs dropped as carrier crosstalk.
	FilteredPairs int
	// SkippedRows counts malformed capture rows dropped by the loader.
	SkippedRows int
	// Stats accumulates pulse-width measurements over the data bursts.
	Stats *decoder.UnitStats
}

// New creates an analyzer from the configuration and catalog set.
func New(cfg *config.Config, set *catalog.Set) *Analyzer {
	return &Analyzer{
		dec: decoder.New(cfg),
		set: set,
		pos: position.NewDecoder(cfg.CrosstalkThreshold),
	}
}

// Analyze decodes one parsed capture into a chronological message list.
// Decoding is total: every data burst yields a message, unknown or not.
func (a *Analyzer) Analyze(ctx context.Context, c *capture.Capture) *Result {
	result := &Result{
		Columns:     c.Columns,
		Duration:    c.Duration,
		SkippedRows: c.SkippedRows,
		Stats:       decoder.NewUnitStats(),
	}

	for _, wire := range []trace.Wire{trace.WireReceiver, trace.WireOpener} {
		for _, burst := range a.dec.Segment(c.Wires[wire]) {
			switch a.dec.Classify(burst) {
			case trace.BurstCarrier:
				result.CarrierBlocks++
			case trace.BurstData:
				msg := a.decodeBurst(ctx, wire, burst, result)
				result.Messages = append(result.Messages, msg)
				result.WireCounts[wire]++
				result.Stats.AddBurst(a.dec, burst)
			case trace.BurstShort:
				// Noise glitch, dropped.
			}
		}
	}

	sort.SliceStable(result.Messages, func(i, j int) bool {
		return result.Messages[i].Time < result.Messages[j].Time
	})

	return result
}

// decodeBurst quantizes, classifies and (for status messages) decodes a
// single data burst.
func (a *Analyzer) decodeBurst(
	ctx context.Context,
	wire trace.Wire,
	burst []trace.Transition,
	result *Result,
) trace.Message {
	symbols, _ := a.dec.Quantize(burst)
	pairs := a.dec.Pairs(burst)
	match := a.set.Classify(wire, symbols)

	msg := trace.Message{
		Time:        burst[0].Time,
		Wire:        wire,
		Symbols:     symbols,
		Pairs:       pairs,
		Name:        match.Name,
		Description: match.Description,
		Category:    match.Category,
		Header:      symbols[:match.HeaderLen],
		Payload:     symbols[match.HeaderLen:],
	}

	if !match.Known {
		logger.DebugKV(ctx, "Unclassified message",
			"wire", wire.Label(), "time", msg.Time, "symbols", symbols)
	}

	// Only the status category carries the state encoding.
	if match.Category != trace.CategoryStatus || len(symbols) <= match.HeaderLen {
		return msg
	}

	decoded := status.Decode(symbols[match.HeaderLen:])

	if len(pairs) > match.HeaderLen {
		field, filtered := a.pos.Decode(pairs[match.HeaderLen:])
		decoded.Position = field
		result.FilteredPairs += filtered

		if filtered > 0 {
			logger.DebugKV(ctx, "Crosstalk pairs filtered from position field",
				"time", msg.Time, "pairs", filtered)
		}
	}

	msg.Status = decoded

	return msg
}

// StatusMessages filters the status snapshots from a message list.
func (r *Result) StatusMessages() []trace.Message {
	var out []trace.Message

	for _, m := range r.Messages {
		if m.IsStatus() {
			out = append(out, m)
		}
	}

	return out
}

// PositionCounters extracts the decoded primary counters from the status
// messages, in timestamp order.
func (r *Result) PositionCounters() []int {
	var counters []int

	for _, m := range r.StatusMessages() {
		if m.Status.Position.Decoded {
			counters = append(counters, m.Status.Position.Counter)
		}
	}

	return counters
}
