package report

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/oshokin/doorlink-analyzer/internal/catalog"
	"github.com/oshokin/doorlink-analyzer/internal/config"
	"github.com/oshokin/doorlink-analyzer/internal/decoder"
	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
	"github.com/oshokin/doorlink-analyzer/internal/position"
	"github.com/oshokin/doorlink-analyzer/internal/status"
)

// Reference renders the protocol reference document: the physical layer
// parameters with their measured calibration, the message catalog with
// occurrence counts over the analyzed captures, the status state tables
// and the unrecognized sequences that remain.
func (r *Renderer) Reference(cfg *config.Config, set *catalog.Set, captures []CaptureInput) error {
	counts, unknowns := tally(captures)

	r.printf("=== Protocol reference ===\n\n")
	r.physicalLayer(cfg, captures)
	r.catalogSection("Receiver ("+trace.WireReceiver.Label()+")", &set.Receiver, counts)
	r.catalogSection("Opener ("+trace.WireOpener.Label()+")", &set.Opener, counts)
	r.stateTables()
	r.unknownSection(unknowns)

	return r.err
}

// unknownSeq is one distinct unrecognized symbol sequence.
type unknownSeq struct {
	wire    trace.Wire
	symbols string
	count   int
	example string // capture the sequence was first seen in
}

// tally counts message occurrences by name and collects the distinct
// unknown sequences across all captures.
func tally(captures []CaptureInput) (map[string]int, []unknownSeq) {
	var (
		counts  = make(map[string]int)
		byKey   = make(map[string]*unknownSeq)
		ordered []string
	)

	for _, in := range captures {
		for i := range in.Result.Messages {
			m := &in.Result.Messages[i]
			counts[m.Name]++

			if m.Category != trace.CategoryUnknown {
				continue
			}

			key := m.Wire.Label() + " " + symbolString(m.Symbols)
			if seq, ok := byKey[key]; ok {
				seq.count++
				continue
			}

			byKey[key] = &unknownSeq{
				wire:    m.Wire,
				symbols: symbolString(m.Symbols),
				count:   1,
				example: in.Name,
			}
			ordered = append(ordered, key)
		}
	}

	sort.Strings(ordered)

	unknowns := make([]unknownSeq, 0, len(ordered))
	for _, key := range ordered {
		unknowns = append(unknowns, *byKey[key])
	}

	return counts, unknowns
}

// physicalLayer prints the configured timing constants and the measured
// pulse-width distributions merged over all captures.
func (r *Renderer) physicalLayer(cfg *config.Config, captures []CaptureInput) {
	r.printf("Physical layer:\n")
	r.printf("  base unit:           %.1f us\n", cfg.UnitMicros)
	r.printf("  burst gap:           %s\n", cfg.BurstGap)
	r.printf("  crosstalk threshold: %d units\n", cfg.CrosstalkThreshold)

	merged := decoder.NewUnitStats()
	for _, in := range captures {
		merged.Merge(in.Result.Stats)
	}

	if high, ok := merged.HighSummary(); ok {
		r.printf("  measured high pulse: mean %.1f us (min %.1f, max %.1f, %d bursts)\n",
			high.Mean, high.Min, high.Max, high.Count)
	}

	lows := merged.LowSummaries()
	if len(lows) > 0 {
		r.printf("  measured low durations per symbol:\n")

		tw := tabwriter.NewWriter(r.w, 2, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "  SYMBOL\tMEAN(us)\tMIN\tMAX\tSAMPLES\t")

		for _, s := range lows {
			fmt.Fprintf(tw, "  %d\t%.1f\t%.1f\t%.1f\t%d\t\n",
				s.Symbol, s.Mean, s.Min, s.Max, s.Count)
		}

		r.flushTab(tw)
	}

	r.printf("\n")
}

// catalogSection prints one wire's catalog with occurrence counts.
func (r *Renderer) catalogSection(title string, cat *catalog.Catalog, counts map[string]int) {
	r.printf("%s messages:\n", title)

	tw := tabwriter.NewWriter(r.w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tCATEGORY\tSEEN\tSYMBOLS\tDESCRIPTION")

	writeEntry := func(e *catalog.Entry, prefix bool) {
		symbols := symbolString(e.Symbols)
		if prefix {
			symbols += ",..."
		}

		fmt.Fprintf(tw, "  %s\t%s\t%d\t%s\t%s\n",
			e.Name, e.Category, counts[e.Name], symbols, e.Description)
	}

	for i := range cat.Exact {
		writeEntry(&cat.Exact[i], false)
	}

	for i := range cat.Prefixes {
		writeEntry(&cat.Prefixes[i], true)
	}

	r.flushTab(tw)
	r.printf("\n")
}

// stateTables prints the status payload encoding tables and the position
// field framing.
func (r *Renderer) stateTables() {
	r.printf("Status message (header %s):\n", symbolString(status.Header))

	r.rowTable("  Door states (payload 0-1):", status.DoorStateRows())
	r.rowTable("  Sub-states (payload 2-4):", status.SubStateRows())
	r.rowTable("  Light patterns (payload 1-4, closed door only):", status.LightPatternRows())

	r.printf("  Position field (payload 5+):\n")
	r.printf("    prefixes:   [%s] [%s]\n", position.PrefixStandard, position.PrefixShort)
	r.printf("    delimiters: (%s) near closed, (%s) near open\n",
		position.DelimiterNearClosed, position.DelimiterNearOpen)
	r.printf("    counter:    LSB-first, modulo %d\n", position.Modulus)
	r.printf("\n")
}

// rowTable prints one state table.
func (r *Renderer) rowTable(title string, rows []status.TableRow) {
	r.printf("%s\n", title)

	tw := tabwriter.NewWriter(r.w, 2, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "    %s\t%s\t%s\n", symbolString(row.Symbols), row.Tag, row.Description)
	}

	r.flushTab(tw)
}

// unknownSection lists the distinct unrecognized sequences.
func (r *Renderer) unknownSection(unknowns []unknownSeq) {
	if len(unknowns) == 0 {
		r.printf("No unrecognized sequences.\n")
		return
	}

	r.printf("Unrecognized sequences:\n")

	tw := tabwriter.NewWriter(r.w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  WIRE\tSEEN\tFIRST IN\tSYMBOLS")

	for _, u := range unknowns {
		fmt.Fprintf(tw, "  %s\t%d\t%s\t%s\n", u.wire.Label(), u.count, u.example, u.symbols)
	}

	r.flushTab(tw)
}

// flushTab flushes a tabwriter, keeping the first error sticky.
func (r *Renderer) flushTab(tw *tabwriter.Writer) {
	if err := tw.Flush(); err != nil && r.err == nil {
		r.err = err
	}
}
