package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/oshokin/doorlink-analyzer/internal/analysis"
	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
	"github.com/oshokin/doorlink-analyzer/internal/position"
)

// CaptureInput bundles one analyzed capture with its manifest metadata.
type CaptureInput struct {
	// Name is the capture filename.
	Name string
	// GroupName is the manifest group title.
	GroupName string
	// Description is the manifest description, empty for unlisted files.
	Description string
	// Result is the analysis of the capture.
	Result *analysis.Result
}

// Renderer writes analysis reports as plain text. All output goes to the
// single writer given at construction; methods return the first write
// error encountered.
type Renderer struct {
	w   io.Writer
	raw bool
	err error
}

// NewRenderer creates a renderer. In raw mode the timeline prints the
// uninterpreted symbol sequences instead of decoded annotations.
func NewRenderer(w io.Writer, raw bool) *Renderer {
	return &Renderer{w: w, raw: raw}
}

// printf writes formatted output, keeping the first error sticky.
func (r *Renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}

	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// Capture renders the full analysis report of one capture: the summary
// line, the message timeline, the state-change history and the position
// counter reconstruction.
func (r *Renderer) Capture(in CaptureInput) error {
	res := in.Result

	r.printf("=== %s — %s ===\n", in.Name, in.GroupName)

	if in.Description != "" {
		r.printf("%s\n", in.Description)
	}

	r.printf("Duration: %.3f s | columns: %d | messages: %d (%s: %d, %s: %d) | carrier blocks: %d\n",
		res.Duration, res.Columns, len(res.Messages),
		trace.WireReceiver.Label(), res.WireCounts[trace.WireReceiver],
		trace.WireOpener.Label(), res.WireCounts[trace.WireOpener],
		res.CarrierBlocks)

	if res.SkippedRows > 0 {
		r.printf("Skipped %d malformed capture rows\n", res.SkippedRows)
	}

	if res.FilteredPairs > 0 {
		r.printf("Filtered %d crosstalk pairs from position fields\n", res.FilteredPairs)
	}

	r.printf("\n")
	r.timeline(res)
	r.stateChanges(res)
	r.positionSummary(res)
	r.printf("\n")

	return r.err
}

// timeline prints every message in timestamp order. Status messages whose
// door or light state differs from the previous snapshot are marked.
func (r *Renderer) timeline(res *analysis.Result) {
	if r.err != nil {
		return
	}

	tw := tabwriter.NewWriter(r.w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  TIME(s)\tWIRE\tMESSAGE\t\tINFO")

	var prev *trace.DecodedStatus

	for i := range res.Messages {
		m := &res.Messages[i]

		marker := " "
		if m.IsStatus() && stateChanged(prev, m.Status) {
			marker = "*"
		}

		fmt.Fprintf(tw, "  %.6f\t%s\t%s\t%s\t%s\n",
			m.Time, m.Wire.Label(), m.Name, marker, r.annotate(m))

		if m.IsStatus() {
			prev = m.Status
		}
	}

	if err := tw.Flush(); err != nil && r.err == nil {
		r.err = err
	}
}

// annotate renders the per-message info column.
func (r *Renderer) annotate(m *trace.Message) string {
	if r.raw {
		return symbolString(m.Symbols)
	}

	if !m.IsStatus() {
		return m.Description
	}

	st := m.Status
	parts := []string{"door=" + st.Door}

	if st.SubState != "" {
		parts = append(parts, "sub="+st.SubState)
	}

	if st.Light != "" {
		parts = append(parts, "light="+st.Light)
	}

	if st.Position.Decoded {
		parts = append(parts, fmt.Sprintf("pos=%d", st.Position.Counter))
	}

	return strings.Join(parts, " ")
}

// stateChanges prints the door/light transition history of the capture.
func (r *Renderer) stateChanges(res *analysis.Result) {
	statuses := res.StatusMessages()
	if len(statuses) == 0 {
		return
	}

	r.printf("\nState changes:\n")

	var prev *trace.DecodedStatus

	for i := range statuses {
		m := &statuses[i]
		if !stateChanged(prev, m.Status) {
			prev = m.Status
			continue
		}

		line := m.Status.Door
		if m.Status.DoorDescription != "" {
			line += " (" + m.Status.DoorDescription + ")"
		}

		if m.Status.Light != "" {
			line += " light=" + m.Status.Light
		}

		r.printf("  %.6f  %s\n", m.Time, line)
		prev = m.Status
	}
}

// positionSummary prints the reconstructed position counters, their
// unwrapped travel and the observed check offsets.
func (r *Renderer) positionSummary(res *analysis.Result) {
	counters := res.PositionCounters()
	if len(counters) == 0 {
		return
	}

	unwrapped := position.Unwrap(counters)

	min, max := unwrapped[0], unwrapped[0]
	for _, v := range unwrapped[1:] {
		if v < min {
			min = v
		}

		if v > max {
			max = v
		}
	}

	r.printf("\nPosition counters (%d decoded):\n", len(counters))
	r.printf("  raw:       %s\n", intString(counters))
	r.printf("  unwrapped: %s\n", intString(unwrapped))
	r.printf("  travel:    min %d, max %d, span %d\n", min, max, max-min)

	var fields []trace.PositionField
	for _, m := range res.StatusMessages() {
		fields = append(fields, m.Status.Position)
	}

	offsets := position.CheckOffsets(fields)
	for _, delim := range []string{position.DelimiterNearClosed, position.DelimiterNearOpen} {
		if vals, ok := offsets[delim]; ok {
			r.printf("  check offsets (%s): %s\n", delim, intString(vals))
		}
	}
}

// stateChanged reports whether the door or light state differs between
// two consecutive snapshots. The first snapshot always counts as a change.
func stateChanged(prev, cur *trace.DecodedStatus) bool {
	if cur == nil {
		return false
	}

	if prev == nil {
		return true
	}

	return prev.Door != cur.Door || prev.Light != cur.Light
}

// symbolString renders a symbol sequence as comma-separated values.
func symbolString(symbols []int) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = fmt.Sprintf("%d", s)
	}

	return strings.Join(parts, ",")
}

// intString renders an int slice as a space-separated list.
func intString(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}

	return strings.Join(parts, " ")
}
