package capture

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
)

// Capture is the parsed contents of one logic-analyzer export: a
// chronological transition list per wire with duplicate levels collapsed.
type Capture struct {
	// Columns is the detected table format: 2 (single wire) or 3 (dual wire).
	Columns int
	// Wires holds the transition list per wire, indexed by trace.Wire.
	Wires [2][]trace.Transition
	// Duration is the latest timestamp observed on any wire, in seconds.
	Duration float64
	// SkippedRows counts malformed rows dropped during parsing.
	SkippedRows int
}

// Parse reads a capture table and splits it into per-wire transition lists.
//
// The first line is a header; it decides the format. A header naming both
// "Channel 0" and "Channel 1" is a 3-column dual-wire table. A header
// naming only one channel is a 2-column table whose level column belongs
// to that channel. An unrecognized header falls back to 3-column.
//
// Malformed rows (short, non-numeric) are skipped, never fatal.
func Parse(r io.Reader) (*Capture, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}

		return nil, io.ErrUnexpectedEOF
	}

	header := scanner.Text()

	var (
		cap        = &Capture{Columns: 3}
		singleWire = trace.WireReceiver
		hasCh0     = strings.Contains(header, "Channel 0")
		hasCh1     = strings.Contains(header, "Channel 1")
	)

	switch {
	case hasCh0 && hasCh1:
		cap.Columns = 3
	case hasCh0:
		cap.Columns = 2
		singleWire = trace.WireReceiver
	case hasCh1:
		cap.Columns = 2
		singleWire = trace.WireOpener
	default:
		// Headerless or unknown export, assume the dual-wire format.
		cap.Columns = 3
	}

	// prev tracks the last accepted level per wire (-1 = none yet) so
	// consecutive duplicate levels collapse into one transition.
	prev := [2]int{-1, -1}

	appendSample := func(w trace.Wire, t float64, level int) {
		if prev[w] == level {
			return
		}

		cap.Wires[w] = append(cap.Wires[w], trace.Transition{Time: t, Level: level})
		prev[w] = level

		if t > cap.Duration {
			cap.Duration = t
		}
	}

	for scanner.Scan() {
		parts := strings.Split(strings.TrimSpace(scanner.Text()), ",")
		if len(parts) < 2 {
			cap.SkippedRows++
			continue
		}

		t, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			cap.SkippedRows++
			continue
		}

		if cap.Columns == 3 {
			if len(parts) < 3 {
				cap.SkippedRows++
				continue
			}

			v0, err0 := strconv.Atoi(strings.TrimSpace(parts[1]))
			v1, err1 := strconv.Atoi(strings.TrimSpace(parts[2]))

			if err0 != nil || err1 != nil {
				cap.SkippedRows++
				continue
			}

			appendSample(trace.WireReceiver, t, v0)
			appendSample(trace.WireOpener, t, v1)

			continue
		}

		v, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			cap.SkippedRows++
			continue
		}

		appendSample(singleWire, t, v)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read capture: %w", err)
	}

	return cap, nil
}
