package position

import (
	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
)

// FieldOffset is the payload index where the position field begins.
const FieldOffset = 5

// Modulus is the wrap range of the primary position counter (9 bits).
const Modulus = 512

// wrapJump is the counter jump beyond which a wrap is assumed.
const wrapJump = Modulus / 2

// Position field framing markers, as rendered in reports.
const (
	PrefixStandard = "1,7" // standard prefix, both travel directions
	PrefixShort    = "9"   // short variant, near the closed end of travel

	DelimiterNearClosed = "7,9"
	DelimiterNearOpen   = "9,9"
)

// Decoder reconstructs the position counters from the trailing payload
// field of a status message.
type Decoder struct {
	// crosstalkThreshold is the H duration, in units, above which a pair
	// is carrier crosstalk and contributes nothing to the bitstream.
	crosstalkThreshold int
}

// NewDecoder creates a position decoder with the given crosstalk cutoff.
func NewDecoder(crosstalkThreshold int) *Decoder {
	return &Decoder{crosstalkThreshold: crosstalkThreshold}
}

// Decode reconstructs the position field from a status payload's (L,H)
// pair sequence (the pairs after the message header).
//
// The field starts at payload index 5 and is framed as:
//
//	prefix  dataA  delimiter  dataB
//
// where the prefix is [1,7] or [9] in L values, the delimiter is the
// first adjacent L pair (7,9) or (9,9) after the prefix, and each data
// region is an active-low LSB-first binary waveform: every pair
// contributes L one-bits then H zero-bits. Region B is the primary
// counter; region A is the redundant check.
//
// A missing prefix or delimiter leaves the field undecoded, which is a
// valid outcome for transitional and endpoint messages, never an error.
// The second return value counts pairs discarded as carrier crosstalk.
func (d *Decoder) Decode(payloadPairs []trace.SymbolPair) (trace.PositionField, int) {
	var field trace.PositionField

	if len(payloadPairs) <= FieldOffset {
		return field, 0
	}

	pos := payloadPairs[FieldOffset:]

	// Prefix detection. Without a recognized prefix the field is not
	// framed and a delimiter hit inside it would be meaningless.
	var dataStart int

	switch {
	case len(pos) >= 2 && pos[0].L == 1 && pos[1].L == 7:
		field.Prefix = PrefixStandard
		dataStart = 2
	case pos[0].L == 9:
		field.Prefix = PrefixShort
		dataStart = 1
	default:
		return field, 0
	}

	// First adjacent delimiter pair after the prefix wins.
	delimIdx := -1

	for i := dataStart; i < len(pos)-1; i++ {
		if (pos[i].L == 7 && pos[i+1].L == 9) || (pos[i].L == 9 && pos[i+1].L == 9) {
			delimIdx = i

			if pos[i].L == 7 {
				field.Delimiter = DelimiterNearClosed
			} else {
				field.Delimiter = DelimiterNearOpen
			}

			break
		}
	}

	if delimIdx < 0 {
		return field, 0
	}

	checkValue, _, filteredA := d.decodeBits(pos[dataStart:delimIdx])
	counter, bits, filteredB := d.decodeBits(pos[delimIdx+2:])

	field.Check = checkValue
	field.Counter = counter
	field.CounterBits = bits
	field.Decoded = true

	return field, filteredA + filteredB
}

// decodeBits reconstructs one region's binary value from its (L,H) pairs.
// Pairs whose H exceeds the crosstalk threshold are dropped entirely.
// The low level is the asserted one: L one-bits then H zero-bits join the
// stream, read least-significant-bit first. An empty region decodes to 0.
func (d *Decoder) decodeBits(pairs []trace.SymbolPair) (value, bits, filtered int) {
	var v uint64

	for _, p := range pairs {
		if p.H > d.crosstalkThreshold {
			filtered++
			continue
		}

		for k := 0; k < p.L; k++ {
			if bits < 64 {
				v |= 1 << uint(bits)
			}

			bits++
		}

		bits += p.H
	}

	return int(v), bits, filtered
}

// Unwrap converts a sequence of raw mod-512 counter readings into a
// continuous absolute position. A jump of more than half the modulus
// between consecutive readings is a wrap and shifts a running offset in
// the direction opposite to the jump.
func Unwrap(counters []int) []int {
	if len(counters) == 0 {
		return nil
	}

	var (
		result = make([]int, 0, len(counters))
		offset int
		prev   = counters[0]
	)

	result = append(result, prev)

	for _, c := range counters[1:] {
		delta := c - prev

		switch {
		case delta < -wrapJump:
			offset += Modulus
		case delta > wrapJump:
			offset -= Modulus
		}

		result = append(result, c+offset)
		prev = c
	}

	return result
}

// CheckOffsets collects the observed Check-Counter differences per
// delimiter phase. The offset is believed constant within one phase but
// the governing rule is not validated, so it is reported, never enforced.
func CheckOffsets(fields []trace.PositionField) map[string][]int {
	offsets := make(map[string][]int)

	for _, f := range fields {
		if !f.Decoded {
			continue
		}

		offsets[f.Delimiter] = append(offsets[f.Delimiter], f.Check-f.Counter)
	}

	return offsets
}
