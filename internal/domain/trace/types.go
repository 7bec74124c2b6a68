package trace

import "fmt"

// Wire identifies one of the two signal lines on the receiver header.
type Wire int

const (
	// WireReceiver is CH0 (Z3): receiver -> opener, commands and keepalives.
	WireReceiver Wire = 0
	// WireOpener is CH1 (Z4): opener -> receiver, ACKs, status and beacons.
	WireOpener Wire = 1
)

// Label returns the conventional channel label for the wire.
func (w Wire) Label() string {
	if w == WireReceiver {
		return "Z3/CH0"
	}

	return "Z4/CH1"
}

// Transition is a single timestamped level change on one wire.
// Transitions are produced only by the capture loader and never mutated.
type Transition struct {
	// Time is the capture timestamp in seconds.
	Time float64
	// Level is the logic level after the transition, 0 or 1.
	Level int
}

// BurstKind classifies a burst of transitions.
type BurstKind string

const (
	// BurstData is a burst carrying PWM-encoded symbols.
	BurstData BurstKind = "data"
	// BurstCarrier is a fixed-frequency tone block with uniform low durations.
	BurstCarrier BurstKind = "carrier"
	// BurstShort is a noise glitch with too few transitions to decode.
	BurstShort BurstKind = "short"
)

// SymbolPair is one PWM symbol period: a low gap followed by a high
// separator, both quantized to base units. L carries the primary symbol
// value; H is 1 in header/status fields and carries binary data in the
// position field. H is 0 when the burst ends on a low segment.
type SymbolPair struct {
	L int
	H int
}

// Category is the semantic class of a message, derived from the catalog.
type Category string

const (
	CategoryCommand    Category = "COMMAND"
	CategoryAck        Category = "ACK"
	CategoryStatus     Category = "STATUS"
	CategoryFullStatus Category = "FULL_STATUS"
	CategoryBeacon     Category = "BEACON"
	CategoryEcho       Category = "ECHO"
	CategoryHandshake  Category = "HANDSHAKE"
	CategoryUnknown    Category = "UNKNOWN"
)

// PositionField is the decoded trailing payload field of a status message.
// The field is framed by a prefix and a two-symbol delimiter splitting it
// into two independently encoded binary regions: the check counter (region
// before the delimiter) and the primary position counter (region after).
type PositionField struct {
	// Prefix is "1,7", "9", or empty when the field has no recognized prefix.
	Prefix string
	// Delimiter is "7,9", "9,9", or empty when no delimiter was found.
	Delimiter string
	// Counter is the primary position counter (region B), defined modulo 512.
	Counter int
	// Check is the redundant verification counter (region A). Within one
	// delimiter phase, Check = Counter + an empirically observed offset.
	Check int
	// CounterBits is the number of bits contributed to the primary counter.
	CounterBits int
	// Decoded reports whether a delimiter was found and both regions decoded.
	// Undecodable fields are a valid outcome for transitional messages.
	Decoded bool
}

// DecodedStatus is the operational-state snapshot carried by a status message.
type DecodedStatus struct {
	// Door is the door/motor state tag, or an UNKNOWN(v0,v1) literal.
	Door string
	// DoorDescription is the human-readable door state.
	DoorDescription string
	// SubState is the motion sub-state tag, or a (v0,v1,v2) literal.
	SubState string
	// Light is "ON", "OFF", or empty when the light state is not encoded.
	Light string
	// RawPayload is the L-only payload symbol sequence after the header.
	RawPayload []int
	// Position is the decoded position field.
	Position PositionField
}

// Message is one classified protocol message. It is assembled once by the
// analysis pipeline and never mutated afterwards.
type Message struct {
	// Time is the timestamp of the first transition of the burst, in seconds.
	Time float64
	// Wire is the signal line the message was observed on.
	Wire Wire
	// Symbols is the full quantized L-only symbol sequence.
	Symbols []int
	// Pairs is the full (L,H) symbol pair sequence.
	Pairs []SymbolPair
	// Name is the catalog name, e.g. "CMD-A", or a per-wire unknown tag.
	Name string
	// Description is the human-readable catalog description.
	Description string
	// Category is the semantic class derived from the catalog entry.
	Category Category
	// Header is the matched header portion of Symbols.
	Header []int
	// Payload is the remainder of Symbols after the header.
	Payload []int
	// Status carries the decoded state snapshot for status messages, else nil.
	Status *DecodedStatus
}

// IsStatus reports whether the message carries a decoded state snapshot.
func (m *Message) IsStatus() bool {
	return m.Status != nil
}

// UnknownName returns the classification tag for an unrecognized message
// on the given wire, preserving the symbol count for the report layer.
func UnknownName(w Wire, symbolCount int) (name, description string) {
	ch := "CH0"
	if w == WireOpener {
		ch = "CH1"
	}

	return ch + "-UNKNOWN", fmt.Sprintf("Unrecognized %s message (%d symbols)", ch, symbolCount)
}
