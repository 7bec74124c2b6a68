// Package trace contains the core domain types of the protocol trace.
//
// It defines Transition (one level change), SymbolPair (one quantized PWM
// symbol period), Message (one classified protocol message) and
// DecodedStatus (the state snapshot carried by status messages). All types
// are plain immutable values; the decoding pipeline produces them and the
// report layer consumes them.
package trace
