// Package status decodes the payload of the status message type into an
// operational-state snapshot: door/motor state, motion sub-state and
// work-light state.
//
// The state tables are fixed protocol knowledge initialized once at
// startup; decoding is a pure lookup that never fails. Payload values
// missing from a table surface as literal UNKNOWN(...) tags so nothing
// is silently dropped.
package status
