// Package capture parses logic-analyzer capture tables into per-wire
// transition lists.
//
// The export format is a header line followed by comma-separated rows of
// one timestamp and one or two level columns. The parser auto-detects the
// format from the header, collapses consecutive duplicate levels and skips
// malformed rows without aborting the capture.
package capture
