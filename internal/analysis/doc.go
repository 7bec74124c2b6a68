// Package analysis composes the decoding stages into a single pipeline:
// burst segmentation and classification, symbol quantization, catalog
// lookup, status decoding and position reconstruction. Its Result is the
// complete chronological view of one capture that the report layer renders.
package analysis
