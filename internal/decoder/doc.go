// Package decoder implements the signal-level half of the pipeline: burst
// segmentation, burst classification and PWM symbol quantization.
//
// A burst is a contiguous run of transitions bounded by idle gaps longer
// than the configured threshold. Data bursts quantize into symbol
// sequences at ~26us per unit; carrier tone blocks are recognized by their
// uniform low durations and counted but not decoded. UnitStats accumulates
// pulse-width measurements to verify the base unit against new captures.
package decoder
