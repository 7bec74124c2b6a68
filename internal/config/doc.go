// Package config defines the analyzer settings shared by the doorlink
// binaries and provides helpers to load, validate and save them in YAML
// format.
//
// The Config type carries the physical-layer constants (PWM unit, burst
// gap, crosstalk threshold) and the paths to the catalog, manifest and
// capture directory. Every field defaults to the values measured on the
// reference hardware, so a missing settings file is not an error.
package config
