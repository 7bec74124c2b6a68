// Package reference implements the reference command: it compiles the
// protocol reference document from the full capture set.
package reference
