// Package report renders analysis results as plain-text documents: the
// per-capture report (summary, timeline, state changes, position travel)
// and the protocol reference compiled over a capture set.
package report
