// Package captures implements access to stored logic-analyzer captures.
//
// The DirRepository enumerates and parses capture exports from a
// directory and exposes a Repository interface that the analysis
// services depend on.
package captures
