// Package analyzer implements the analyze and raw commands: it decodes
// the selected captures and renders one report per capture.
package analyzer
