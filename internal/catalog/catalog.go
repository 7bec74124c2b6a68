package catalog

import (
	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
)

// Entry is one known message pattern: an exact symbol sequence or a
// header prefix, with its semantic name, category and description.
type Entry struct {
	// Symbols is the full sequence (exact entries) or the header prefix.
	Symbols []int `yaml:"symbols"`
	// Name is the semantic message name, e.g. "CMD-A" or "TYPE-B".
	Name string `yaml:"name"`
	// Category is the semantic class attached to matches of this entry.
	Category trace.Category `yaml:"category"`
	// Description is the human-readable explanation for reports.
	Description string `yaml:"description"`
}

// Catalog holds the known patterns for one wire. Exact entries win over
// prefixes; prefixes are tried strictly in listed order, so the slice
// ordering is part of the format specification.
type Catalog struct {
	Exact    []Entry `yaml:"exact"`
	Prefixes []Entry `yaml:"prefixes"`
}

// Set carries the per-wire catalogs. It is read-only after loading.
type Set struct {
	Receiver Catalog `yaml:"receiver"`
	Opener   Catalog `yaml:"opener"`
}

// Match is the result of classifying a symbol sequence.
type Match struct {
	// Name and Description come from the matched entry, or the unknown tag.
	Name        string
	Description string
	// Category is the matched entry's class, or CategoryUnknown.
	Category trace.Category
	// HeaderLen is the number of leading symbols covered by the match:
	// the full length for exact matches, the prefix length for prefix
	// matches, zero for unknown sequences.
	HeaderLen int
	// Known reports whether any catalog entry matched.
	Known bool
}

// wire returns the catalog serving the given wire.
func (s *Set) wire(w trace.Wire) *Catalog {
	if w == trace.WireReceiver {
		return &s.Receiver
	}

	return &s.Opener
}

// Classify matches an L-only symbol sequence against the wire's catalog.
// Exact match first; then the first listed prefix that literally prefixes
// the input; otherwise an unknown match preserving the symbol count in its
// description, so no capture data is lost to a failed lookup.
func (s *Set) Classify(w trace.Wire, symbols []int) Match {
	cat := s.wire(w)

	for _, e := range cat.Exact {
		if equalSymbols(e.Symbols, symbols) {
			return Match{
				Name:        e.Name,
				Description: e.Description,
				Category:    e.Category,
				HeaderLen:   len(symbols),
				Known:       true,
			}
		}
	}

	for _, e := range cat.Prefixes {
		if hasPrefix(symbols, e.Symbols) {
			return Match{
				Name:        e.Name,
				Description: e.Description,
				Category:    e.Category,
				HeaderLen:   len(e.Symbols),
				Known:       true,
			}
		}
	}

	name, description := trace.UnknownName(w, len(symbols))

	return Match{
		Name:        name,
		Description: description,
		Category:    trace.CategoryUnknown,
	}
}

// equalSymbols reports element-wise equality of two symbol sequences.
func equalSymbols(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// hasPrefix reports whether symbols starts with the literal prefix.
func hasPrefix(symbols, prefix []int) bool {
	if len(symbols) < len(prefix) {
		return false
	}

	return equalSymbols(symbols[:len(prefix)], prefix)
}
