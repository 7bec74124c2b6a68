// Package catalog holds the message classification catalogs: per-wire
// tables of exact-match sequences and ordered header prefixes mapping
// symbol sequences to semantic names and categories.
//
// The catalogs are configuration data, not derived knowledge: a default
// document with the reverse-engineered protocol patterns is embedded in
// the binary, and a YAML file can override it as protocol knowledge
// grows. Prefix order is significant, so prefixes are an ordered list,
// never a map.
package catalog
