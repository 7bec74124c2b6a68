// Package manifest maps capture filenames to the test scenarios they
// record, grouping analysis reports into ordered sections.
//
// A reference manifest for the bench capture set is embedded; a YAML
// file can replace it. Captures missing from the manifest are reported
// under an "unlisted" group rather than skipped.
package manifest
