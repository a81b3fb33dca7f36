// Package device42 builds the source inventory snapshot from Device42.
//
// Records are read through a RecordSource, either the live appliance (APISource) or
// an export in object storage (ExportSource), and mapped into inventory entities by
// the Loader. Records that cannot be mapped are reported as issues and skipped.
package device42
