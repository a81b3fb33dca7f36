// Package utils provides loose-typed conversion helpers for records decoded from
// JSON or YAML, where a field may arrive as a number, a string, or not at all.
package utils
