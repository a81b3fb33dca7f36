// Package heuristics turns loosely structured Device42 records into the values the
// inventory needs: the site of a device, its primary IP, the VLANs of a port, its
// platform facets, role and statuses.
//
// Every resolver either returns a value or an error wrapping ErrUnresolved or
// ErrAmbiguous. Callers convert those into report issues with IssueKind. The only
// substitutions made silently are the configured Defaults.
package heuristics
