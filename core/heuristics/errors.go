package heuristics

import (
	"errors"

	"inventory-sync/core/inventory"
)

var (
	// ErrUnresolved means no rule produced a value.
	ErrUnresolved = errors.New("unresolved reference")
	// ErrAmbiguous means more than one candidate matched, or the candidates disagree.
	ErrAmbiguous = errors.New("ambiguous resolution")
)

// IssueKind maps a resolver error onto the report taxonomy.
func IssueKind(err error) inventory.IssueKind {
	switch {
	case errors.Is(err, ErrAmbiguous):
		return inventory.AmbiguousResolution
	case errors.Is(err, inventory.ErrDuplicateKey):
		return inventory.DuplicateKey
	case errors.Is(err, inventory.ErrKeyDerivation):
		return inventory.KeyDerivationError
	default:
		return inventory.UnresolvedReference
	}
}
