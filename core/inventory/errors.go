package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned by Insert when the key already exists in the bucket.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrKeyDerivation is returned when a record lacks the identity fields of its key.
	ErrKeyDerivation = errors.New("key derivation failed")
	// ErrNotFound is returned by Replace for unknown keys.
	ErrNotFound = errors.New("not found")
)

// IssueKind classifies a recovered problem surfaced in the run report.
type IssueKind string

const (
	KeyDerivationError  IssueKind = "key_derivation_error"
	AmbiguousResolution IssueKind = "ambiguous_resolution"
	UnresolvedReference IssueKind = "unresolved_reference"
	TargetRejected      IssueKind = "target_rejected"
	DuplicateKey        IssueKind = "duplicate_key"
)

// Issue is a problem that was recovered at the point of occurrence.
type Issue struct {
	// Kind is the error class.
	Kind IssueKind `json:"kind"`
	// Type is the entity type involved.
	Type Type `json:"type"`
	// Key is the natural key when known, otherwise a best-effort identifier.
	Key string `json:"key"`
	// Reason is a human readable explanation.
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s %q: %s", i.Kind, i.Type, i.Key, i.Reason)
}

// NewIssue builds an Issue.
func NewIssue(kind IssueKind, t Type, key, reason string) Issue {
	return Issue{Kind: kind, Type: t, Key: key, Reason: reason}
}

// IssueFromError classifies an Insert error. ident names the record when no key could be derived.
func IssueFromError(t Type, ident string, err error) Issue {
	switch {
	case errors.Is(err, ErrDuplicateKey):
		return NewIssue(DuplicateKey, t, ident, err.Error())
	case errors.Is(err, ErrKeyDerivation):
		return NewIssue(KeyDerivationError, t, ident, err.Error())
	default:
		return NewIssue(UnresolvedReference, t, ident, err.Error())
	}
}

func missing(t Type, fields ...string) error {
	return fmt.Errorf("%w: %s requires %v", ErrKeyDerivation, t, fields)
}
