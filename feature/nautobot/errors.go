package nautobot

import "errors"

var (
	// ErrReferenceMissing is returned when an entity points at a row that does not exist.
	ErrReferenceMissing = errors.New("referenced entity missing")
	// ErrStillReferenced is returned when deleting a row other rows still point at.
	ErrStillReferenced = errors.New("entity still referenced")
	// ErrMasterMissing is returned for virtual chassis members whose master does not exist.
	ErrMasterMissing = errors.New("virtual chassis master missing")
	// ErrUnknownType is returned for entity types without a table.
	ErrUnknownType = errors.New("unknown entity type")
)
