package reconcile

import (
	"context"

	"inventory-sync/core/inventory"
)

// Loader builds a snapshot of one side of the sync.
// Records that cannot be mapped are returned as issues; the error is reserved for
// transport failures that abort the run.
type Loader interface {
	Load(ctx context.Context) (*inventory.Snapshot, []inventory.Issue, error)
}

// Mutator applies operations to the target inventory.
type Mutator interface {
	// Create stores e and returns its row id.
	Create(ctx context.Context, e inventory.Entity) (uint, error)

	// Update writes the changed fields of the row with the given id.
	Update(ctx context.Context, t inventory.Type, id uint, changes []Change) error

	// Delete removes the row with the given id.
	Delete(ctx context.Context, t inventory.Type, id uint) error
}
