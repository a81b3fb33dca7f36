package reconcile

import (
	"reflect"
	"sort"

	"inventory-sync/core/inventory"
)

// Diff compares the source snapshot with the target snapshot and returns the ordered
// operations that make the target match the source. Neither snapshot is modified.
//
// Creates and updates are emitted type by type in dependency order. Deletes are
// deferred and emitted after them in reverse dependency order.
func Diff(source, target *inventory.Snapshot, opts Options) *Plan {
	plan := &Plan{Operations: []Operation{}}
	deletes := make(map[inventory.Type][]Operation)

	for _, t := range inventory.Order {
		var batch []Operation

		for _, key := range source.Keys(t) {
			src, _ := source.Get(t, key)
			dst, exists := target.Get(t, key)
			if !exists {
				batch = append(batch, Operation{Kind: OpCreate, Type: t, Key: key, Entity: src})
				continue
			}
			if changes := compare(src.Attrs(), dst.Attrs()); len(changes) > 0 {
				batch = append(batch, Operation{
					Kind:    OpUpdate,
					Type:    t,
					Key:     key,
					ID:      dst.RecordID(),
					Changes: changes,
					Entity:  src,
				})
			}
		}

		for _, key := range target.Keys(t) {
			if source.Has(t, key) {
				continue
			}
			dst, _ := target.Get(t, key)
			deletes[t] = append(deletes[t], Operation{
				Kind:       OpDelete,
				Type:       t,
				Key:        key,
				ID:         dst.RecordID(),
				Suppressed: !opts.DeleteOnSync,
			})
		}

		if t == inventory.TypeDevice {
			mastersFirst(batch)
		}
		plan.Operations = append(plan.Operations, batch...)
	}

	for _, t := range inventory.Reverse() {
		plan.Operations = append(plan.Operations, deletes[t]...)
	}

	for _, op := range plan.Operations {
		plan.Summary.add(op)
	}
	return plan
}

// mastersFirst moves virtual chassis masters ahead of their members, keeping key
// order otherwise.
func mastersFirst(batch []Operation) {
	sort.SliceStable(batch, func(i, j int) bool {
		return isMaster(batch[i]) && !isMaster(batch[j])
	})
}

func isMaster(op Operation) bool {
	d, ok := op.Entity.(inventory.Device)
	return ok && d.IsChassisMaster()
}

// compare returns the fields whose values differ, sorted by field name.
func compare(src, dst inventory.Attrs) []Change {
	var changes []Change
	for field, want := range src {
		have := dst[field]
		if !reflect.DeepEqual(want, have) {
			changes = append(changes, Change{Field: field, From: have, To: want})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}
