// Package reconcile compares two inventory snapshots and applies the difference.
//
// Diff walks the entity types in dependency order and emits a Plan: creates and
// updates parent first, then the deferred deletes child first. An update carries
// exactly the changed fields. When deletion is disabled the deletes are still
// planned but marked suppressed.
//
// Apply executes a Plan sequentially through a Mutator. Every call runs under its own
// timeout, failures are recorded in the Report and the run continues.
//
// # Usage Example
//
//	plan := reconcile.Diff(source, target, reconcile.Options{DeleteOnSync: cfg.DeleteOnSync})
//
//	report := reconcile.NewReport(runID, false)
//	err := reconcile.Apply(ctx, plan, store, report, reconcile.ApplyOptions{
//	    Confirmed:        true,
//	    OperationTimeout: cfg.OperationTimeout(),
//	})
package reconcile
