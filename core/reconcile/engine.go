package reconcile

import (
	"context"
	"errors"
	"fmt"

	"inventory-sync/core/inventory"
)

// ErrNotConfirmed is returned by Apply for dry runs and unconfirmed runs.
var ErrNotConfirmed = errors.New("apply requires a confirmed, non dry-run sync")

// Apply executes the plan against the mutator strictly in plan order and records the
// outcome in report. Failed operations are recorded and the run continues; they are
// never retried. Only cancellation of ctx stops the run early.
func Apply(ctx context.Context, plan *Plan, m Mutator, report *Report, opts ApplyOptions) error {
	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		return ErrNotConfirmed
	}
	report.Plan = plan.Summary

	for _, op := range plan.Operations {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("sync interrupted: %w", err)
		}

		if op.Suppressed {
			report.Skip(inventory.NewIssue(SuppressedDelete, op.Type, op.Key, "deletion disabled"))
			continue
		}

		counts := report.counts(op.Type).of(op.Kind)
		counts.Attempted++
		if err := execute(ctx, m, op, opts); err != nil {
			counts.Failed++
			report.Failures = append(report.Failures, Failure{
				Kind:  inventory.TargetRejected,
				Op:    op.Kind,
				Type:  op.Type,
				Key:   op.Key,
				Error: err.Error(),
			})
			continue
		}
		counts.Succeeded++
	}
	return nil
}

func execute(ctx context.Context, m Mutator, op Operation, opts ApplyOptions) error {
	if opts.OperationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.OperationTimeout)
		defer cancel()
	}

	var err error
	switch op.Kind {
	case OpCreate:
		_, err = m.Create(ctx, op.Entity)
	case OpUpdate:
		err = m.Update(ctx, op.Type, op.ID, op.Changes)
	case OpDelete:
		err = m.Delete(ctx, op.Type, op.ID)
	default:
		err = fmt.Errorf("unknown operation %q", op.Kind)
	}
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return err
}
