package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"inventory-sync/core/inventory"
	"inventory-sync/core/reconcile"
	invsync "inventory-sync/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunSync bool
	yesConfirm bool
	deleteSync bool
	sourceKind string
)

// maxIssueLog caps the issues and failures printed per list.
const maxIssueLog = 10

// syncCmd runs one reconciliation from Device42 into the target inventory.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the Device42 inventory into the target",
	Long: `Loads the Device42 inventory and the target inventory, computes the
ordered plan of creates, updates and deletes and applies it.

Deletions only happen with reconcile.delete_on_sync or --delete.

Examples:
  # Show the plan without touching the target
  inventory-sync sync --dry-run

  # Apply with interactive confirmation
  inventory-sync sync

  # Apply from the JSON/YAML exports in the bucket and allow deletions, non-interactive
  inventory-sync sync --source export --delete --yes`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Compute and report the plan without applying it")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Apply without the interactive confirmation")
	syncCmd.Flags().BoolVar(&deleteSync, "delete", false, "Delete target entities missing from Device42 for this run")
	syncCmd.Flags().StringVar(&sourceKind, "source", "", "Device42 source: api or export (default from device42.source)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := wire(ctx, sourceKind)
	if err != nil {
		return err
	}
	defer a.logger.Sync()
	l := a.logger

	opts := invsync.RunOptions{DryRun: dryRunSync, Delete: deleteSync}

	var report *reconcile.Report
	if dryRunSync {
		report, err = a.sync.Run(ctx, opts)
	} else {
		l.Info("Computing plan...")
		preview, planErr := a.sync.Plan(ctx, deleteSync)
		if planErr != nil {
			return fmt.Errorf("plan failed: %w", planErr)
		}
		printPlan(l, preview)

		// Suppressed deletes are counted in Total but never applied.
		pending := preview.Plan.Summary.Total - preview.Plan.Summary.Suppressed
		if pending == 0 {
			l.Info("Target is already in sync")
			return nil
		}
		if !confirmApply(pending) {
			l.Warn("Sync cancelled by user")
			return nil
		}
		opts.Confirmed = true
		report, err = a.sync.Apply(ctx, preview, opts)
	}
	if report != nil {
		printReport(l, report)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("sync cancelled: %w", err)
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	if n := report.Failed(); n > 0 {
		return fmt.Errorf("sync finished with %d failed operations", n)
	}
	return nil
}

func printPlan(l *zap.Logger, result *invsync.PlanResult) {
	s := result.Plan.Summary
	l.Info("Plan",
		zap.Int("total_operations", s.Total),
		zap.Int("suppressed_deletes", s.Suppressed),
		zap.Int("issues", len(result.Issues)),
	)
	for _, t := range inventory.Order {
		ts, ok := s.Types[t]
		if !ok {
			continue
		}
		l.Info("Planned", zap.String("type", string(t)),
			zap.Int("create", ts.Create), zap.Int("update", ts.Update), zap.Int("delete", ts.Delete))
	}
	logIssues(l, result.Issues)
}

func printReport(l *zap.Logger, report *reconcile.Report) {
	l.Info("Sync report",
		zap.String("run_id", report.RunID),
		zap.Bool("dry_run", report.DryRun),
		zap.Int("planned", report.Plan.Total),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed", report.Failed()),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)
	for _, t := range inventory.Order {
		c, ok := report.Counts[t]
		if !ok {
			continue
		}
		l.Info("Applied", zap.String("type", string(t)),
			zap.Int("created", c.Create.Succeeded),
			zap.Int("updated", c.Update.Succeeded),
			zap.Int("deleted", c.Delete.Succeeded),
			zap.Int("failed", c.Create.Failed+c.Update.Failed+c.Delete.Failed),
		)
	}
	for i, f := range report.Failures {
		if i == maxIssueLog {
			l.Warn("Additional failures not shown", zap.Int("count", len(report.Failures)-maxIssueLog))
			break
		}
		l.Warn("Failed operation", zap.String("op", string(f.Op)), zap.String("type", string(f.Type)),
			zap.String("key", f.Key), zap.String("error", f.Error))
	}
	logIssues(l, report.Skipped)
}

func logIssues(l *zap.Logger, issues []inventory.Issue) {
	for i, is := range issues {
		if i == maxIssueLog {
			l.Info("Additional issues not shown", zap.Int("count", len(issues)-maxIssueLog))
			return
		}
		l.Info("Skipped", zap.String("kind", string(is.Kind)), zap.String("type", string(is.Type)),
			zap.String("key", is.Key), zap.String("reason", is.Reason))
	}
}

// confirmApply prompts the user for confirmation or uses --yes flag.
func confirmApply(total int) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  Type 'yes' to apply %d operations to the target: ", total)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
