package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"inventory-sync/core/inventory"
	"inventory-sync/core/logger"
	"inventory-sync/core/reconcile"
	"inventory-sync/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNoReport is returned when no run has finished since start.
var ErrNoReport = errors.New("no sync report available")

// ErrInvalidRunID is returned for report lookups with a malformed run id.
var ErrInvalidRunID = errors.New("invalid run id")

// Target is the inventory being reconciled: it is read for the diff and mutated by apply.
type Target interface {
	reconcile.Loader
	reconcile.Mutator
}

// RunOptions controls a single run.
type RunOptions struct {
	// DryRun computes and reports the plan without applying it.
	DryRun bool `json:"dry_run"`
	// Confirmed must be set for changes to be applied.
	Confirmed bool `json:"confirmed"`
	// Delete enables deletions for this run even when delete_on_sync is off.
	Delete bool `json:"delete"`
}

func (o RunOptions) key() string {
	return fmt.Sprintf("run:dry=%t:confirmed=%t:delete=%t", o.DryRun, o.Confirmed, o.Delete)
}

// Settings holds the archive and reconcile settings of the service.
type Settings struct {
	Bucket       string
	ReportPrefix string
	// Retention is the number of archived reports kept; 0 keeps all.
	Retention int
	Reconcile reconcile.Config
}

// PlanResult is the output of a load-and-diff pass.
type PlanResult struct {
	Plan   *reconcile.Plan   `json:"plan"`
	Issues []inventory.Issue `json:"issues"`
}

// ArchivedReport describes one report object in storage.
type ArchivedReport struct {
	RunID        string    `json:"run_id"`
	Object       string    `json:"object"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Service runs the load, diff and apply pipeline.
type Service struct {
	source   reconcile.Loader
	target   Target
	client   storage.Client
	settings Settings
	logger   *zap.Logger

	group singleflight.Group
	// one slot: held for the whole of a run
	gate chan struct{}
	last atomic.Pointer[reconcile.Report]
}

// NewService creates a new sync service.
func NewService(source reconcile.Loader, target Target, client storage.Client, settings Settings, logger *zap.Logger) *Service {
	return &Service{
		source:   source,
		target:   target,
		client:   client,
		settings: settings,
		logger:   logger,
		gate:     make(chan struct{}, 1),
	}
}

// Run executes one sync. Callers that trigger an identical run while one is in flight
// share its result; different runs wait for each other.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*reconcile.Report, error) {
	v, err, shared := s.group.Do(opts.key(), func() (any, error) {
		return s.run(ctx, opts, nil)
	})
	if shared {
		s.logger.Debug("Joined in-flight sync run", zap.String("key", opts.key()))
	}
	report, _ := v.(*reconcile.Report)
	return report, err
}

// Apply executes a plan returned by Plan without reloading either inventory, so the
// operations a caller reviewed are the ones applied. opts.Delete is ignored.
func (s *Service) Apply(ctx context.Context, result *PlanResult, opts RunOptions) (*reconcile.Report, error) {
	if result == nil || result.Plan == nil {
		return nil, errors.New("no plan to apply")
	}
	return s.run(ctx, opts, result)
}

// run executes one sync under the gate. A nil result is planned after the gate is held.
func (s *Service) run(ctx context.Context, opts RunOptions, result *PlanResult) (*reconcile.Report, error) {
	select {
	case s.gate <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("sync interrupted: %w", ctx.Err())
	}
	defer func() { <-s.gate }()

	report := reconcile.NewReport(uuid.NewString(), opts.DryRun)
	l := logger.WithRunID(s.logger, report.RunID)
	l.Info("Sync started", zap.Bool("dry_run", opts.DryRun), zap.Bool("confirmed", opts.Confirmed))

	if result == nil {
		var err error
		if result, err = s.plan(ctx, opts.Delete); err != nil {
			l.Error("Sync aborted", zap.Error(err))
			return nil, err
		}
	}
	report.Skip(result.Issues...)
	report.Plan = result.Plan.Summary

	var runErr error
	if !opts.DryRun {
		runErr = reconcile.Apply(ctx, result.Plan, s.target, report, reconcile.ApplyOptions{
			DryRun:           opts.DryRun,
			Confirmed:        opts.Confirmed,
			OperationTimeout: s.settings.Reconcile.OperationTimeout(),
		})
		if errors.Is(runErr, reconcile.ErrNotConfirmed) {
			l.Warn("Sync not confirmed, nothing applied")
			return nil, runErr
		}
	}
	report.Finish()
	s.last.Store(report)

	if err := s.archive(ctx, report); err != nil {
		l.Warn("Failed to archive sync report", zap.Error(err))
	}

	l.Info("Sync finished",
		zap.Int("operations", report.Plan.Total),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failures", report.Failed()),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)))
	return report, runErr
}

// Plan loads both inventories and diffs them without applying anything.
// forceDelete plans deletions even when delete_on_sync is off.
func (s *Service) Plan(ctx context.Context, forceDelete bool) (*PlanResult, error) {
	return s.plan(ctx, forceDelete)
}

func (s *Service) plan(ctx context.Context, forceDelete bool) (*PlanResult, error) {
	source, sourceIssues, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load source inventory: %w", err)
	}
	target, targetIssues, err := s.target.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load target inventory: %w", err)
	}

	plan := reconcile.Diff(source, target, reconcile.Options{
		DeleteOnSync: s.settings.Reconcile.DeleteOnSync || forceDelete,
	})
	issues := make([]inventory.Issue, 0, len(sourceIssues)+len(targetIssues))
	issues = append(issues, sourceIssues...)
	issues = append(issues, targetIssues...)
	return &PlanResult{Plan: plan, Issues: issues}, nil
}

// Last returns the report of the most recent finished run.
func (s *Service) Last() (*reconcile.Report, error) {
	if r := s.last.Load(); r != nil {
		return r, nil
	}
	return nil, ErrNoReport
}

func (s *Service) objectName(runID string) string {
	return path.Join(s.settings.ReportPrefix, runID+".json")
}

// archive stores the report and prunes archives beyond the retention.
// It runs detached from ctx so an interrupted run is still recorded.
func (s *Service) archive(ctx context.Context, report *reconcile.Report) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = s.client.PutObject(ctx, s.settings.Bucket, s.objectName(report.RunID),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}

	if s.settings.Retention <= 0 {
		return nil
	}
	return s.prune(ctx)
}

func (s *Service) prune(ctx context.Context) error {
	reports, err := s.Reports(ctx)
	if err != nil {
		return err
	}
	if len(reports) <= s.settings.Retention {
		return nil
	}

	stale := reports[s.settings.Retention:]
	objects := make(chan minio.ObjectInfo, len(stale))
	for _, r := range stale {
		objects <- minio.ObjectInfo{Key: r.Object}
	}
	close(objects)

	var errs []error
	for e := range s.client.RemoveObjects(ctx, s.settings.Bucket, objects, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("failed to remove report %s: %w", e.ObjectName, e.Err))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	s.logger.Debug("Pruned sync reports", zap.Int("removed", len(stale)))
	return nil
}

// Reports lists archived reports, newest first.
func (s *Service) Reports(ctx context.Context) ([]ArchivedReport, error) {
	prefix := strings.TrimSuffix(s.settings.ReportPrefix, "/") + "/"
	out := []ArchivedReport{}
	for obj := range s.client.ListObjects(ctx, s.settings.Bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		out = append(out, ArchivedReport{
			RunID:        strings.TrimSuffix(path.Base(obj.Key), ".json"),
			Object:       obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastModified.Equal(out[j].LastModified) {
			return out[i].LastModified.After(out[j].LastModified)
		}
		return out[i].Object > out[j].Object
	})
	return out, nil
}

// Report reads an archived report by run id.
func (s *Service) Report(ctx context.Context, runID string) (*reconcile.Report, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidRunID, runID)
	}
	data, err := s.read(ctx, s.objectName(runID))
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNoReport
		}
		return nil, fmt.Errorf("failed to read report %s: %w", runID, err)
	}
	var report reconcile.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", runID, err)
	}
	return &report, nil
}

func (s *Service) read(ctx context.Context, object string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.settings.Bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}
