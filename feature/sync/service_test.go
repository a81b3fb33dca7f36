package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"inventory-sync/core/inventory"
	"inventory-sync/core/reconcile"
	"inventory-sync/core/storage/mocks"
	"inventory-sync/feature/nautobot"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// staticLoader serves a fixed snapshot. When release is set, Load blocks until it is closed.
type staticLoader struct {
	entities []inventory.Entity
	issues   []inventory.Issue
	err      error
	calls    atomic.Int32
	started  chan struct{}
	release  chan struct{}
}

func (l *staticLoader) Load(ctx context.Context) (*inventory.Snapshot, []inventory.Issue, error) {
	l.calls.Add(1)
	if l.started != nil {
		l.started <- struct{}{}
	}
	if l.release != nil {
		select {
		case <-l.release:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	if l.err != nil {
		return nil, nil, l.err
	}
	s := inventory.New()
	for _, e := range l.entities {
		if _, err := s.Insert(e); err != nil {
			return nil, nil, err
		}
	}
	return s, l.issues, nil
}

func dc1() []inventory.Entity {
	return []inventory.Entity{
		inventory.Building{Name: "DC1", Status: "Active"},
		inventory.Room{Building: "DC1", Name: "R1"},
		inventory.Rack{Building: "DC1", Room: "R1", Name: "RK1", Height: 42, Status: "Active"},
		inventory.Device{Name: "sw1", Site: "DC1", Room: "R1", Rack: "RK1", Status: "Active"},
	}
}

func setupTarget(t *testing.T) *nautobot.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := nautobot.NewStore(db, 2, zap.NewNop())
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func expectArchive(client *mocks.Client) {
	client.On("PutObject", mock.Anything, "test-bucket", mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "reports/") && strings.HasSuffix(name, ".json")
	}), mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
}

func newService(source *staticLoader, target Target, client *mocks.Client, retention int) *Service {
	return NewService(source, target, client, Settings{
		Bucket:       "test-bucket",
		ReportPrefix: "reports",
		Retention:    retention,
	}, zap.NewNop())
}

func TestService_RunConverges(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	expectArchive(client)
	target := setupTarget(t)
	svc := newService(&staticLoader{entities: dc1()}, target, client, 0)

	report, err := svc.Run(ctx, RunOptions{Confirmed: true})
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.FinishedAt.IsZero())
	assert.Empty(t, report.Failures)
	for _, typ := range []inventory.Type{inventory.TypeBuilding, inventory.TypeRoom, inventory.TypeRack, inventory.TypeDevice} {
		require.Contains(t, report.Counts, typ)
		assert.Equal(t, 1, report.Counts[typ].Create.Succeeded, typ)
	}

	second, err := svc.Run(ctx, RunOptions{Confirmed: true})
	require.NoError(t, err)
	assert.NotEqual(t, report.RunID, second.RunID)
	assert.Zero(t, second.Plan.Total)

	last, err := svc.Last()
	require.NoError(t, err)
	assert.Equal(t, second.RunID, last.RunID)
	client.AssertNumberOfCalls(t, "PutObject", 2)
}

func TestService_ApplyReviewedPlan(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	expectArchive(client)
	target := setupTarget(t)
	source := &staticLoader{entities: dc1()}
	svc := newService(source, target, client, 0)

	preview, err := svc.Plan(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 4, preview.Plan.Summary.Total)

	// Changes after the review must not reach the target.
	source.entities = append(source.entities, inventory.Building{Name: "DC2", Status: "Active"})

	report, err := svc.Apply(ctx, preview, RunOptions{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, preview.Plan.Summary, report.Plan)
	assert.Equal(t, 1, report.Counts[inventory.TypeBuilding].Create.Succeeded)
	assert.Equal(t, int32(1), source.calls.Load())

	snap, _, err := target.Load(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Has(inventory.TypeBuilding, "DC1"))
	assert.False(t, snap.Has(inventory.TypeBuilding, "DC2"))

	_, err = svc.Apply(ctx, preview, RunOptions{})
	assert.ErrorIs(t, err, reconcile.ErrNotConfirmed)
	_, err = svc.Apply(ctx, nil, RunOptions{Confirmed: true})
	assert.Error(t, err)
}

func TestService_DryRun(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	expectArchive(client)
	target := setupTarget(t)
	svc := newService(&staticLoader{entities: dc1()}, target, client, 0)

	report, err := svc.Run(ctx, RunOptions{DryRun: true})
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 4, report.Plan.Total)
	assert.Empty(t, report.Counts)

	snap, _, err := target.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Types())
}

func TestService_NotConfirmed(t *testing.T) {
	client := new(mocks.Client)
	target := setupTarget(t)
	svc := newService(&staticLoader{entities: dc1()}, target, client, 0)

	report, err := svc.Run(context.Background(), RunOptions{})
	assert.ErrorIs(t, err, reconcile.ErrNotConfirmed)
	assert.Nil(t, report)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, err = svc.Last()
	assert.ErrorIs(t, err, ErrNoReport)
}

func TestService_SourceFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newService(&staticLoader{err: boom}, setupTarget(t), new(mocks.Client), 0)

	_, err := svc.Run(context.Background(), RunOptions{DryRun: true})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to load source inventory")
}

func TestService_IssuesInReport(t *testing.T) {
	client := new(mocks.Client)
	expectArchive(client)
	issue := inventory.NewIssue(inventory.DuplicateKey, inventory.TypeVLAN, "DC1|10|users", "duplicate")
	svc := newService(&staticLoader{entities: dc1(), issues: []inventory.Issue{issue}}, setupTarget(t), client, 0)

	report, err := svc.Run(context.Background(), RunOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, []inventory.Issue{issue}, report.Skipped)
}

func TestService_DeleteOverride(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	expectArchive(client)
	target := setupTarget(t)
	_, err := target.Create(ctx, inventory.Vendor{Name: "Retired"})
	require.NoError(t, err)

	svc := newService(&staticLoader{}, target, client, 0)

	report, err := svc.Run(ctx, RunOptions{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Plan.Suppressed)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, reconcile.SuppressedDelete, report.Skipped[0].Kind)

	report, err = svc.Run(ctx, RunOptions{Confirmed: true, Delete: true})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Counts[inventory.TypeVendor].Delete.Succeeded)
}

func TestService_ConcurrentTriggersShareRun(t *testing.T) {
	client := new(mocks.Client)
	expectArchive(client)
	source := &staticLoader{
		entities: dc1(),
		started:  make(chan struct{}, 2),
		release:  make(chan struct{}),
	}
	svc := newService(source, setupTarget(t), client, 0)

	results := make(chan *reconcile.Report, 2)
	run := func() {
		report, err := svc.Run(context.Background(), RunOptions{DryRun: true})
		assert.NoError(t, err)
		results <- report
	}

	go run()
	<-source.started
	go run()
	time.Sleep(50 * time.Millisecond)
	close(source.release)

	first, second := <-results, <-results
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), source.calls.Load())
}

func TestService_Retention(t *testing.T) {
	client := new(mocks.Client)
	expectArchive(client)
	now := time.Now()
	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Listing(
		minio.ObjectInfo{Key: "reports/a.json", LastModified: now.Add(-3 * time.Hour)},
		minio.ObjectInfo{Key: "reports/b.json", LastModified: now.Add(-2 * time.Hour)},
		minio.ObjectInfo{Key: "reports/c.json", LastModified: now},
		minio.ObjectInfo{Key: "reports/.keep", LastModified: now.Add(-5 * time.Hour)},
	))
	var removed []string
	client.On("RemoveObjects", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			for o := range args.Get(2).(<-chan minio.ObjectInfo) {
				removed = append(removed, o.Key)
			}
		}).Return(nil)

	svc := newService(&staticLoader{entities: dc1()}, setupTarget(t), client, 2)
	_, err := svc.Run(context.Background(), RunOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"reports/a.json"}, removed)
	client.AssertNumberOfCalls(t, "RemoveObjects", 1)
}

func TestService_ArchiveFailureKeepsReport(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket unavailable"))

	svc := newService(&staticLoader{entities: dc1()}, setupTarget(t), client, 0)
	report, err := svc.Run(context.Background(), RunOptions{DryRun: true})
	require.NoError(t, err)

	last, err := svc.Last()
	require.NoError(t, err)
	assert.Equal(t, report.RunID, last.RunID)
}

func TestService_Reports(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	id := "2b7e1516-28ae-4d2a-a6d2-abf7158809cf"

	t.Run("newest first", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Listing(
			minio.ObjectInfo{Key: "reports/old.json", LastModified: now.Add(-time.Hour), Size: 10},
			minio.ObjectInfo{Key: "reports/new.json", LastModified: now, Size: 20},
		))
		svc := newService(&staticLoader{}, nil, client, 0)

		reports, err := svc.Reports(ctx)
		require.NoError(t, err)
		require.Len(t, reports, 2)
		assert.Equal(t, "new", reports[0].RunID)
		assert.Equal(t, "old", reports[1].RunID)
	})

	t.Run("empty bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Listing())
		svc := newService(&staticLoader{}, nil, client, 0)

		reports, err := svc.Reports(ctx)
		require.NoError(t, err)
		assert.NotNil(t, reports)
		assert.Empty(t, reports)
	})

	t.Run("read archived report", func(t *testing.T) {
		client := new(mocks.Client)
		body := fmt.Sprintf(`{"run_id":%q,"dry_run":true,"skipped":[{"kind":"duplicate_key","type":"vlan","key":"k","reason":"r"}]}`, id)
		client.On("GetObject", mock.Anything, "test-bucket", "reports/"+id+".json", mock.Anything).
			Return(io.NopCloser(strings.NewReader(body)), nil)
		svc := newService(&staticLoader{}, nil, client, 0)

		report, err := svc.Report(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, report.RunID)
		assert.True(t, report.DryRun)
		assert.Len(t, report.Skipped, 1)
	})

	t.Run("missing report", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
		svc := newService(&staticLoader{}, nil, client, 0)

		_, err := svc.Report(ctx, id)
		assert.ErrorIs(t, err, ErrNoReport)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := newService(&staticLoader{}, nil, new(mocks.Client), 0)
		_, err := svc.Report(ctx, "../secrets")
		assert.ErrorIs(t, err, ErrInvalidRunID)
	})
}
