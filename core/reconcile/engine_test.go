package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"inventory-sync/core/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockMutator records every call and fails the configured keys.
type mockMutator struct {
	mu      sync.Mutex
	calls   []string
	fail    map[string]error
	block   map[string]bool
	nextID  uint
	updates map[uint][]Change
}

func (m *mockMutator) record(kind OpKind, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, string(kind)+":"+key)
	return m.fail[key]
}

func (m *mockMutator) Create(ctx context.Context, e inventory.Entity) (uint, error) {
	key, _ := e.Key()
	if m.block[key] {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if err := m.record(OpCreate, key); err != nil {
		return 0, err
	}
	m.nextID++
	return m.nextID, nil
}

func (m *mockMutator) Update(_ context.Context, t inventory.Type, id uint, changes []Change) error {
	if m.updates == nil {
		m.updates = make(map[uint][]Change)
	}
	m.updates[id] = changes
	return m.record(OpUpdate, string(t))
}

func (m *mockMutator) Delete(_ context.Context, t inventory.Type, _ uint) error {
	return m.record(OpDelete, string(t))
}

func confirmed() ApplyOptions {
	return ApplyOptions{Confirmed: true, OperationTimeout: time.Second}
}

func TestApply_Gate(t *testing.T) {
	plan := Diff(snapshot(t, dc1()...), inventory.New(), Options{})

	tests := []struct {
		name string
		opts ApplyOptions
	}{
		{"dry run", ApplyOptions{DryRun: true, Confirmed: true}},
		{"not confirmed", ApplyOptions{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockMutator{}
			err := Apply(context.Background(), plan, m, NewReport("run", tt.opts.DryRun), tt.opts)
			assert.ErrorIs(t, err, ErrNotConfirmed)
			assert.Empty(t, m.calls)
		})
	}
}

func TestApply_RunsInPlanOrder(t *testing.T) {
	target := snapshot(t, inventory.Building{Record: inventory.Record{ID: 9}, Name: "DC1", Address: "old"}, inventory.Vendor{Name: "Gone"})
	source := snapshot(t, inventory.Building{Name: "DC1", Address: "new"}, inventory.Room{Building: "DC1", Name: "R1"})
	plan := Diff(source, target, Options{DeleteOnSync: true})

	m := &mockMutator{}
	report := NewReport("run", false)
	require.NoError(t, Apply(context.Background(), plan, m, report, confirmed()))

	assert.Equal(t, []string{"update:building", "create:DC1|R1", "delete:vendor"}, m.calls)
	assert.Equal(t, []string{"address"}, []string{m.updates[9][0].Field})
	assert.Equal(t, 1, report.Counts[inventory.TypeBuilding].Update.Succeeded)
	assert.Equal(t, 1, report.Counts[inventory.TypeVendor].Delete.Succeeded)
	assert.Empty(t, report.Failures)
	assert.Equal(t, 3, report.Plan.Total)
}

func TestApply_FailuresContinue(t *testing.T) {
	plan := Diff(snapshot(t, dc1()...), inventory.New(), Options{})
	m := &mockMutator{fail: map[string]error{"DC1|R1": errors.New("rejected")}}
	report := NewReport("run", false)

	require.NoError(t, Apply(context.Background(), plan, m, report, confirmed()))

	assert.Len(t, m.calls, 4)
	require.Len(t, report.Failures, 1)
	f := report.Failures[0]
	assert.Equal(t, inventory.TargetRejected, f.Kind)
	assert.Equal(t, OpCreate, f.Op)
	assert.Equal(t, "DC1|R1", f.Key)
	assert.Equal(t, "rejected", f.Error)

	rooms := report.Counts[inventory.TypeRoom].Create
	assert.Equal(t, OpCounts{Attempted: 1, Succeeded: 0, Failed: 1}, rooms)
}

func TestApply_TimeoutIsFailure(t *testing.T) {
	plan := Diff(snapshot(t, inventory.Vendor{Name: "Slow"}, inventory.Vendor{Name: "Fast"}), inventory.New(), Options{})
	m := &mockMutator{block: map[string]bool{"Slow": true}}
	report := NewReport("run", false)

	opts := ApplyOptions{Confirmed: true, OperationTimeout: 20 * time.Millisecond}
	require.NoError(t, Apply(context.Background(), plan, m, report, opts))

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "Slow", report.Failures[0].Key)
	assert.Contains(t, report.Failures[0].Error, "deadline exceeded")
	assert.Equal(t, []string{"create:Fast"}, m.calls)
}

func TestApply_SuppressedDeletesAreSkipped(t *testing.T) {
	plan := Diff(inventory.New(), snapshot(t, inventory.Building{Name: "OLD"}), Options{DeleteOnSync: false})
	m := &mockMutator{}
	report := NewReport("run", false)

	require.NoError(t, Apply(context.Background(), plan, m, report, confirmed()))
	assert.Empty(t, m.calls)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, SuppressedDelete, report.Skipped[0].Kind)
	assert.Equal(t, "OLD", report.Skipped[0].Key)
}

func TestApply_Cancelled(t *testing.T) {
	plan := Diff(snapshot(t, dc1()...), inventory.New(), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Apply(ctx, plan, &mockMutator{}, NewReport("run", false), confirmed())
	assert.ErrorIs(t, err, context.Canceled)
}
