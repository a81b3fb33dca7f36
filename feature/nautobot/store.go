package nautobot

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"inventory-sync/core/inventory"
	"inventory-sync/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	_ reconcile.Loader  = (*Store)(nil)
	_ reconcile.Mutator = (*Store)(nil)
)

// Store is the gorm backed target inventory. Every entity type has its own table with
// a unique natural_key; references between rows are kept in inventory_references.
type Store struct {
	db      *gorm.DB
	workers int
	logger  *zap.Logger
}

// NewStore wraps an open database. workers bounds concurrent table loads.
func NewStore(db *gorm.DB, workers int, logger *zap.Logger) *Store {
	if workers <= 0 {
		workers = 4
	}
	return &Store{db: db, workers: workers, logger: logger}
}

// Migrate creates or updates every table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(Schema()...); err != nil {
		return fmt.Errorf("failed to migrate target schema: %w", err)
	}
	return nil
}

// Load reads every table into a snapshot. Rows whose key cannot be derived are
// reported as issues.
func (s *Store) Load(ctx context.Context) (*inventory.Snapshot, []inventory.Issue, error) {
	snap := inventory.New()
	var (
		mu     sync.Mutex
		issues []inventory.Issue
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, m := range inventory.Models() {
		m := m
		g.Go(func() error {
			rows, err := s.rows(ctx, m)
			if err != nil {
				return fmt.Errorf("failed to load %s rows: %w", m.EntityType(), err)
			}
			for _, e := range rows {
				if _, err := snap.Insert(e); err != nil {
					mu.Lock()
					issues = append(issues, inventory.IssueFromError(e.EntityType(), "id "+strconv.FormatUint(uint64(e.RecordID()), 10), err))
					mu.Unlock()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	s.logger.Info("Target snapshot loaded", zap.Any("counts", snap.Counts()), zap.Int("issues", len(issues)))
	return snap, issues, nil
}

func (s *Store) rows(ctx context.Context, m inventory.Entity) ([]inventory.Entity, error) {
	slice := reflect.New(reflect.SliceOf(reflect.TypeOf(m)))
	if err := s.db.WithContext(ctx).Order("id").Find(slice.Interface()).Error; err != nil {
		return nil, err
	}
	items := slice.Elem()
	out := make([]inventory.Entity, items.Len())
	for i := range out {
		out[i] = items.Index(i).Interface().(inventory.Entity)
	}
	return out, nil
}

// Create inserts e after checking its references and returns the new row id.
func (s *Store) Create(ctx context.Context, e inventory.Entity) (uint, error) {
	key, err := e.Key()
	if err != nil {
		return 0, err
	}
	row := rowOf(e, key)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, e); err != nil {
			return err
		}
		if err := tx.Create(row.Interface()).Error; err != nil {
			return fmt.Errorf("failed to create %s %q: %w", e.EntityType(), key, err)
		}
		return writeReferences(tx, e.EntityType(), key, e.Refs())
	})
	if err != nil {
		return 0, err
	}
	return entityOf(row).RecordID(), nil
}

// Update writes the changed columns of a row and refreshes its references.
func (s *Store) Update(ctx context.Context, t inventory.Type, id uint, changes []reconcile.Change) error {
	if len(changes) == 0 {
		return nil
	}
	values := make(map[string]any, len(changes))
	for _, c := range changes {
		values[c.Field] = c.To
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := find(tx, t, id)
		if err != nil {
			return err
		}
		if err := tx.Model(row.Interface()).Updates(values).Error; err != nil {
			return fmt.Errorf("failed to update %s %d: %w", t, id, err)
		}

		updated, err := find(tx, t, id)
		if err != nil {
			return err
		}
		e := entityOf(updated)
		if err := checkReferences(tx, e); err != nil {
			return err
		}
		key, err := e.Key()
		if err != nil {
			return err
		}
		if err := tx.Where("from_type = ? AND from_key = ?", string(t), key).Delete(&Reference{}).Error; err != nil {
			return fmt.Errorf("failed to clear references of %s %q: %w", t, key, err)
		}
		return writeReferences(tx, t, key, e.Refs())
	})
}

// Delete removes a row unless other rows still reference it.
func (s *Store) Delete(ctx context.Context, t inventory.Type, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := find(tx, t, id)
		if err != nil {
			return err
		}
		key, err := entityOf(row).Key()
		if err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&Reference{}).Where("to_type = ? AND to_key = ?", string(t), key).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to count references to %s %q: %w", t, key, err)
		}
		if n > 0 {
			return fmt.Errorf("%w: %s %q has %d references", ErrStillReferenced, t, key, n)
		}

		if err := tx.Delete(row.Interface()).Error; err != nil {
			return fmt.Errorf("failed to delete %s %q: %w", t, key, err)
		}
		if err := tx.Where("from_type = ? AND from_key = ?", string(t), key).Delete(&Reference{}).Error; err != nil {
			return fmt.Errorf("failed to clear references of %s %q: %w", t, key, err)
		}
		return nil
	})
}

func find(tx *gorm.DB, t inventory.Type, id uint) (reflect.Value, error) {
	row, err := newModel(t)
	if err != nil {
		return row, err
	}
	if err := tx.First(row.Interface(), id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return row, fmt.Errorf("%s %d not found: %w", t, id, err)
		}
		return row, fmt.Errorf("failed to read %s %d: %w", t, id, err)
	}
	return row, nil
}

func exists(tx *gorm.DB, t inventory.Type, key string) (bool, error) {
	table, err := tableName(t)
	if err != nil {
		return false, err
	}
	var n int64
	if err := tx.Table(table).Where("natural_key = ?", key).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to look up %s %q: %w", t, key, err)
	}
	return n > 0, nil
}

func checkReferences(tx *gorm.DB, e inventory.Entity) error {
	for _, ref := range e.Refs() {
		ok, err := exists(tx, ref.Type, ref.Key)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s %q", ErrReferenceMissing, ref.Type, ref.Key)
		}
	}

	d, ok := e.(inventory.Device)
	if !ok || d.Cluster == "" || d.IsChassisMaster() {
		return nil
	}
	var n int64
	err := tx.Model(&inventory.Device{}).Where("cluster = ? AND vc_position = ?", d.Cluster, 0).Count(&n).Error
	if err != nil {
		return fmt.Errorf("failed to look up master of %q: %w", d.Cluster, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrMasterMissing, d.Cluster)
	}
	return nil
}

func writeReferences(tx *gorm.DB, t inventory.Type, key string, refs []inventory.Ref) error {
	if len(refs) == 0 {
		return nil
	}
	rows := make([]Reference, len(refs))
	for i, ref := range refs {
		rows[i] = Reference{FromType: string(t), FromKey: key, ToType: string(ref.Type), ToKey: ref.Key}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to write references of %s %q: %w", t, key, err)
	}
	return nil
}
