package integrity

import (
	"context"
	"fmt"
	"time"

	"inventory-sync/core/storage"
	"inventory-sync/feature/integrity/checks"
	"inventory-sync/feature/nautobot"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client   storage.Client
	bucket   string
	prefixes []string
	logger   *zap.Logger
	db       *gorm.DB
	source   checks.Pinger
	timeout  time.Duration
}

// NewService creates a new integrity service. db and source may be nil when
// they are not configured; their checks then report an error.
func NewService(client storage.Client, bucket string, prefixes []string, logger *zap.Logger, db *gorm.DB, source checks.Pinger) *Service {
	return &Service{
		client:   client,
		bucket:   bucket,
		prefixes: prefixes,
		logger:   logger,
		db:       db,
		source:   source,
		timeout:  15 * time.Second,
	}
}

// CheckStorage returns the storage prefixes that are missing.
func (s *Service) CheckStorage(ctx context.Context) ([]string, error) {
	return checks.CheckStorage(ctx, s.client, s.bucket, s.prefixes)
}

// FixStorage creates markers for the missing prefixes.
func (s *Service) FixStorage(ctx context.Context, missing []string) error {
	return checks.FixStorage(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema compares the target database against the inventory models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	expected, err := nautobot.Columns(s.db)
	if err != nil {
		return nil, err
	}
	return checks.CheckSchema(s.db, expected)
}

// FixSchema migrates every inventory table.
func (s *Service) FixSchema(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return nautobot.NewStore(s.db, 1, s.logger).Migrate(ctx)
}

// CheckSource pings Device42.
func (s *Service) CheckSource(ctx context.Context) checks.SourceReport {
	return checks.CheckSource(ctx, s.source, s.timeout)
}
