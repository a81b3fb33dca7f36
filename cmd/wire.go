package cmd

import (
	"context"
	"fmt"
	"net"

	"inventory-sync/core/config"
	"inventory-sync/core/database"
	d42 "inventory-sync/core/device42"
	"inventory-sync/core/heuristics"
	"inventory-sync/core/logger"
	"inventory-sync/core/storage"
	"inventory-sync/feature/device42"
	"inventory-sync/feature/integrity/checks"
	"inventory-sync/feature/nautobot"
	invsync "inventory-sync/feature/sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the assembled dependencies shared by the commands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client storage.Client
	db     *gorm.DB
	source source
	store  *nautobot.Store
	sync   *invsync.Service
}

// source is a Device42 record source that can also be probed.
type source interface {
	device42.RecordSource
	checks.Pinger
}

// bootstrap loads the configuration and creates the logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// newSource selects the Device42 record source. kind overrides device42.source when set.
func newSource(cfg *config.Config, client storage.Client, kind string) (source, error) {
	if kind == "" {
		kind = cfg.Device42.Source
	}
	switch kind {
	case "api":
		c, err := d42.NewClient(cfg.Device42)
		if err != nil {
			return nil, err
		}
		return device42.NewAPISource(c), nil
	case "export":
		return device42.NewExportSource(client, cfg.Storage.Bucket, cfg.Storage.ExportPrefix), nil
	default:
		return nil, fmt.Errorf("unknown device42 source %q (want api or export)", kind)
	}
}

// wire connects storage, the target database and the Device42 source and assembles
// the sync service. The target schema is migrated before the service is returned.
func wire(ctx context.Context, sourceKind string) (*app, error) {
	cfg, logg, err := bootstrap()
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("target database connection required: %w", err)
	}
	logg = logg.With(zap.String("target", cfg.Database.Name))

	src, err := newSource(cfg, client, sourceKind)
	if err != nil {
		return nil, err
	}

	var resolver heuristics.HostResolver
	if cfg.Sync.UseDNS {
		resolver = net.DefaultResolver
	}
	loader := device42.NewLoader(src, cfg.Sync, resolver, logg.Named("device42"))

	store := nautobot.NewStore(db, cfg.Sync.Workers, logg.Named("nautobot"))
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate target schema: %w", err)
	}

	svc := invsync.NewService(loader, store, client, invsync.Settings{
		Bucket:       cfg.Storage.Bucket,
		ReportPrefix: cfg.Storage.ReportPrefix,
		Retention:    cfg.Storage.ReportRetention,
		Reconcile:    cfg.Reconcile,
	}, logg.Named("sync"))

	return &app{
		cfg:    cfg,
		logger: logg,
		client: client,
		db:     db,
		source: src,
		store:  store,
		sync:   svc,
	}, nil
}
