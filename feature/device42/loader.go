package device42

import (
	"context"
	"fmt"
	"sync"

	"inventory-sync/core/heuristics"
	"inventory-sync/core/inventory"
	"inventory-sync/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Loader builds the source snapshot from Device42 records.
type Loader struct {
	source   RecordSource
	cfg      heuristics.Config
	resolver heuristics.HostResolver
	logger   *zap.Logger
}

// NewLoader creates a loader. resolver is only used when cfg.UseDNS is set.
func NewLoader(source RecordSource, cfg heuristics.Config, resolver heuristics.HostResolver, logger *zap.Logger) *Loader {
	return &Loader{source: source, cfg: cfg, resolver: resolver, logger: logger}
}

// Load fetches every record kind and maps them into a snapshot. Records that cannot be
// mapped are reported as issues; only fetch failures abort the load.
func (l *Loader) Load(ctx context.Context) (*inventory.Snapshot, []inventory.Issue, error) {
	sites, err := heuristics.NewSiteResolver(l.cfg)
	if err != nil {
		return nil, nil, err
	}

	records, err := l.fetch(ctx)
	if err != nil {
		return nil, nil, err
	}

	r := &run{
		Loader:      l,
		ctx:         ctx,
		snap:        inventory.New(),
		records:     records,
		sites:       sites,
		skipDevices: make(map[string]bool),
	}
	r.load()

	l.logger.Info("Device42 snapshot loaded",
		zap.Any("counts", r.snap.Counts()),
		zap.Int("issues", len(r.issues)))
	return r.snap, r.issues, nil
}

func (l *Loader) fetch(ctx context.Context) (map[Kind][]utils.Record, error) {
	workers := l.cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	var mu sync.Mutex
	out := make(map[Kind][]utils.Record, len(Kinds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, kind := range Kinds {
		kind := kind
		g.Go(func() error {
			recs, err := l.source.Records(ctx, kind)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", kind, err)
			}
			l.logger.Debug("Fetched Device42 records", zap.String("kind", string(kind)), zap.Int("count", len(recs)))

			mu.Lock()
			out[kind] = recs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// run holds the state of one load.
type run struct {
	*Loader
	ctx     context.Context
	snap    *inventory.Snapshot
	issues  []inventory.Issue
	records map[Kind][]utils.Record
	sites   *heuristics.SiteResolver

	// manufacturer by hardware model
	hardwareVendor map[string]string
	// devices excluded by ignore_tag or a missing site, so their ports stay quiet
	skipDevices map[string]bool
}

func (r *run) load() {
	r.loadBuildings()
	r.loadRooms()
	r.loadRacks()
	r.loadVendors()
	r.loadHardware()
	r.loadVRFs()
	r.loadVLANs()
	r.loadSubnets()
	r.loadClustersAndDevices()
	r.loadPorts()
	r.loadIPAddresses()
	if r.cfg.UseDNS {
		r.assignPrimaryIPs()
	}
	r.loadConnections()
	r.loadProvidersAndCircuits()
}

func (r *run) insert(e inventory.Entity, ident string) bool {
	key, err := r.snap.Insert(e)
	if err != nil {
		if key != "" {
			ident = key
		}
		r.issues = append(r.issues, inventory.IssueFromError(e.EntityType(), ident, err))
		return false
	}
	if r.cfg.VerboseDebug {
		r.logger.Debug("Loaded Device42 record", zap.String("type", string(e.EntityType())), zap.String("key", key))
	}
	return true
}

func (r *run) issue(kind inventory.IssueKind, t inventory.Type, key, reason string) {
	r.issues = append(r.issues, inventory.NewIssue(kind, t, key, reason))
}

func (r *run) resolverIssue(t inventory.Type, key string, err error) {
	r.issue(heuristics.IssueKind(err), t, key, err.Error())
}

func (r *run) ignored(t inventory.Type, name string, tags []string) bool {
	if r.cfg.IgnoreTag == "" {
		return false
	}
	for _, tag := range tags {
		if tag == r.cfg.IgnoreTag {
			if r.cfg.VerboseDebug {
				r.logger.Debug("Skipping ignored record", zap.String("type", string(t)), zap.String("name", name))
			}
			return true
		}
	}
	return false
}

func customFields(rec utils.Record) inventory.CustomFields {
	var out inventory.CustomFields
	for _, cf := range rec.Records("custom_fields") {
		out = append(out, inventory.CustomField{Key: cf.String("key"), Value: cf.String("value")})
	}
	return out.Sorted()
}

func tags(rec utils.Record) inventory.StringList {
	return inventory.StringList(rec.Strings("tags")).Sorted()
}

// customFieldIndex groups flat custom field rows by the key built from each row.
func customFieldIndex(rows []utils.Record, key func(utils.Record) string) map[string]inventory.CustomFields {
	out := make(map[string]inventory.CustomFields)
	for _, row := range rows {
		k := key(row)
		out[k] = append(out[k], inventory.CustomField{Key: row.String("key"), Value: row.String("value")})
	}
	for k, cfs := range out {
		out[k] = cfs.Sorted()
	}
	return out
}
