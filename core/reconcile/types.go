package reconcile

import (
	"time"

	"inventory-sync/core/inventory"
)

// OpKind is the kind of a planned mutation.
type OpKind string

const (
	// OpCreate adds an entity that only exists in the source.
	OpCreate OpKind = "create"
	// OpUpdate changes the attributes of an entity present on both sides.
	OpUpdate OpKind = "update"
	// OpDelete removes an entity that only exists in the target.
	OpDelete OpKind = "delete"
)

// SuppressedDelete is the skip kind of a delete planned while deletion is disabled.
const SuppressedDelete inventory.IssueKind = "suppressed_delete"

// Change is one differing attribute. Field is the target column name.
type Change struct {
	Field string `json:"field"`
	From  any    `json:"from"`
	To    any    `json:"to"`
}

// Operation is one planned mutation of the target.
type Operation struct {
	// Kind specifies the mutation to perform.
	Kind OpKind `json:"kind"`

	// Type is the entity type.
	Type inventory.Type `json:"type"`

	// Key is the natural key of the entity.
	Key string `json:"key"`

	// ID is the target row id for updates and deletes.
	ID uint `json:"id,omitempty"`

	// Changes lists exactly the differing fields of an update.
	Changes []Change `json:"changes,omitempty"`

	// Suppressed marks deletes planned while deletion is disabled.
	Suppressed bool `json:"suppressed,omitempty"`

	// Entity is the source value for creates and updates.
	Entity inventory.Entity `json:"-"`
}

// Fields returns the names of the changed fields.
func (o Operation) Fields() []string {
	out := make([]string, len(o.Changes))
	for i, c := range o.Changes {
		out[i] = c.Field
	}
	return out
}

// TypeSummary counts planned operations of one type.
type TypeSummary struct {
	Create int `json:"create"`
	Update int `json:"update"`
	Delete int `json:"delete"`
}

// Summary provides aggregate counts for a plan.
type Summary struct {
	// Types holds the counts per entity type, only for types with operations.
	Types map[inventory.Type]*TypeSummary `json:"types"`

	// Suppressed counts deletes that will be skipped.
	Suppressed int `json:"suppressed"`

	// Total is the number of operations.
	Total int `json:"total"`
}

func (s *Summary) add(op Operation) {
	if s.Types == nil {
		s.Types = make(map[inventory.Type]*TypeSummary)
	}
	ts, ok := s.Types[op.Type]
	if !ok {
		ts = &TypeSummary{}
		s.Types[op.Type] = ts
	}
	switch op.Kind {
	case OpCreate:
		ts.Create++
	case OpUpdate:
		ts.Update++
	case OpDelete:
		ts.Delete++
		if op.Suppressed {
			s.Suppressed++
		}
	}
	s.Total++
}

// Plan is the ordered list of operations produced by Diff.
type Plan struct {
	Operations []Operation `json:"operations"`
	Summary    Summary     `json:"summary"`
}

// Options controls Diff.
type Options struct {
	// DeleteOnSync enables deletion of target entities missing from the source.
	// When false deletes are still planned but marked suppressed.
	DeleteOnSync bool
}

// ApplyOptions controls Apply.
type ApplyOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed indicates the operator has confirmed the run.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool

	// OperationTimeout bounds every target call. Zero means no timeout.
	OperationTimeout time.Duration
}

// OpCounts counts the outcome of one operation kind.
type OpCounts struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// TypeCounts holds the outcome per operation kind of one entity type.
type TypeCounts struct {
	Create OpCounts `json:"create"`
	Update OpCounts `json:"update"`
	Delete OpCounts `json:"delete"`
}

func (c *TypeCounts) of(kind OpKind) *OpCounts {
	switch kind {
	case OpCreate:
		return &c.Create
	case OpUpdate:
		return &c.Update
	default:
		return &c.Delete
	}
}

// Failure is a target call that did not succeed.
type Failure struct {
	Kind  inventory.IssueKind `json:"kind"`
	Op    OpKind              `json:"op"`
	Type  inventory.Type      `json:"type"`
	Key   string              `json:"key"`
	Error string              `json:"error"`
}

// Report is the outcome of one sync run.
type Report struct {
	RunID      string                         `json:"run_id"`
	StartedAt  time.Time                      `json:"started_at"`
	FinishedAt time.Time                      `json:"finished_at"`
	DryRun     bool                           `json:"dry_run"`
	Counts     map[inventory.Type]*TypeCounts `json:"counts"`
	Skipped    []inventory.Issue              `json:"skipped"`
	Failures   []Failure                      `json:"failures"`
	Plan       Summary                        `json:"plan"`
}

// NewReport returns an empty report started now.
func NewReport(runID string, dryRun bool) *Report {
	return &Report{
		RunID:     runID,
		StartedAt: time.Now().UTC(),
		DryRun:    dryRun,
		Counts:    make(map[inventory.Type]*TypeCounts),
		Skipped:   []inventory.Issue{},
		Failures:  []Failure{},
	}
}

func (r *Report) counts(t inventory.Type) *TypeCounts {
	c, ok := r.Counts[t]
	if !ok {
		c = &TypeCounts{}
		r.Counts[t] = c
	}
	return c
}

// Skip records an issue in the skipped list.
func (r *Report) Skip(issues ...inventory.Issue) {
	r.Skipped = append(r.Skipped, issues...)
}

// Finish stamps the finish time.
func (r *Report) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// Failed returns the number of failed operations.
func (r *Report) Failed() int {
	return len(r.Failures)
}
