// Package framework is the mutation engine for the three-tier security
// architecture graph. It owns the live state, interposes the validator and
// the permission gate in front of every command, and snapshots the prior
// state into the version store before each change is applied.
package framework

import (
	"sync"

	"github.com/dd0wney/cluso-archmodel/pkg/analytics"
	"github.com/dd0wney/cluso-archmodel/pkg/audit"
	"github.com/dd0wney/cluso-archmodel/pkg/auth"
	"github.com/dd0wney/cluso-archmodel/pkg/logging"
	"github.com/dd0wney/cluso-archmodel/pkg/metrics"
	"github.com/dd0wney/cluso-archmodel/pkg/model"
	"github.com/dd0wney/cluso-archmodel/pkg/validation"
	"github.com/dd0wney/cluso-archmodel/pkg/versioning"
)

// Actor identifies the caller of a command. Both fields are supplied by the
// external session layer; the core only records the author and consults the
// role against the permission gate.
type Actor struct {
	Author string
	Role   auth.Role
}

// Config holds construction options for a Framework. Zero values get
// sensible defaults.
type Config struct {
	Bounds            validation.Bounds
	DisableVersioning bool // snapshots on by default
	AuditBufferSize   int

	// HistoryWarnThreshold logs a warning once the version store grows
	// past this many entries. Zero means the default of 1000.
	HistoryWarnThreshold int
	Logger               logging.Logger
	Metrics              *metrics.Registry
	Checker              *auth.Checker

	// Seed is an optional starting state. It is deep-copied and must
	// already satisfy the structural invariants; no snapshot is taken.
	Seed *model.FrameworkState
}

// Framework owns the live graph state. A single mutex serializes the
// validate-then-apply sequence of every command; the check-then-act pair is
// not safe under interleaving.
type Framework struct {
	mu       sync.Mutex
	state    *model.FrameworkState
	versions *versioning.Store
	trail    *audit.Trail
	checker  *auth.Checker
	metrics  *metrics.Registry
	log      logging.Logger

	bounds        validation.Bounds
	versioning    bool
	historyWarnAt int
}

// New creates a framework with an empty graph.
func New(cfg Config) *Framework {
	if cfg.Bounds == (validation.Bounds{}) {
		cfg.Bounds = validation.DefaultBounds
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewRegistry()
	}
	if cfg.Checker == nil {
		cfg.Checker = auth.NewChecker()
	}
	if cfg.AuditBufferSize == 0 {
		cfg.AuditBufferSize = 1024
	}
	if cfg.HistoryWarnThreshold == 0 {
		cfg.HistoryWarnThreshold = 1000
	}

	state := model.NewFrameworkState()
	if cfg.Seed != nil {
		state = cfg.Seed.Clone()
	}

	f := &Framework{
		state:         state,
		versions:      versioning.NewStore(),
		trail:         audit.NewTrail(cfg.AuditBufferSize),
		checker:       cfg.Checker,
		metrics:       cfg.Metrics,
		log:           cfg.Logger.With(logging.Component("framework")),
		bounds:        cfg.Bounds,
		versioning:    !cfg.DisableVersioning,
		historyWarnAt: cfg.HistoryWarnThreshold,
	}
	f.syncGauges()
	return f
}

// Query surface. Everything returned here is a copy; callers can never reach
// the live catalog.

// Lookup returns a copy of the named node from whichever tier holds it.
func (f *Framework) Lookup(name string) (*model.Node, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.state.Lookup(name)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// AllNames returns every node name across all tiers, sorted.
func (f *Framework) AllNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.AllNames()
}

// ChildrenOf returns copies of the capabilities parented to the domain,
// ordered by name.
func (f *Framework) ChildrenOf(domainName string) []*model.Node {
	f.mu.Lock()
	defer f.mu.Unlock()
	children := f.state.ChildrenOf(domainName)
	out := make([]*model.Node, len(children))
	for i, n := range children {
		out[i] = n.Clone()
	}
	return out
}

// StateCopy returns a deep copy of the current state for read-only use.
func (f *Framework) StateCopy() *model.FrameworkState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

// ConnectionMatrix returns the canonical node order and the symmetric
// adjacency matrix over it, consistent with the state at call time.
func (f *Framework) ConnectionMatrix() ([]string, [][]bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order := analytics.NodeOrder(f.state)
	return order, analytics.ConnectionMatrix(f.state, order)
}

// ConnectionCount returns the number of edges touching name.
func (f *Framework) ConnectionCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return analytics.ConnectionCount(f.state, name)
}

// ChildCount returns the number of capabilities parented to the domain.
func (f *Framework) ChildCount(domainName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return analytics.ChildCount(f.state, domainName)
}

// DomainSummaries returns the per-domain analysis rows.
func (f *Framework) DomainSummaries() []analytics.DomainSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return analytics.DomainSummaries(f.state)
}

// Versions returns version metadata in creation order, oldest first.
func (f *Framework) Versions() []versioning.Entry {
	return f.versions.List()
}

// AuditTrail exposes the audit trail for the presentation layer.
func (f *Framework) AuditTrail() *audit.Trail {
	return f.trail
}

// Metrics exposes the metrics registry for scraping.
func (f *Framework) Metrics() *metrics.Registry {
	return f.metrics
}

// internal helpers; callers hold f.mu where it matters

// snapshotPrior stores the current state before a mutation is applied, so
// every version entry represents a previously-valid state.
func (f *Framework) snapshotPrior(author string) error {
	if !f.versioning {
		return nil
	}
	id, err := f.versions.Snapshot(f.state, author)
	if err != nil {
		// Snapshot failure means the mutation must not proceed.
		f.log.Error("snapshot failed", logging.Error(err), logging.Author(author))
		return err
	}
	f.metrics.RecordSnapshot(f.versions.Len())
	f.log.Debug("state snapshotted", logging.VersionID(id), logging.Author(author))
	if n := f.versions.Len(); n > f.historyWarnAt {
		f.log.Warn("version history is getting large", logging.Count(n))
	}
	return nil
}

// syncGauges pushes the current graph size into the metrics registry.
func (f *Framework) syncGauges() {
	f.metrics.SetGraphSize(
		len(f.state.Domains),
		len(f.state.Capabilities),
		len(f.state.Processes),
		f.state.EdgeCount(),
	)
}

// reject records a validation failure on op and returns the error.
func (f *Framework) reject(actor Actor, op string, action audit.Action, resource audit.ResourceType, resourceID string, violations validation.Violations) error {
	err := &ValidationError{Op: op, Violations: violations}
	f.metrics.RecordMutation(op, "rejected")
	f.metrics.RecordValidationFailure(op)
	f.trail.Record(audit.Failure(actor.Author, string(actor.Role), action, resource, resourceID, violations.String()))
	f.log.Warn("mutation rejected",
		logging.Operation(op),
		logging.Author(actor.Author),
		logging.Violations(violations),
	)
	return err
}

// deny records a permission failure on op and returns the error.
func (f *Framework) deny(actor Actor, op string, action audit.Action, resource audit.ResourceType, resourceID string, err error) error {
	f.metrics.RecordMutation(op, "denied")
	f.trail.Record(audit.Failure(actor.Author, string(actor.Role), action, resource, resourceID, err.Error()))
	f.log.Warn("permission denied",
		logging.Operation(op),
		logging.Author(actor.Author),
		logging.Error(err),
	)
	return err
}
