package framework

import (
	"strings"

	"github.com/dd0wney/cluso-archmodel/pkg/audit"
	"github.com/dd0wney/cluso-archmodel/pkg/auth"
	"github.com/dd0wney/cluso-archmodel/pkg/export"
	"github.com/dd0wney/cluso-archmodel/pkg/logging"
	"github.com/dd0wney/cluso-archmodel/pkg/model"
	"github.com/dd0wney/cluso-archmodel/pkg/validation"
)

// AddNode validates and inserts a new node, returning a copy of it.
func (f *Framework) AddNode(actor Actor, req validation.NodeRequest) (*model.Node, error) {
	const op = "add_node"
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checker.Require(actor.Role, auth.PermMutate); err != nil {
		return nil, f.deny(actor, op, audit.ActionCreate, audit.ResourceNode, req.Name, err)
	}

	if violations := validation.CheckNode(f.state, req, validation.IntentCreate, f.bounds); !violations.OK() {
		return nil, f.reject(actor, op, audit.ActionCreate, audit.ResourceNode, req.Name, violations)
	}

	if err := f.snapshotPrior(actor.Author); err != nil {
		return nil, err
	}

	node := &model.Node{
		Name:        strings.TrimSpace(req.Name),
		Tier:        req.Tier,
		X:           req.X,
		Y:           req.Y,
		Color:       req.Color,
		Description: req.Description,
		Compliance:  req.Compliance,
	}
	if req.Tier == model.TierCapability {
		node.Parent = req.Parent
	}
	if req.RiskScore != nil {
		score := *req.RiskScore
		node.RiskScore = &score
	}
	f.state.Insert(node)

	f.metrics.RecordMutation(op, "success")
	f.syncGauges()
	f.trail.Record(audit.Success(actor.Author, string(actor.Role), audit.ActionCreate, audit.ResourceNode, node.Name))
	f.log.Info("node added",
		logging.NodeName(node.Name),
		logging.TierName(string(node.Tier)),
		logging.Author(actor.Author),
	)
	return node.Clone(), nil
}

// UpdateNode applies an update-in-place to an existing node. Name and tier
// are immutable; everything else in the request replaces the stored values.
func (f *Framework) UpdateNode(actor Actor, req validation.NodeRequest) (*model.Node, error) {
	const op = "update_node"
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checker.Require(actor.Role, auth.PermMutate); err != nil {
		return nil, f.deny(actor, op, audit.ActionUpdate, audit.ResourceNode, req.Name, err)
	}

	if violations := validation.CheckNode(f.state, req, validation.IntentModify, f.bounds); !violations.OK() {
		return nil, f.reject(actor, op, audit.ActionUpdate, audit.ResourceNode, req.Name, violations)
	}

	node, ok := f.state.Lookup(strings.TrimSpace(req.Name))
	if !ok {
		// Unreachable once validation passed; treat as a defect.
		return nil, NewError(op).Node(req.Name).Cause(ErrInvariantViolation).Err()
	}

	if err := f.snapshotPrior(actor.Author); err != nil {
		return nil, err
	}

	node.X = req.X
	node.Y = req.Y
	node.Color = req.Color
	node.Description = req.Description
	node.Compliance = req.Compliance
	if node.Tier == model.TierCapability {
		node.Parent = req.Parent
	}
	node.RiskScore = nil
	if req.RiskScore != nil {
		score := *req.RiskScore
		node.RiskScore = &score
	}

	f.metrics.RecordMutation(op, "success")
	f.trail.Record(audit.Success(actor.Author, string(actor.Role), audit.ActionUpdate, audit.ResourceNode, node.Name))
	f.log.Info("node updated", logging.NodeName(node.Name), logging.Author(actor.Author))
	return node.Clone(), nil
}

// MoveNode updates a node's coordinates in place; identity is preserved and
// only the bounds are validated.
func (f *Framework) MoveNode(actor Actor, name string, x, y float64) (*model.Node, error) {
	const op = "move_node"
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checker.Require(actor.Role, auth.PermMutate); err != nil {
		return nil, f.deny(actor, op, audit.ActionMove, audit.ResourceNode, name, err)
	}

	node, ok := f.state.Lookup(name)
	if !ok {
		err := NewError(op).Node(name).Cause(ErrNodeNotFound).Err()
		f.metrics.RecordMutation(op, "not_found")
		f.trail.Record(audit.Failure(actor.Author, string(actor.Role), audit.ActionMove, audit.ResourceNode, name, err.Error()))
		return nil, err
	}

	if violations := validation.CheckMove(f.state, name, x, y, f.bounds); !violations.OK() {
		return nil, f.reject(actor, op, audit.ActionMove, audit.ResourceNode, name, violations)
	}

	if err := f.snapshotPrior(actor.Author); err != nil {
		return nil, err
	}

	node.X = x
	node.Y = y

	f.metrics.RecordMutation(op, "success")
	f.trail.Record(audit.Success(actor.Author, string(actor.Role), audit.ActionMove, audit.ResourceNode, name))
	f.log.Info("node moved",
		logging.NodeName(name),
		logging.Float64("x", x),
		logging.Float64("y", y),
		logging.Author(actor.Author),
	)
	return node.Clone(), nil
}

// Connect appends the undirected connection (a,b).
func (f *Framework) Connect(actor Actor, a, b string) error {
	const op = "connect"
	edgeID := a + "--" + b
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checker.Require(actor.Role, auth.PermMutate); err != nil {
		return f.deny(actor, op, audit.ActionConnect, audit.ResourceEdge, edgeID, err)
	}

	if violations := validation.CheckEdge(f.state, a, b); !violations.OK() {
		return f.reject(actor, op, audit.ActionConnect, audit.ResourceEdge, edgeID, violations)
	}

	if err := f.snapshotPrior(actor.Author); err != nil {
		return err
	}

	f.state.AddEdge(a, b)

	f.metrics.RecordMutation(op, "success")
	f.syncGauges()
	f.trail.Record(audit.Success(actor.Author, string(actor.Role), audit.ActionConnect, audit.ResourceEdge, edgeID))
	f.log.Info("nodes connected", logging.String("a", a), logging.String("b", b), logging.Author(actor.Author))
	return nil
}

// Disconnect removes the connection matching (a,b) in either orientation.
func (f *Framework) Disconnect(actor Actor, a, b string) error {
	const op = "disconnect"
	edgeID := a + "--" + b
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checker.Require(actor.Role, auth.PermMutate); err != nil {
		return f.deny(actor, op, audit.ActionDisconnect, audit.ResourceEdge, edgeID, err)
	}

	if !f.state.HasEdge(a, b) {
		err := NewError(op).Edge(a, b).Cause(ErrEdgeNotFound).Err()
		f.metrics.RecordMutation(op, "not_found")
		f.trail.Record(audit.Failure(actor.Author, string(actor.Role), audit.ActionDisconnect, audit.ResourceEdge, edgeID, err.Error()))
		return err
	}

	if err := f.snapshotPrior(actor.Author); err != nil {
		return err
	}

	if !f.state.RemoveEdge(a, b) {
		return NewError(op).Edge(a, b).Cause(ErrInvariantViolation).Err()
	}

	f.metrics.RecordMutation(op, "success")
	f.syncGauges()
	f.trail.Record(audit.Success(actor.Author, string(actor.Role), audit.ActionDisconnect, audit.ResourceEdge, edgeID))
	f.log.Info("nodes disconnected", logging.String("a", a), logging.String("b", b), logging.Author(actor.Author))
	return nil
}

// DeleteNode removes a node. Deleting a Domain cascades to every Capability
// parented to it; every edge touching a removed name is dropped. Process
// nodes have no parent link and are never cascaded into. Returns the names
// of all removed nodes.
func (f *Framework) DeleteNode(actor Actor, name string) ([]string, error) {
	const op = "delete_node"
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checker.Require(actor.Role, auth.PermMutate); err != nil {
		return nil, f.deny(actor, op, audit.ActionDelete, audit.ResourceNode, name, err)
	}

	node, ok := f.state.Lookup(name)
	if !ok {
		err := NewError(op).Node(name).Cause(ErrNodeNotFound).Err()
		f.metrics.RecordMutation(op, "not_found")
		f.trail.Record(audit.Failure(actor.Author, string(actor.Role), audit.ActionDelete, audit.ResourceNode, name, err.Error()))
		return nil, err
	}

	if err := f.snapshotPrior(actor.Author); err != nil {
		return nil, err
	}

	removed := []string{name}
	if node.Tier == model.TierDomain {
		for _, child := range f.state.ChildrenOf(name) {
			removed = append(removed, child.Name)
		}
	}
	for _, victim := range removed {
		f.state.Remove(victim)
	}
	droppedEdges := f.state.RemoveEdgesTouching(removed...)

	f.metrics.RecordMutation(op, "success")
	f.syncGauges()
	f.trail.Record(audit.Success(actor.Author, string(actor.Role), audit.ActionDelete, audit.ResourceNode, name))
	f.log.Info("node deleted",
		logging.NodeName(name),
		logging.Int("cascaded", len(removed)-1),
		logging.Int("edges_dropped", droppedEdges),
		logging.Author(actor.Author),
	)
	return removed, nil
}

// RestoreVersion replaces the live state with a copy of the stored version.
// The prior live state is snapshotted first; history is never truncated.
func (f *Framework) RestoreVersion(actor Actor, versionID string) (*model.FrameworkState, error) {
	const op = "restore_version"
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checker.Require(actor.Role, auth.PermRestore); err != nil {
		return nil, f.deny(actor, op, audit.ActionRestore, audit.ResourceVersion, versionID, err)
	}

	restored, err := f.versions.Restore(versionID)
	if err != nil {
		f.metrics.RecordMutation(op, "not_found")
		f.trail.Record(audit.Failure(actor.Author, string(actor.Role), audit.ActionRestore, audit.ResourceVersion, versionID, err.Error()))
		return nil, err
	}

	if err := f.snapshotPrior(actor.Author); err != nil {
		return nil, err
	}

	f.state = restored

	f.metrics.RecordRestore()
	f.syncGauges()
	f.trail.Record(audit.Success(actor.Author, string(actor.Role), audit.ActionRestore, audit.ResourceVersion, versionID))
	f.log.Info("version restored", logging.VersionID(versionID), logging.Author(actor.Author))
	return restored.Clone(), nil
}

// ResetHistory discards the whole version history.
func (f *Framework) ResetHistory(actor Actor) error {
	const op = "reset_history"
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checker.Require(actor.Role, auth.PermRestore); err != nil {
		return f.deny(actor, op, audit.ActionRestore, audit.ResourceVersion, "", err)
	}

	f.versions.Reset()
	f.log.Info("version history reset", logging.Author(actor.Author))
	return nil
}

// ExportFormat selects an export serialization.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
	ExportXML  ExportFormat = "xml"
)

// Export serializes the current state in the requested format.
func (f *Framework) Export(actor Actor, format ExportFormat) (string, error) {
	const op = "export"
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checker.Require(actor.Role, auth.PermExport); err != nil {
		return "", f.deny(actor, op, audit.ActionExport, audit.ResourceState, string(format), err)
	}

	var out string
	var err error
	switch format {
	case ExportJSON:
		out, err = export.ToJSON(f.state)
	case ExportCSV:
		out, err = export.ToCSV(f.state)
	case ExportXML:
		out, err = export.ToXML(f.state)
	default:
		violations := validation.Violations{"unknown export format " + string(format)}
		return "", f.reject(actor, op, audit.ActionExport, audit.ResourceState, string(format), violations)
	}
	if err != nil {
		// Only validated states reach the exporter, so this is fatal.
		f.log.Error("export failed", logging.String("format", string(format)), logging.Error(err))
		f.trail.Record(audit.Failure(actor.Author, string(actor.Role), audit.ActionExport, audit.ResourceState, string(format), err.Error()))
		return "", err
	}

	f.metrics.RecordExport(string(format))
	f.trail.Record(audit.Success(actor.Author, string(actor.Role), audit.ActionExport, audit.ResourceState, string(format)))
	f.log.Info("state exported", logging.String("format", string(format)), logging.Author(actor.Author))
	return out, nil
}

// ImportJSON replaces the live state with one rebuilt from a JSON export.
// The imported document is fully re-validated; the prior state is
// snapshotted before the swap.
func (f *Framework) ImportJSON(actor Actor, data []byte) error {
	const op = "import_json"
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checker.Require(actor.Role, auth.PermMutate); err != nil {
		return f.deny(actor, op, audit.ActionUpdate, audit.ResourceState, "json", err)
	}

	imported, err := export.FromJSON(data, f.bounds)
	if err != nil {
		f.metrics.RecordMutation(op, "rejected")
		f.trail.Record(audit.Failure(actor.Author, string(actor.Role), audit.ActionUpdate, audit.ResourceState, "json", err.Error()))
		return err
	}

	if err := f.snapshotPrior(actor.Author); err != nil {
		return err
	}

	f.state = imported

	f.metrics.RecordMutation(op, "success")
	f.syncGauges()
	f.trail.Record(audit.Success(actor.Author, string(actor.Role), audit.ActionUpdate, audit.ResourceState, "json"))
	f.log.Info("state imported",
		logging.Int("nodes", imported.NodeCount()),
		logging.Int("edges", imported.EdgeCount()),
		logging.Author(actor.Author),
	)
	return nil
}
