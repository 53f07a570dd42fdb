package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-archmodel/pkg/audit"
	"github.com/dd0wney/cluso-archmodel/pkg/auth"
	"github.com/dd0wney/cluso-archmodel/pkg/model"
	"github.com/dd0wney/cluso-archmodel/pkg/validation"
)

var (
	architect = Actor{Author: "alice", Role: auth.RoleArchitect}
	admin     = Actor{Author: "root", Role: auth.RoleAdmin}
	viewer    = Actor{Author: "eve", Role: auth.RoleViewer}
)

func newFramework(t *testing.T) *Framework {
	t.Helper()
	return New(Config{})
}

// seedFramework builds the domain/capability/process triangle used across
// the tests: Data Security <- Auth, Auth -- Encryption.
func seedFramework(t *testing.T) *Framework {
	t.Helper()
	f := newFramework(t)

	_, err := f.AddNode(architect, validation.NodeRequest{
		Name: "Data Security", Tier: model.TierDomain, X: 1, Y: 5, Color: "#1e3a8a",
	})
	require.NoError(t, err)

	_, err = f.AddNode(architect, validation.NodeRequest{
		Name: "Auth", Tier: model.TierCapability, X: 1, Y: 4, Color: "#3b82f6", Parent: "Data Security",
	})
	require.NoError(t, err)

	_, err = f.AddNode(architect, validation.NodeRequest{
		Name: "Encryption", Tier: model.TierProcess, X: 0.5, Y: 2, Color: "#60a5fa",
	})
	require.NoError(t, err)

	require.NoError(t, f.Connect(architect, "Data Security", "Auth"))
	require.NoError(t, f.Connect(architect, "Auth", "Encryption"))
	return f
}

func TestQueriesReturnCopies(t *testing.T) {
	f := seedFramework(t)

	n, ok := f.Lookup("Auth")
	require.True(t, ok)
	n.X = 99 // must not reach the live state

	again, _ := f.Lookup("Auth")
	assert.Equal(t, 1.0, again.X)

	children := f.ChildrenOf("Data Security")
	require.Len(t, children, 1)
	children[0].Description = "tampered"
	fresh := f.ChildrenOf("Data Security")
	assert.Empty(t, fresh[0].Description)
}

func TestAllNames(t *testing.T) {
	f := seedFramework(t)
	assert.Equal(t, []string{"Auth", "Data Security", "Encryption"}, f.AllNames())
}

func TestConnectionMatrixSymmetric(t *testing.T) {
	f := seedFramework(t)
	order, matrix := f.ConnectionMatrix()
	require.Len(t, matrix, len(order))
	for i := range matrix {
		assert.False(t, matrix[i][i])
		for j := range matrix[i] {
			assert.Equal(t, matrix[i][j], matrix[j][i])
		}
	}
}

func TestEverySuccessfulMutationSnapshotsPriorState(t *testing.T) {
	f := newFramework(t)

	_, err := f.AddNode(architect, validation.NodeRequest{Name: "D", Tier: model.TierDomain, X: 1, Y: 5})
	require.NoError(t, err)
	require.Len(t, f.Versions(), 1)

	// The first snapshot captured the empty prior state.
	restored, err := f.RestoreVersion(admin, f.Versions()[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, restored.NodeCount())
}

func TestVersionHistoryMonotonicallyGrows(t *testing.T) {
	f := seedFramework(t)
	before := len(f.Versions())

	_, err := f.MoveNode(architect, "Encryption", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, before+1, len(f.Versions()))

	// A failed mutation takes no snapshot.
	_, err = f.MoveNode(architect, "Encryption", 99, 2)
	require.Error(t, err)
	assert.Equal(t, before+1, len(f.Versions()))

	// Restore appends (prior state snapshot) rather than truncating.
	entries := f.Versions()
	_, err = f.RestoreVersion(admin, entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, before+2, len(f.Versions()))
}

func TestRestoreUnknownVersion(t *testing.T) {
	f := seedFramework(t)
	_, err := f.RestoreVersion(admin, "bogus-id")
	assert.True(t, errors.Is(err, ErrVersionNotFound))
	assert.True(t, IsNotFound(err))
}

func TestRestoreBringsBackDeletedNodes(t *testing.T) {
	f := seedFramework(t)

	_, err := f.DeleteNode(architect, "Data Security")
	require.NoError(t, err)
	_, ok := f.Lookup("Auth")
	require.False(t, ok)

	// The newest entry is the snapshot taken just before the delete.
	versions := f.Versions()
	state, err := f.RestoreVersion(admin, versions[len(versions)-1].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, state.NodeCount())

	n, ok := f.Lookup("Auth")
	require.True(t, ok)
	assert.Equal(t, model.TierCapability, n.Tier)
}

func TestDisabledVersioningTakesNoSnapshots(t *testing.T) {
	f := New(Config{DisableVersioning: true})
	_, err := f.AddNode(architect, validation.NodeRequest{Name: "D", Tier: model.TierDomain, X: 1, Y: 5})
	require.NoError(t, err)
	assert.Empty(t, f.Versions())
}

func TestResetHistory(t *testing.T) {
	f := seedFramework(t)
	require.NotEmpty(t, f.Versions())

	assert.Error(t, f.ResetHistory(architect)) // restore permission required
	require.NoError(t, f.ResetHistory(admin))
	assert.Empty(t, f.Versions())
}

func TestPermissionGate(t *testing.T) {
	f := seedFramework(t)

	_, err := f.AddNode(viewer, validation.NodeRequest{Name: "X", Tier: model.TierDomain, X: 1, Y: 5})
	assert.True(t, errors.Is(err, ErrPermissionDenied))

	err = f.Connect(viewer, "Data Security", "Encryption")
	assert.True(t, errors.Is(err, ErrPermissionDenied))

	_, err = f.Export(viewer, ExportJSON)
	assert.True(t, errors.Is(err, ErrPermissionDenied))

	_, err = f.RestoreVersion(architect, "any") // architect lacks restore
	assert.True(t, errors.Is(err, ErrPermissionDenied))

	// Denied commands leave no trace in state or history.
	_, ok := f.Lookup("X")
	assert.False(t, ok)
}

func TestAuditTrailRecordsOutcomes(t *testing.T) {
	f := seedFramework(t)

	_, err := f.AddNode(architect, validation.NodeRequest{Name: "Auth", Tier: model.TierCapability, X: 1, Y: 4, Parent: "Data Security"})
	require.Error(t, err)

	failures := f.AuditTrail().Events(&audit.Filter{Status: audit.StatusFailure})
	require.NotEmpty(t, failures)
	last := failures[len(failures)-1]
	assert.Equal(t, audit.ActionCreate, last.Action)
	assert.Contains(t, last.Detail, "already exists")
	assert.Equal(t, "alice", last.Author)

	successes := f.AuditTrail().Events(&audit.Filter{Status: audit.StatusSuccess, Action: audit.ActionConnect})
	assert.Len(t, successes, 2)
}

func TestExportSurface(t *testing.T) {
	f := seedFramework(t)

	jsonOut, err := f.Export(architect, ExportJSON)
	require.NoError(t, err)
	assert.Contains(t, jsonOut, "main_domains")

	csvOut, err := f.Export(architect, ExportCSV)
	require.NoError(t, err)
	assert.Contains(t, csvOut, "Data Security")

	xmlOut, err := f.Export(architect, ExportXML)
	require.NoError(t, err)
	assert.Contains(t, xmlOut, "<SecurityFramework")

	_, err = f.Export(architect, ExportFormat("yaml"))
	require.Error(t, err)
	_, isValidation := AsValidationError(err)
	assert.True(t, isValidation)
}

func TestImportJSONRoundTrip(t *testing.T) {
	f := seedFramework(t)
	out, err := f.Export(architect, ExportJSON)
	require.NoError(t, err)

	g := newFramework(t)
	require.NoError(t, g.ImportJSON(architect, []byte(out)))
	assert.True(t, f.StateCopy().Equal(g.StateCopy()))
}

func TestImportJSONRoundTripWithCustomBounds(t *testing.T) {
	// A state exported from a wide-plane framework must import back into an
	// identically configured one, even where it exceeds the default plane.
	bounds := validation.Bounds{MaxX: 20, MaxY: 10}
	f := New(Config{Bounds: bounds})

	_, err := f.AddNode(architect, validation.NodeRequest{
		Name: "Perimeter", Tier: model.TierDomain, X: 15, Y: 8,
	})
	require.NoError(t, err)

	out, err := f.Export(architect, ExportJSON)
	require.NoError(t, err)

	g := New(Config{Bounds: bounds})
	require.NoError(t, g.ImportJSON(architect, []byte(out)))
	assert.True(t, f.StateCopy().Equal(g.StateCopy()))

	// A default-bounds framework still rejects the same document.
	d := newFramework(t)
	err = d.ImportJSON(architect, []byte(out))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x coordinate")
}

func TestImportJSONRejectsInvalid(t *testing.T) {
	f := seedFramework(t)
	before := f.StateCopy()

	err := f.ImportJSON(architect, []byte(`{"main_domains":{"D":{"x":99,"y":5}}}`))
	require.Error(t, err)
	assert.True(t, before.Equal(f.StateCopy()), "failed import must not change state")
}
