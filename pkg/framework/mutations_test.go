package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-archmodel/pkg/model"
	"github.com/dd0wney/cluso-archmodel/pkg/validation"
)

func TestAddNodeGrowsCatalogByOne(t *testing.T) {
	f := seedFramework(t)
	before := len(f.AllNames())

	n, err := f.AddNode(architect, validation.NodeRequest{
		Name: "  Masking  ", Tier: model.TierProcess, X: 1, Y: 2, Color: "#60a5fa",
	})
	require.NoError(t, err)
	assert.Equal(t, "Masking", n.Name, "name is trimmed before insertion")
	assert.Equal(t, before+1, len(f.AllNames()))
}

func TestAddDuplicateCapabilityName(t *testing.T) {
	f := seedFramework(t)

	// Same name, different coordinates: must fail with a uniqueness violation.
	_, err := f.AddNode(architect, validation.NodeRequest{
		Name: "Auth", Tier: model.TierCapability, X: 2, Y: 4, Parent: "Data Security",
	})
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Contains(t, ve.Violations.String(), "already exists")
}

func TestConnectDuplicateEitherOrientation(t *testing.T) {
	f := newFramework(t)
	_, err := f.AddNode(architect, validation.NodeRequest{Name: "Data Security", Tier: model.TierDomain, X: 1, Y: 5})
	require.NoError(t, err)
	_, err = f.AddNode(architect, validation.NodeRequest{Name: "Auth", Tier: model.TierCapability, X: 1, Y: 4, Parent: "Data Security"})
	require.NoError(t, err)

	require.NoError(t, f.Connect(architect, "Data Security", "Auth"))

	err = f.Connect(architect, "Auth", "Data Security")
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Violations.String(), "already exists")
}

func TestMoveNodeOutOfBoundsLeavesPositionUnchanged(t *testing.T) {
	f := seedFramework(t)

	_, err := f.MoveNode(architect, "Data Security", 11, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))

	n, ok := f.Lookup("Data Security")
	require.True(t, ok)
	assert.Equal(t, 1.0, n.X)
	assert.Equal(t, 5.0, n.Y)
}

func TestMoveNodeUpdatesInPlace(t *testing.T) {
	f := seedFramework(t)

	moved, err := f.MoveNode(architect, "Encryption", 3, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 3.0, moved.X)
	assert.Equal(t, 1.5, moved.Y)
	assert.Equal(t, model.TierProcess, moved.Tier)

	// Connections survive a move.
	assert.Equal(t, 1, f.ConnectionCount("Encryption"))
}

func TestMoveMissingNode(t *testing.T) {
	f := seedFramework(t)
	_, err := f.MoveNode(architect, "Ghost", 1, 1)
	assert.True(t, errors.Is(err, ErrNodeNotFound))
	assert.True(t, IsNotFound(err))
}

func TestDisconnectReversedOrientation(t *testing.T) {
	f := seedFramework(t)

	require.NoError(t, f.Disconnect(architect, "Encryption", "Auth"))
	assert.Equal(t, 0, f.ConnectionCount("Encryption"))

	err := f.Disconnect(architect, "Encryption", "Auth")
	assert.True(t, errors.Is(err, ErrEdgeNotFound))
}

func TestDomainDeletionCascades(t *testing.T) {
	// Domain "Data Security" has one child "Auth", which is connected to
	// process "Encryption". After deleting the domain: the child and every
	// touched edge are gone, the process itself survives.
	f := seedFramework(t)

	removed, err := f.DeleteNode(architect, "Data Security")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Data Security", "Auth"}, removed)

	_, ok := f.Lookup("Auth")
	assert.False(t, ok)
	_, ok = f.Lookup("Encryption")
	assert.True(t, ok, "cascade never reaches process nodes")

	state := f.StateCopy()
	assert.Equal(t, 0, state.EdgeCount())
	for _, e := range state.Edges {
		_, aOK := state.Lookup(e.A)
		_, bOK := state.Lookup(e.B)
		assert.True(t, aOK && bOK, "no edge may reference a deleted name")
	}
}

func TestDeleteCapabilityDoesNotCascade(t *testing.T) {
	f := seedFramework(t)

	removed, err := f.DeleteNode(architect, "Auth")
	require.NoError(t, err)
	assert.Equal(t, []string{"Auth"}, removed)

	_, ok := f.Lookup("Data Security")
	assert.True(t, ok)
	assert.Equal(t, 0, f.ConnectionCount("Data Security"))
	assert.Equal(t, 0, f.ConnectionCount("Encryption"))
}

func TestUpdateNodePreservesIdentity(t *testing.T) {
	f := seedFramework(t)
	risk := 0.8

	updated, err := f.UpdateNode(architect, validation.NodeRequest{
		Name:        "Auth",
		Tier:        model.TierCapability,
		X:           2,
		Y:           3.5,
		Color:       "#f87171",
		Description: "verifies identity",
		Parent:      "Data Security",
		RiskScore:   &risk,
		Compliance:  "SOC2",
	})
	require.NoError(t, err)
	assert.Equal(t, "#f87171", updated.Color)
	assert.Equal(t, "SOC2", updated.Compliance)
	require.NotNil(t, updated.RiskScore)
	assert.Equal(t, 0.8, *updated.RiskScore)

	// Still one node of that name, connections intact.
	assert.Equal(t, 2, f.ConnectionCount("Auth"))
}

func TestUpdateMissingNode(t *testing.T) {
	f := seedFramework(t)
	_, err := f.UpdateNode(architect, validation.NodeRequest{
		Name: "Ghost", Tier: model.TierProcess, X: 1, Y: 1,
	})
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Violations.String(), "does not exist")
}

func TestRejectedMutationIsAtomic(t *testing.T) {
	f := seedFramework(t)
	before := f.StateCopy()
	versionsBefore := len(f.Versions())

	// Multiple violations at once; nothing may be partially applied.
	_, err := f.AddNode(architect, validation.NodeRequest{
		Name: "Auth", Tier: model.TierCapability, X: -5, Y: 9,
	})
	require.Error(t, err)
	ve, _ := AsValidationError(err)
	assert.GreaterOrEqual(t, len(ve.Violations), 3)

	assert.True(t, before.Equal(f.StateCopy()))
	assert.Equal(t, versionsBefore, len(f.Versions()))
}
