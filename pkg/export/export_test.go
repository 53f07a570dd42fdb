package export

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-archmodel/pkg/model"
	"github.com/dd0wney/cluso-archmodel/pkg/validation"
)

func exportState() *model.FrameworkState {
	risk := 0.6
	s := model.NewFrameworkState()
	s.Insert(&model.Node{Name: "Data Security", Tier: model.TierDomain, X: 1, Y: 5, Color: "#1e3a8a", Description: "Protects data assets"})
	s.Insert(&model.Node{Name: "IAM", Tier: model.TierDomain, X: 3, Y: 5, Color: "#1e3a8a"})
	s.Insert(&model.Node{Name: "Auth", Tier: model.TierCapability, X: 1, Y: 4, Color: "#3b82f6", Parent: "Data Security", RiskScore: &risk, Compliance: "ISO27001"})
	s.Insert(&model.Node{Name: "Encryption", Tier: model.TierProcess, X: 0.5, Y: 2, Color: "#60a5fa", Description: "Secures data with encryption"})
	s.AddEdge("Data Security", "Auth")
	s.AddEdge("Auth", "Encryption")
	return s
}

func TestJSONRoundTrip(t *testing.T) {
	state := exportState()

	out, err := ToJSON(state)
	require.NoError(t, err)

	rebuilt, err := FromJSON([]byte(out), validation.DefaultBounds)
	require.NoError(t, err)
	assert.True(t, state.Equal(rebuilt), "FromJSON(ToJSON(state)) must equal state")
}

func TestJSONLayout(t *testing.T) {
	out, err := ToJSON(exportState())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	for _, key := range []string{"main_domains", "secondary_nodes", "process_nodes", "connections", "generated_date", "version"} {
		assert.Contains(t, doc, key)
	}

	var version string
	require.NoError(t, json.Unmarshal(doc["version"], &version))
	assert.Equal(t, FormatVersion, version)

	var pairs [][2]string
	require.NoError(t, json.Unmarshal(doc["connections"], &pairs))
	assert.Len(t, pairs, 2)
}

func TestFromJSONHonorsCustomBounds(t *testing.T) {
	wide := validation.Bounds{MaxX: 20, MaxY: 10}
	state := model.NewFrameworkState()
	state.Insert(&model.Node{Name: "Perimeter", Tier: model.TierDomain, X: 15, Y: 8, Color: "#1e3a8a"})

	out, err := ToJSON(state)
	require.NoError(t, err)

	// Valid on the wide plane the state was built for.
	rebuilt, err := FromJSON([]byte(out), wide)
	require.NoError(t, err)
	assert.True(t, state.Equal(rebuilt))

	// The same document is out of bounds on the default plane.
	_, err = FromJSON([]byte(out), validation.DefaultBounds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x coordinate")
}

func TestFromJSONRejectsInvalidState(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantSubstr string
	}{
		{
			name:       "dangling parent",
			doc:        `{"main_domains":{},"secondary_nodes":{"Auth":{"x":1,"y":4,"parent":"Ghost"}},"process_nodes":{},"connections":[]}`,
			wantSubstr: "missing parent domain",
		},
		{
			name:       "edge to missing node",
			doc:        `{"main_domains":{"D":{"x":1,"y":5}},"secondary_nodes":{},"process_nodes":{},"connections":[["D","Ghost"]]}`,
			wantSubstr: `missing node "Ghost"`,
		},
		{
			name:       "out of bounds",
			doc:        `{"main_domains":{"D":{"x":42,"y":5}},"secondary_nodes":{},"process_nodes":{},"connections":[]}`,
			wantSubstr: "x coordinate",
		},
		{
			name:       "cross-tier duplicate",
			doc:        `{"main_domains":{"D":{"x":1,"y":5}},"secondary_nodes":{},"process_nodes":{"D":{"x":1,"y":2}},"connections":[]}`,
			wantSubstr: "appears in both",
		},
		{
			name:       "malformed document",
			doc:        `{"main_domains": 7}`,
			wantSubstr: "parse framework export",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tt.doc), validation.DefaultBounds)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSubstr)
		})
	}
}

func TestToCSV(t *testing.T) {
	out, err := ToCSV(exportState())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5) // header + 4 nodes

	assert.Equal(t, []string{"Node", "Type", "X", "Y", "Color", "Parent", "Connections", "Description", "RiskScore", "Compliance"}, records[0])

	// Domains first (alphabetical), then capabilities, then processes.
	assert.Equal(t, "Data Security", records[1][0])
	assert.Equal(t, "Main Domain", records[1][1])
	assert.Equal(t, "IAM", records[2][0])
	assert.Equal(t, "Auth", records[3][0])
	assert.Equal(t, "Secondary", records[3][1])
	assert.Equal(t, "Data Security", records[3][5])
	assert.Equal(t, "2", records[3][6]) // Auth touches two edges
	assert.Equal(t, "0.6", records[3][8])
	assert.Equal(t, "ISO27001", records[3][9])
	assert.Equal(t, "Encryption", records[4][0])
	assert.Equal(t, "Process", records[4][1])
	assert.Equal(t, "", records[4][5])
}

func TestToXMLParsesBack(t *testing.T) {
	out, err := ToXML(exportState())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, xml.Header))

	var doc xmlDocument
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))

	assert.Equal(t, FormatVersion, doc.Version)
	require.Len(t, doc.MainDomains.Nodes, 2)
	require.Len(t, doc.SecondaryNodes.Nodes, 1)
	require.Len(t, doc.ProcessNodes.Nodes, 1)
	require.Len(t, doc.Connections.Connections, 2)

	auth := doc.SecondaryNodes.Nodes[0]
	assert.Equal(t, "Auth", auth.Name)
	assert.Equal(t, "Data Security", auth.Parent)
	assert.Equal(t, 2, auth.Connections)
	require.NotNil(t, auth.RiskScore)
	assert.Equal(t, 0.6, *auth.RiskScore)
}

func TestEmptyStateExports(t *testing.T) {
	state := model.NewFrameworkState()

	jsonOut, err := ToJSON(state)
	require.NoError(t, err)
	rebuilt, err := FromJSON([]byte(jsonOut), validation.DefaultBounds)
	require.NoError(t, err)
	assert.Equal(t, 0, rebuilt.NodeCount())

	csvOut, err := ToCSV(state)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(csvOut), "\n")+1) // header only

	_, err = ToXML(state)
	require.NoError(t, err)
}
