// Package export serializes a framework state to JSON, CSV, or XML, and
// rebuilds a validated state from the JSON form. Only validated states are
// ever exported, so a serialization failure is fatal, never partial output.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-archmodel/pkg/model"
	"github.com/dd0wney/cluso-archmodel/pkg/validation"
)

// FormatVersion is the persisted layout version, carried over from the
// dashboard exports this layout is compatible with.
const FormatVersion = "3.0"

// DateLayout is the generated_date timestamp layout.
const DateLayout = "2006-01-02 15:04:05"

// jsonNode is a node's attributes as persisted; the name is the map key.
type jsonNode struct {
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Color       string   `json:"color"`
	Description string   `json:"description,omitempty"`
	Parent      string   `json:"parent,omitempty"`
	RiskScore   *float64 `json:"risk_score,omitempty"`
	Compliance  string   `json:"compliance,omitempty"`
}

// jsonDocument is the persisted layout: three name-keyed tier maps, the
// connection list as 2-element name pairs, and export metadata.
type jsonDocument struct {
	MainDomains    map[string]jsonNode `json:"main_domains"`
	SecondaryNodes map[string]jsonNode `json:"secondary_nodes"`
	ProcessNodes   map[string]jsonNode `json:"process_nodes"`
	Connections    [][2]string         `json:"connections"`
	GeneratedDate  string              `json:"generated_date"`
	Version        string              `json:"version"`
}

func toJSONNode(n *model.Node) jsonNode {
	out := jsonNode{
		X:           n.X,
		Y:           n.Y,
		Color:       n.Color,
		Description: n.Description,
		Parent:      n.Parent,
		Compliance:  n.Compliance,
	}
	if n.RiskScore != nil {
		score := *n.RiskScore
		out.RiskScore = &score
	}
	return out
}

// ToJSON serializes the full state as an indented JSON document.
func ToJSON(state *model.FrameworkState) (string, error) {
	doc := jsonDocument{
		MainDomains:    make(map[string]jsonNode, len(state.Domains)),
		SecondaryNodes: make(map[string]jsonNode, len(state.Capabilities)),
		ProcessNodes:   make(map[string]jsonNode, len(state.Processes)),
		Connections:    make([][2]string, 0, len(state.Edges)),
		GeneratedDate:  time.Now().Format(DateLayout),
		Version:        FormatVersion,
	}

	for name, n := range state.Domains {
		doc.MainDomains[name] = toJSONNode(n)
	}
	for name, n := range state.Capabilities {
		doc.SecondaryNodes[name] = toJSONNode(n)
	}
	for name, n := range state.Processes {
		doc.ProcessNodes[name] = toJSONNode(n)
	}
	for _, e := range state.Edges {
		doc.Connections = append(doc.Connections, [2]string{e.A, e.B})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal framework export: %w", err)
	}
	return string(data), nil
}

// FromJSON rebuilds a framework state from a JSON export. The rebuilt state
// is validated in full against the given plane bounds; a document that
// violates any graph invariant is rejected with every violation listed.
func FromJSON(data []byte, bounds validation.Bounds) (*model.FrameworkState, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse framework export: %w", err)
	}

	state := model.NewFrameworkState()
	insert := func(name string, tier model.Tier, jn jsonNode) {
		node := &model.Node{
			Name:        name,
			Tier:        tier,
			X:           jn.X,
			Y:           jn.Y,
			Color:       jn.Color,
			Description: jn.Description,
			Parent:      jn.Parent,
			Compliance:  jn.Compliance,
		}
		if jn.RiskScore != nil {
			score := *jn.RiskScore
			node.RiskScore = &score
		}
		state.Insert(node)
	}

	for name, jn := range doc.MainDomains {
		insert(name, model.TierDomain, jn)
	}
	for name, jn := range doc.SecondaryNodes {
		insert(name, model.TierCapability, jn)
	}
	for name, jn := range doc.ProcessNodes {
		insert(name, model.TierProcess, jn)
	}
	for _, pair := range doc.Connections {
		state.AddEdge(pair[0], pair[1])
	}

	if violations := validation.CheckState(state, bounds); !violations.OK() {
		return nil, fmt.Errorf("imported state is invalid: %s", violations)
	}
	return state, nil
}
