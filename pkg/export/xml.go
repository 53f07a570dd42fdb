package export

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-archmodel/pkg/analytics"
	"github.com/dd0wney/cluso-archmodel/pkg/model"
)

// xmlNode mirrors the CSV columns as element attributes.
type xmlNode struct {
	Name        string   `xml:"name,attr"`
	X           float64  `xml:"x,attr"`
	Y           float64  `xml:"y,attr"`
	Color       string   `xml:"color,attr"`
	Parent      string   `xml:"parent,attr,omitempty"`
	Connections int      `xml:"connections,attr"`
	Description string   `xml:"description,attr,omitempty"`
	RiskScore   *float64 `xml:"riskScore,attr,omitempty"`
	Compliance  string   `xml:"compliance,attr,omitempty"`
}

type xmlConnection struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

type xmlSection struct {
	Nodes []xmlNode `xml:"Node"`
}

type xmlConnections struct {
	Connections []xmlConnection `xml:"Connection"`
}

// xmlDocument is the hierarchical export layout.
type xmlDocument struct {
	XMLName        xml.Name       `xml:"SecurityFramework"`
	Generated      string         `xml:"generated,attr"`
	Version        string         `xml:"version,attr"`
	MainDomains    xmlSection     `xml:"MainDomains"`
	SecondaryNodes xmlSection     `xml:"SecondaryNodes"`
	ProcessNodes   xmlSection     `xml:"ProcessNodes"`
	Connections    xmlConnections `xml:"Connections"`
}

func toXMLSection(state *model.FrameworkState, tier model.Tier) xmlSection {
	section := xmlSection{Nodes: make([]xmlNode, 0)}
	for _, n := range state.NodesByTier(tier) {
		node := xmlNode{
			Name:        n.Name,
			X:           n.X,
			Y:           n.Y,
			Color:       n.Color,
			Parent:      n.Parent,
			Connections: analytics.ConnectionCount(state, n.Name),
			Description: n.Description,
			Compliance:  n.Compliance,
		}
		if n.RiskScore != nil {
			score := *n.RiskScore
			node.RiskScore = &score
		}
		section.Nodes = append(section.Nodes, node)
	}
	return section
}

// ToXML serializes the state as a hierarchical XML document with one section
// per tier plus the connection list.
func ToXML(state *model.FrameworkState) (string, error) {
	doc := xmlDocument{
		Generated:      time.Now().Format(DateLayout),
		Version:        FormatVersion,
		MainDomains:    toXMLSection(state, model.TierDomain),
		SecondaryNodes: toXMLSection(state, model.TierCapability),
		ProcessNodes:   toXMLSection(state, model.TierProcess),
		Connections:    xmlConnections{Connections: make([]xmlConnection, 0, len(state.Edges))},
	}
	for _, e := range state.Edges {
		doc.Connections.Connections = append(doc.Connections.Connections, xmlConnection{Source: e.A, Target: e.B})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal framework XML export: %w", err)
	}
	return xml.Header + string(data), nil
}
