package model

import "strings"

// Tier identifies which of the three framework layers a node belongs to.
type Tier string

const (
	TierDomain     Tier = "Domain"     // top-tier security capability area
	TierCapability Tier = "Capability" // second-tier, always parented to a Domain
	TierProcess    Tier = "Process"    // third-tier operational node, unparented
)

// Tiers lists all tiers in display order (top to bottom).
var Tiers = []Tier{TierDomain, TierCapability, TierProcess}

// Valid reports whether t is one of the three known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierDomain, TierCapability, TierProcess:
		return true
	}
	return false
}

// ParseTier maps a tier name onto its canonical constant, ignoring case.
func ParseTier(s string) (Tier, bool) {
	for _, t := range Tiers {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Node is a vertex in the framework graph. The name is the primary key and
// is unique across all three tiers simultaneously.
type Node struct {
	Name        string   `json:"name"`
	Tier        Tier     `json:"tier"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Color       string   `json:"color"`
	Description string   `json:"description,omitempty"`
	Parent      string   `json:"parent,omitempty"`     // Capability only: owning Domain name
	RiskScore   *float64 `json:"risk_score,omitempty"` // optional, 0.0-1.0
	Compliance  string   `json:"compliance,omitempty"` // optional framework tag, e.g. "ISO27001"
}

// Clone creates a deep copy of a node.
func (n *Node) Clone() *Node {
	clone := *n
	if n.RiskScore != nil {
		score := *n.RiskScore
		clone.RiskScore = &score
	}
	return &clone
}

// Edge is an undirected connection between two named nodes.
type Edge struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Touches reports whether either endpoint equals name.
func (e Edge) Touches(name string) bool {
	return e.A == name || e.B == name
}

// Matches reports whether the edge connects a and b in either orientation.
func (e Edge) Matches(a, b string) bool {
	return (e.A == a && e.B == b) || (e.A == b && e.B == a)
}
