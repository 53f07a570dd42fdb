package model

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FrameworkState is the aggregate graph state: the node catalog (one map per
// tier) plus the undirected connection set. The live instance is owned by a
// single mutator; version entries hold deep copies made with Clone.
type FrameworkState struct {
	Domains      map[string]*Node `json:"main_domains"`
	Capabilities map[string]*Node `json:"secondary_nodes"`
	Processes    map[string]*Node `json:"process_nodes"`
	Edges        []Edge           `json:"connections"`
}

// NewFrameworkState creates an empty state.
func NewFrameworkState() *FrameworkState {
	return &FrameworkState{
		Domains:      make(map[string]*Node),
		Capabilities: make(map[string]*Node),
		Processes:    make(map[string]*Node),
		Edges:        make([]Edge, 0),
	}
}

// tierMap returns the catalog map for the given tier, or nil for an unknown tier.
func (s *FrameworkState) tierMap(t Tier) map[string]*Node {
	switch t {
	case TierDomain:
		return s.Domains
	case TierCapability:
		return s.Capabilities
	case TierProcess:
		return s.Processes
	}
	return nil
}

// Lookup searches all three tiers for a node by name. A name exists in at
// most one tier; the first (and only) hit is returned.
func (s *FrameworkState) Lookup(name string) (*Node, bool) {
	for _, t := range Tiers {
		if n, ok := s.tierMap(t)[name]; ok {
			return n, true
		}
	}
	return nil, false
}

// AllNames returns every node name across all tiers, sorted.
func (s *FrameworkState) AllNames() []string {
	names := make([]string, 0, s.NodeCount())
	names = append(names, maps.Keys(s.Domains)...)
	names = append(names, maps.Keys(s.Capabilities)...)
	names = append(names, maps.Keys(s.Processes)...)
	slices.Sort(names)
	return names
}

// ChildrenOf returns the Capability nodes parented to the given Domain,
// ordered by name.
func (s *FrameworkState) ChildrenOf(domainName string) []*Node {
	children := make([]*Node, 0)
	for _, n := range s.Capabilities {
		if n.Parent == domainName {
			children = append(children, n)
		}
	}
	slices.SortFunc(children, func(a, b *Node) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return children
}

// NodesByTier returns the nodes of one tier, ordered by name.
func (s *FrameworkState) NodesByTier(t Tier) []*Node {
	m := s.tierMap(t)
	names := maps.Keys(m)
	slices.Sort(names)
	nodes := make([]*Node, 0, len(names))
	for _, name := range names {
		nodes = append(nodes, m[name])
	}
	return nodes
}

// HasEdge reports whether (a,b) is connected in either orientation.
func (s *FrameworkState) HasEdge(a, b string) bool {
	for _, e := range s.Edges {
		if e.Matches(a, b) {
			return true
		}
	}
	return false
}

// NodeCount returns the total number of nodes across all tiers.
func (s *FrameworkState) NodeCount() int {
	return len(s.Domains) + len(s.Capabilities) + len(s.Processes)
}

// EdgeCount returns the number of connections.
func (s *FrameworkState) EdgeCount() int {
	return len(s.Edges)
}

// Insert adds a node to the catalog map for its tier. The caller is
// responsible for validating the node first.
func (s *FrameworkState) Insert(n *Node) {
	if m := s.tierMap(n.Tier); m != nil {
		m[n.Name] = n
	}
}

// Remove deletes a node by name from whichever tier holds it and reports
// whether a node was removed. Edges are not touched; cascade logic belongs
// to the mutator.
func (s *FrameworkState) Remove(name string) bool {
	for _, t := range Tiers {
		m := s.tierMap(t)
		if _, ok := m[name]; ok {
			delete(m, name)
			return true
		}
	}
	return false
}

// AddEdge appends the connection (a,b). Duplicate detection is the
// validator's job.
func (s *FrameworkState) AddEdge(a, b string) {
	s.Edges = append(s.Edges, Edge{A: a, B: b})
}

// RemoveEdge removes the connection matching (a,b) in either orientation and
// reports whether an edge was removed.
func (s *FrameworkState) RemoveEdge(a, b string) bool {
	for i, e := range s.Edges {
		if e.Matches(a, b) {
			s.Edges = append(s.Edges[:i], s.Edges[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveEdgesTouching removes every edge with an endpoint in names and
// returns how many were removed.
func (s *FrameworkState) RemoveEdgesTouching(names ...string) int {
	removed := 0
	kept := s.Edges[:0]
	for _, e := range s.Edges {
		touched := false
		for _, name := range names {
			if e.Touches(name) {
				touched = true
				break
			}
		}
		if touched {
			removed++
		} else {
			kept = append(kept, e)
		}
	}
	s.Edges = kept
	return removed
}

// Clone creates a deep copy of the whole state. Later edits to the live
// catalog never reach the copy.
func (s *FrameworkState) Clone() *FrameworkState {
	clone := NewFrameworkState()
	for _, t := range Tiers {
		src, dst := s.tierMap(t), clone.tierMap(t)
		for name, n := range src {
			dst[name] = n.Clone()
		}
	}
	clone.Edges = make([]Edge, len(s.Edges))
	copy(clone.Edges, s.Edges)
	return clone
}

// Equal reports whether two states hold the same nodes and the same edge set
// (edge order and orientation insensitive).
func (s *FrameworkState) Equal(other *FrameworkState) bool {
	if other == nil {
		return false
	}
	for _, t := range Tiers {
		a, b := s.tierMap(t), other.tierMap(t)
		if len(a) != len(b) {
			return false
		}
		for name, n := range a {
			o, ok := b[name]
			if !ok || !nodeEqual(n, o) {
				return false
			}
		}
	}
	if len(s.Edges) != len(other.Edges) {
		return false
	}
	for _, e := range s.Edges {
		if !other.HasEdge(e.A, e.B) {
			return false
		}
	}
	return true
}

func nodeEqual(a, b *Node) bool {
	if a.Name != b.Name || a.Tier != b.Tier || a.X != b.X || a.Y != b.Y ||
		a.Color != b.Color || a.Description != b.Description ||
		a.Parent != b.Parent || a.Compliance != b.Compliance {
		return false
	}
	if (a.RiskScore == nil) != (b.RiskScore == nil) {
		return false
	}
	if a.RiskScore != nil && *a.RiskScore != *b.RiskScore {
		return false
	}
	return true
}
