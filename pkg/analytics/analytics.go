// Package analytics computes derived read-only views over a framework state:
// the connection matrix, per-node connection counts, and per-domain
// summaries. Nothing here mutates or caches.
package analytics

import (
	"golang.org/x/exp/slices"

	"github.com/dd0wney/cluso-archmodel/pkg/model"
)

// NodeOrder returns the canonical node ordering used for matrix rendering:
// domains, then capabilities, then processes, each sorted by name.
func NodeOrder(state *model.FrameworkState) []string {
	order := make([]string, 0, state.NodeCount())
	for _, tier := range model.Tiers {
		for _, n := range state.NodesByTier(tier) {
			order = append(order, n.Name)
		}
	}
	return order
}

// ConnectionMatrix builds the boolean adjacency matrix over the given node
// order. Cell [i][j] is true iff order[i] and order[j] are connected in
// either orientation. Symmetric by construction, diagonal always false.
func ConnectionMatrix(state *model.FrameworkState, order []string) [][]bool {
	index := make(map[string]int, len(order))
	for i, name := range order {
		index[name] = i
	}

	matrix := make([][]bool, len(order))
	for i := range matrix {
		matrix[i] = make([]bool, len(order))
	}

	for _, e := range state.Edges {
		i, iok := index[e.A]
		j, jok := index[e.B]
		if !iok || !jok || i == j {
			continue
		}
		matrix[i][j] = true
		matrix[j][i] = true
	}

	return matrix
}

// ConnectionCount returns the number of edges touching name.
func ConnectionCount(state *model.FrameworkState, name string) int {
	count := 0
	for _, e := range state.Edges {
		if e.Touches(name) {
			count++
		}
	}
	return count
}

// ChildCount returns the number of capabilities parented to the domain.
func ChildCount(state *model.FrameworkState, domainName string) int {
	return len(state.ChildrenOf(domainName))
}

// DomainSummary is one row of the per-domain analysis table.
type DomainSummary struct {
	Domain      string
	Children    int
	Connections int
}

// DomainSummaries returns one summary per domain, sorted by domain name.
func DomainSummaries(state *model.FrameworkState) []DomainSummary {
	summaries := make([]DomainSummary, 0, len(state.Domains))
	for _, n := range state.NodesByTier(model.TierDomain) {
		summaries = append(summaries, DomainSummary{
			Domain:      n.Name,
			Children:    ChildCount(state, n.Name),
			Connections: ConnectionCount(state, n.Name),
		})
	}
	slices.SortFunc(summaries, func(a, b DomainSummary) int {
		if a.Domain < b.Domain {
			return -1
		}
		if a.Domain > b.Domain {
			return 1
		}
		return 0
	})
	return summaries
}
