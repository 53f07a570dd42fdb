package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-archmodel/pkg/model"
)

// ParentNone is the sentinel the presentation layer sends when no parent
// domain has been picked. It is never a legal parent value.
const ParentNone = "None"

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Bounds describes the drawing plane nodes must stay inside.
type Bounds struct {
	MaxX float64
	MaxY float64
}

// DefaultBounds is the 10x5 plane of the reference framework.
var DefaultBounds = Bounds{MaxX: 10, MaxY: 5}

// Intent distinguishes creating a new node from updating an existing one.
// Updates skip the uniqueness check for the node's own name.
type Intent int

const (
	IntentCreate Intent = iota
	IntentModify
)

// Violations is the full list of rule violations found by a check.
// Empty means valid. Checks never stop at the first failure so callers can
// show every error at once.
type Violations []string

// OK reports whether no violations were found.
func (v Violations) OK() bool { return len(v) == 0 }

func (v Violations) String() string { return strings.Join(v, "; ") }

// NodeRequest is a request to create or update a node.
type NodeRequest struct {
	Name        string     `json:"name" validate:"required"`
	Tier        model.Tier `json:"tier" validate:"required"`
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	Color       string     `json:"color"`
	Description string     `json:"description"`
	Parent      string     `json:"parent"`
	RiskScore   *float64   `json:"risk_score" validate:"omitempty,min=0,max=1"`
	Compliance  string     `json:"compliance"`
}

// CheckNode validates a node creation/update request against the current
// state. Graph-independent shape checks run through struct tags; everything
// that depends on the catalog is checked manually.
func CheckNode(state *model.FrameworkState, req NodeRequest, intent Intent, bounds Bounds) Violations {
	var out Violations

	name := strings.TrimSpace(req.Name)
	if name == "" {
		out = append(out, "node name must not be empty")
	}

	if err := validate.Struct(req); err != nil {
		out = append(out, structViolations(err)...)
	}

	if !req.Tier.Valid() {
		out = append(out, fmt.Sprintf("unknown tier %q", req.Tier))
	}

	out = append(out, checkBounds(req.X, req.Y, bounds)...)

	if name != "" {
		existing, exists := state.Lookup(name)
		switch intent {
		case IntentCreate:
			if exists {
				out = append(out, fmt.Sprintf("node %q already exists (names are unique across all tiers)", name))
			}
		case IntentModify:
			if !exists {
				out = append(out, fmt.Sprintf("node %q does not exist", name))
			} else if existing.Tier != req.Tier {
				out = append(out, fmt.Sprintf("node %q is a %s, not a %s", name, existing.Tier, req.Tier))
			}
		}
	}

	switch req.Tier {
	case model.TierCapability:
		if req.Parent == "" || req.Parent == ParentNone {
			out = append(out, "capability nodes require a parent domain")
		} else if _, ok := state.Domains[req.Parent]; !ok {
			out = append(out, fmt.Sprintf("parent domain %q does not exist", req.Parent))
		}
	case model.TierDomain, model.TierProcess:
		if req.Parent != "" && req.Parent != ParentNone {
			out = append(out, fmt.Sprintf("%s nodes must not carry a parent reference", strings.ToLower(string(req.Tier))))
		}
	}

	return out
}

// CheckMove validates a coordinate update only. Identity and tier are
// untouched by a move, so nothing else is checked.
func CheckMove(state *model.FrameworkState, name string, x, y float64, bounds Bounds) Violations {
	var out Violations
	if _, ok := state.Lookup(name); !ok {
		out = append(out, fmt.Sprintf("node %q does not exist", name))
	}
	out = append(out, checkBounds(x, y, bounds)...)
	return out
}

// CheckEdge validates a connection request: both endpoints must exist and be
// distinct, and the edge must not already exist in either orientation.
func CheckEdge(state *model.FrameworkState, a, b string) Violations {
	var out Violations
	if _, ok := state.Lookup(a); !ok {
		out = append(out, fmt.Sprintf("endpoint %q does not exist", a))
	}
	if _, ok := state.Lookup(b); !ok {
		out = append(out, fmt.Sprintf("endpoint %q does not exist", b))
	}
	if a == b {
		out = append(out, "self-connections are not allowed")
	}
	if state.HasEdge(a, b) {
		out = append(out, fmt.Sprintf("connection between %q and %q already exists (connections are undirected)", a, b))
	}
	return out
}

// CheckState validates a whole state, e.g. one rebuilt from an import.
// Every node and edge is checked; the result is the union of all violations.
func CheckState(state *model.FrameworkState, bounds Bounds) Violations {
	var out Violations

	seen := make(map[string]model.Tier)
	for _, tier := range model.Tiers {
		for _, n := range state.NodesByTier(tier) {
			if other, dup := seen[n.Name]; dup {
				out = append(out, fmt.Sprintf("node %q appears in both %s and %s tiers", n.Name, other, tier))
			}
			seen[n.Name] = tier

			if strings.TrimSpace(n.Name) == "" {
				out = append(out, "node name must not be empty")
			}
			out = append(out, checkBounds(n.X, n.Y, bounds)...)

			if tier == model.TierCapability {
				if n.Parent == "" || n.Parent == ParentNone {
					out = append(out, fmt.Sprintf("capability %q has no parent domain", n.Name))
				} else if _, ok := state.Domains[n.Parent]; !ok {
					out = append(out, fmt.Sprintf("capability %q references missing parent domain %q", n.Name, n.Parent))
				}
			} else if n.Parent != "" {
				out = append(out, fmt.Sprintf("%s %q must not carry a parent reference", strings.ToLower(string(tier)), n.Name))
			}

			if n.RiskScore != nil && (*n.RiskScore < 0 || *n.RiskScore > 1) {
				out = append(out, fmt.Sprintf("node %q risk score %.2f outside [0,1]", n.Name, *n.RiskScore))
			}
		}
	}

	for i, e := range state.Edges {
		if _, ok := state.Lookup(e.A); !ok {
			out = append(out, fmt.Sprintf("connection %d references missing node %q", i, e.A))
		}
		if _, ok := state.Lookup(e.B); !ok {
			out = append(out, fmt.Sprintf("connection %d references missing node %q", i, e.B))
		}
		if e.A == e.B {
			out = append(out, fmt.Sprintf("connection %d is self-referential (%q)", i, e.A))
		}
		for _, prior := range state.Edges[:i] {
			if prior.Matches(e.A, e.B) {
				out = append(out, fmt.Sprintf("duplicate connection between %q and %q", e.A, e.B))
				break
			}
		}
	}

	return out
}

func checkBounds(x, y float64, bounds Bounds) Violations {
	var out Violations
	if x < 0 || x > bounds.MaxX {
		out = append(out, fmt.Sprintf("x coordinate %.2f outside [0,%.0f]", x, bounds.MaxX))
	}
	if y < 0 || y > bounds.MaxY {
		out = append(out, fmt.Sprintf("y coordinate %.2f outside [0,%.0f]", y, bounds.MaxY))
	}
	return out
}

// structViolations converts go-playground validator errors to plain messages.
func structViolations(err error) Violations {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Violations{err.Error()}
	}

	var out Violations
	for _, e := range validationErrs {
		switch e.Tag() {
		case "required":
			// Empty name is already reported with a friendlier message.
			if e.Field() != "Name" {
				out = append(out, fmt.Sprintf("%s: field is required", e.Field()))
			}
		case "min":
			out = append(out, fmt.Sprintf("%s: must be at least %s", e.Field(), e.Param()))
		case "max":
			out = append(out, fmt.Sprintf("%s: must not exceed %s", e.Field(), e.Param()))
		default:
			out = append(out, fmt.Sprintf("%s: validation failed (%s)", e.Field(), e.Tag()))
		}
	}
	return out
}
