// Package pathfind implements the shortest-path kernel (C5): Dijkstra,
// A*, Bellman-Ford, Floyd-Warshall and a loop-free-path enumerator, all
// parameterized on allowed/excluded node and trunk sets so the protocol
// routers (C6), the failure model (C10) and the disjoint-path algorithms
// (C9) can restrict traversal without duplicating search logic.
package pathfind

import "github.com/netdim-go/netsim/pkg/model"

// Constraints restricts which nodes and trunks a search may use. A nil set
// means "no restriction of that kind". Excluded sets are checked after
// allowed sets, so failure-model exclusions compose with AS/area
// restrictions cleanly.
type Constraints struct {
	AllowedNodes   map[string]struct{}
	AllowedTrunks  map[string]struct{}
	ExcludedNodes  map[string]struct{}
	ExcludedTrunks map[string]struct{}
}

// NodeOK reports whether name may be visited.
func (c *Constraints) NodeOK(name string) bool {
	if c == nil {
		return true
	}
	if c.AllowedNodes != nil {
		if _, ok := c.AllowedNodes[name]; !ok {
			return false
		}
	}
	if c.ExcludedNodes != nil {
		if _, ok := c.ExcludedNodes[name]; ok {
			return false
		}
	}
	return true
}

// TrunkOK reports whether the link named name may be traversed.
func (c *Constraints) TrunkOK(name string) bool {
	if c == nil {
		return true
	}
	if c.AllowedTrunks != nil {
		if _, ok := c.AllowedTrunks[name]; !ok {
			return false
		}
	}
	if c.ExcludedTrunks != nil {
		if _, ok := c.ExcludedTrunks[name]; ok {
			return false
		}
	}
	return true
}

// neighbors returns the (neighbor, link) pairs usable from node under c,
// for links of kind (usually model.KindTrunk).
func neighbors(net *model.Network, node string, kind model.LinkKind, c *Constraints) []struct {
	Neighbor string
	Link     *model.Link
} {
	raw := net.Neighbors(node, kind)
	out := raw[:0:0]
	for _, nb := range raw {
		if !c.NodeOK(nb.Neighbor) || !c.TrunkOK(nb.Link.Name) {
			continue
		}
		out = append(out, nb)
	}
	return out
}
