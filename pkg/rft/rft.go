// Package rft builds a router's Routing Forwarding Table (C7): directly
// connected routes, then a best-first loop-free exploration that discovers
// every subnetwork reachable from the router within its AS, with ECMP up
// to a configurable cap K and OSPF/IS-IS route-type precedence.
package rft

import (
	"container/heap"
	"sort"
	"strings"

	"github.com/netdim-go/netsim/pkg/model"
	"github.com/netdim-go/netsim/pkg/pathfind"
)

// trunkAreas returns the set of area names (including the backbone key) a
// trunk belongs to within as.
func trunkAreas(as *model.AS, trunkName string) map[string]struct{} {
	out := map[string]struct{}{}
	for name, area := range as.Areas {
		if _, ok := area.Trunks[trunkName]; ok {
			out[name] = struct{}{}
		}
	}
	return out
}

func shareArea(as *model.AS, a, b string) bool {
	areasA := trunkAreas(as, a)
	for name := range trunkAreas(as, b) {
		if _, ok := areasA[name]; ok {
			return true
		}
	}
	return false
}

func shareNonBackboneArea(as *model.AS, a, b string) bool {
	areasA := trunkAreas(as, a)
	for name := range trunkAreas(as, b) {
		if name == model.BackboneAreaKey {
			continue
		}
		if _, ok := areasA[name]; ok {
			return true
		}
	}
	return false
}

// routeType classifies the hop through trunk t, continuing past exTk (the
// router's exit trunk), per spec §4.6 step 3.
func routeType(as *model.AS, exTk, t string) model.RouteType {
	switch as.Type {
	case model.ASTypeRIP:
		return model.RouteRIP
	case model.ASTypeOSPF:
		if shareArea(as, exTk, t) {
			return model.RouteOSPFIntra
		}
		return model.RouteOSPFInter
	default: // IS-IS
		if shareNonBackboneArea(as, exTk, t) {
			return model.RouteISISL1
		}
		return model.RouteISISL2
	}
}

// insertEntry applies the spec §4.6 step 4 insertion policy for one
// candidate entry into an in-progress RFT, tracking the per-subnetwork
// shortest-path cost alongside.
func insertEntry(as *model.AS, table model.RFT, spCost map[string]float64, k int, ecmp bool, sntw string, entry model.RFTEntry) {
	existing := table[sntw]
	if len(existing) == 0 {
		table[sntw] = []model.RFTEntry{entry}
		spCost[sntw] = entry.Cost
		return
	}

	if as.Type == model.ASTypeOSPF {
		curType := existing[0].RouteType
		if curType == model.RouteOSPFInter && entry.RouteType == model.RouteOSPFIntra {
			table[sntw] = []model.RFTEntry{entry}
			spCost[sntw] = entry.Cost
			return
		}
		if curType == model.RouteOSPFIntra && entry.RouteType == model.RouteOSPFInter {
			return // O IA never overwrites O, regardless of cost
		}
	}

	switch {
	case entry.RouteType == existing[0].RouteType && entry.Cost == spCost[sntw]:
		if ecmp && len(existing) < k {
			table[sntw] = append(existing, entry)
		}
	case entry.Cost < spCost[sntw]:
		table[sntw] = []model.RFTEntry{entry}
		spCost[sntw] = entry.Cost
	}
}

// Excluder reports currently-failed nodes/trunks (spec §5's "failure
// clear" step: RFTs are built honoring the failure set, which is then
// cleared before traffic routing runs on the unfailed topology). Satisfied
// by *failure.Set; nil is treated as "nothing failed".
type Excluder interface {
	IsLinkFailed(name string) bool
	IsNodeFailed(name string) bool
	ExcludedNodes() map[string]struct{}
	ExcludedTrunks() map[string]struct{}
}

func linkUsable(excl Excluder, t *model.Link, from string) bool {
	if excl == nil {
		return true
	}
	return !excl.IsLinkFailed(t.Name) && !excl.IsNodeFailed(from) && !excl.IsNodeFailed(t.OtherEnd(from))
}

// connectedRoutes inserts one C-type entry per trunk directly incident to
// router (spec §4.6 step 1).
func connectedRoutes(net *model.Network, as *model.AS, router string, table model.RFT, excl Excluder) {
	for _, nb := range net.Neighbors(router, model.KindTrunk) {
		t := nb.Link
		if !as.HasTrunk(t.Name) || !linkUsable(excl, t, router) {
			continue
		}
		table[t.Sntw] = []model.RFTEntry{{
			RouteType:     model.RouteConnected,
			NextHopIP:     t.AttrsFrom(nb.Neighbor).IPAddress,
			ExitInterface: t.AttrsFrom(router).Interface,
			Cost:          0,
			NextHopNode:   nb.Neighbor,
			ExitTrunk:     t.Name,
		}}
	}
}

// pathKey is the visited key for the best-first exploration: (node,
// ordered tuple of trunk names so far). Distinct paths to the same node
// are distinct states (this is what makes ECMP discovery possible).
func pathKey(node string, path []string) string {
	return node + "|" + strings.Join(path, ",")
}

type frontierState struct {
	dist  float64
	node  string
	path  []string // trunk names from router, in order
	index int
}

type frontierPQ []*frontierState

func (p frontierPQ) Len() int            { return len(p) }
func (p frontierPQ) Less(i, j int) bool  { return p[i].dist < p[j].dist }
func (p frontierPQ) Swap(i, j int)       { p[i], p[j] = p[j], p[i]; p[i].index = i; p[j].index = j }
func (p *frontierPQ) Push(x interface{}) { it := x.(*frontierState); it.index = len(*p); *p = append(*p, it) }
func (p *frontierPQ) Pop() interface{} {
	old := *p
	n := len(old)
	it := old[n-1]
	*p = old[:n-1]
	return it
}

// Build constructs router's RFT within as: connected routes, then the
// ECMP or non-LB best-first exploration selected by as.ECMP. excl, when
// non-nil, removes failed nodes/trunks from consideration (spec §5).
func Build(net *model.Network, as *model.AS, router string, k int, excl Excluder) model.RFT {
	table := make(model.RFT)
	connectedRoutes(net, as, router, table, excl)
	if as.ECMP {
		buildECMP(net, as, router, k, table, excl)
	} else {
		buildNonLB(net, as, router, table, excl)
	}
	return table
}

// buildECMP is the best-first, loop-free exploration of spec §4.6 steps
// 2-6: state (dist, node, path_trunks), visited key (node, path), K-capped
// equal-cost sets per subnetwork.
func buildECMP(net *model.Network, as *model.AS, router string, k int, table model.RFT, excl Excluder) {
	spCost := map[string]float64{}
	visited := map[string]struct{}{}

	q := &frontierPQ{}
	heap.Init(q)
	for _, nb := range net.Neighbors(router, model.KindTrunk) {
		if !as.HasTrunk(nb.Link.Name) || !linkUsable(excl, nb.Link, router) {
			continue
		}
		heap.Push(q, &frontierState{dist: nb.Link.CostFrom(router), node: nb.Neighbor, path: []string{nb.Link.Name}})
	}

	for q.Len() > 0 {
		cur := heap.Pop(q).(*frontierState)
		key := pathKey(cur.node, cur.path)
		if _, ok := visited[key]; ok {
			continue
		}
		visited[key] = struct{}{}
		if cur.node == router {
			continue
		}

		exTkName := cur.path[0]
		exTk, _ := net.GetLink(exTkName)
		nh := exTk.OtherEnd(router)
		exIP := exTk.AttrsFrom(nh).IPAddress
		exInt := exTk.AttrsFrom(router).Interface
		lastTrunk := cur.path[len(cur.path)-1]

		for _, nb := range net.Neighbors(cur.node, model.KindTrunk) {
			t := nb.Link
			if !as.HasTrunk(t.Name) || t.Name == lastTrunk || !linkUsable(excl, t, cur.node) {
				continue
			}
			if containsStr(cur.path, t.Name) {
				continue // loop-free expansion: a trunk already in the path is not re-used
			}
			currDist := cur.dist + t.CostFrom(cur.node)
			rt := routeType(as, exTkName, t.Name)
			insertEntry(as, table, spCost, k, true, t.Sntw, model.RFTEntry{
				RouteType:     rt,
				NextHopIP:     exIP,
				ExitInterface: exInt,
				Cost:          currDist,
				NextHopNode:   nh,
				ExitTrunk:     exTkName,
			})
			newPath := append(append([]string{}, cur.path...), t.Name)
			heap.Push(q, &frontierState{dist: currDist, node: t.OtherEnd(cur.node), path: newPath})
		}
	}
}

func containsStr(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// buildNonLB is the non-load-balancing variant: one route per subnetwork,
// derived from a single pure-Dijkstra relaxation (first-reached path per
// node, no per-path fan-out). Selected for AS types with ECMP disabled.
func buildNonLB(net *model.Network, as *model.AS, router string, table model.RFT, excl Excluder) {
	c := &pathfind.Constraints{AllowedNodes: as.Nodes, AllowedTrunks: as.Trunks}
	if excl != nil {
		c.ExcludedNodes = excl.ExcludedNodes()
		c.ExcludedTrunks = excl.ExcludedTrunks()
	}
	dist, prevLink, prevNode := pathfind.DijkstraTree(net, router, "", c)
	spCost := map[string]float64{}

	nodes := make([]string, 0, len(dist))
	for n := range dist {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes) // deterministic iteration order

	for _, node := range nodes {
		if node == router {
			continue
		}
		path := pathfind.ReconstructPath(router, node, prevLink, prevNode)
		if len(path) == 0 {
			continue
		}
		exTk := path[0]
		nh := exTk.OtherEnd(router)
		exIP := exTk.AttrsFrom(nh).IPAddress
		exInt := exTk.AttrsFrom(router).Interface
		lastTrunk := path[len(path)-1].Name

		for _, nb := range net.Neighbors(node, model.KindTrunk) {
			t := nb.Link
			if !as.HasTrunk(t.Name) || t.Name == lastTrunk || !linkUsable(excl, t, node) {
				continue
			}
			currDist := dist[node] + t.CostFrom(node)
			rt := routeType(as, exTk.Name, t.Name)
			insertEntry(as, table, spCost, 1, false, t.Sntw, model.RFTEntry{
				RouteType:     rt,
				NextHopIP:     exIP,
				ExitInterface: exInt,
				Cost:          currDist,
				NextHopNode:   nh,
				ExitTrunk:     exTk.Name,
			})
		}
	}
}
