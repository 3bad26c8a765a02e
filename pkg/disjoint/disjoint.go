// Package disjoint implements the link-disjoint path-pair algorithms of
// C9: Bhandari, Suurballe, and an A*-waypoint variant, each returning the
// symmetric difference of two trunk-disjoint paths from s to t.
package disjoint

import (
	"github.com/netdim-go/netsim/pkg/model"
	"github.com/netdim-go/netsim/pkg/pathfind"
)

// LinkSet is a set of trunk names, used as the symmetric-difference result
// of a disjoint-pair computation.
type LinkSet map[string]*model.Link

func linksToSet(links []*model.Link) LinkSet {
	out := make(LinkSet, len(links))
	for _, l := range links {
		out[l.Name] = l
	}
	return out
}

func symmetricDifference(a, b []*model.Link) LinkSet {
	as, bs := linksToSet(a), linksToSet(b)
	out := make(LinkSet)
	for name, l := range as {
		if _, ok := bs[name]; !ok {
			out[name] = l
		}
	}
	for name, l := range bs {
		if _, ok := as[name]; !ok {
			out[name] = l
		}
	}
	return out
}

// Bhandari computes a disjoint path pair: P1 via A*, then every trunk of
// P1 has its forward-direction cost set to +inf and reverse-direction cost
// set to -1 before running Bellman-Ford for P2 (which tolerates negative
// costs); original costs are restored afterward regardless of outcome.
func Bhandari(net *model.Network, s, t string, c *pathfind.Constraints) (LinkSet, bool) {
	p1 := pathfind.AStar(net, s, t, c, nil, nil)
	if p1 == nil {
		return nil, false
	}

	restore := saveCosts(p1)
	// Reweight every trunk of P1: the direction the path traversed it in
	// becomes +inf (impassable), the reverse direction becomes -1 (to
	// make reuse in the opposite sense attractive during P2's search).
	from := s
	for _, l := range p1 {
		if l.Source == from {
			l.SD.Cost = pathfind.InfDistance
			l.DS.Cost = -1
		} else {
			l.DS.Cost = pathfind.InfDistance
			l.SD.Cost = -1
		}
		from = l.OtherEnd(from)
	}

	defer restoreCosts(restore)

	p2, _ := pathfind.BellmanFord(net, s, t, c)
	if p2 == nil {
		return nil, false
	}
	return symmetricDifference(p1, p2), true
}

// savedCost preserves a trunk's directional costs across a reweighting
// pass so Bhandari/Suurballe can restore the topology afterward.
type savedCost struct {
	link           *model.Link
	sdCost, dsCost float64
}

func saveCosts(links []*model.Link) []savedCost {
	out := make([]savedCost, 0, len(links))
	seen := map[*model.Link]struct{}{}
	for _, l := range links {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, savedCost{link: l, sdCost: l.SD.Cost, dsCost: l.DS.Cost})
	}
	return out
}

func restoreCosts(saved []savedCost) {
	for _, sv := range saved {
		sv.link.SD.Cost = sv.sdCost
		sv.link.DS.Cost = sv.dsCost
	}
}

// Suurballe computes a disjoint path pair via Dijkstra's shortest-path
// tree: tree edges are reweighted by cost - d(dst) + d(src) per direction
// (making every tree edge zero-cost and every non-tree edge non-negative),
// P1's trunks are blocked in their traversal direction, and A* finds P2 on
// the reweighted graph.
func Suurballe(net *model.Network, s, t string, c *pathfind.Constraints) (LinkSet, bool) {
	dist, p1, tree := pathfind.Dijkstra(net, s, t, c)
	if p1 == nil {
		return nil, false
	}

	var restore []savedCost
	recorded := map[*model.Link]struct{}{}
	record := func(l *model.Link) {
		if _, ok := recorded[l]; ok {
			return
		}
		recorded[l] = struct{}{}
		restore = append(restore, savedCost{link: l, sdCost: l.SD.Cost, dsCost: l.DS.Cost})
	}

	for node, l := range tree {
		record(l)
		d := dist[node]
		from := l.OtherEnd(node)
		dFrom := dist[from]
		if l.Source == from {
			l.SD.Cost = l.SD.Cost - d + dFrom
		} else {
			l.DS.Cost = l.DS.Cost - d + dFrom
		}
	}
	for _, l := range p1 {
		record(l)
	}
	from := s
	for _, l := range p1 {
		if l.Source == from {
			l.SD.Cost = pathfind.InfDistance
		} else {
			l.DS.Cost = pathfind.InfDistance
		}
		from = l.OtherEnd(from)
	}

	defer restoreCosts(restore)

	p2 := pathfind.AStar(net, s, t, c, nil, nil)
	if p2 == nil {
		return nil, false
	}
	return symmetricDifference(p1, p2), true
}

// AStarDisjointPair finds a disjoint pair with two A* searches, s->t and
// then t->s: the trunks used on the first half (s->t) become the excluded
// set for the second half (t->s), forcing a distinct return path.
func AStarDisjointPair(net *model.Network, s, t string, c *pathfind.Constraints) (LinkSet, bool) {
	firstHalf := pathfind.AStar(net, s, t, c, nil, nil)
	if firstHalf == nil {
		return nil, false
	}
	excluded := map[string]struct{}{}
	for _, l := range firstHalf {
		excluded[l.Name] = struct{}{}
	}
	c2 := &pathfind.Constraints{}
	if c != nil {
		c2.AllowedNodes = c.AllowedNodes
		c2.AllowedTrunks = c.AllowedTrunks
		c2.ExcludedNodes = c.ExcludedNodes
	}
	c2.ExcludedTrunks = excluded
	secondHalf := pathfind.AStar(net, t, s, c2, nil, nil)
	if secondHalf == nil {
		return nil, false
	}
	return symmetricDifference(firstHalf, secondHalf), true
}
