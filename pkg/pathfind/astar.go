package pathfind

import (
	"container/heap"

	"github.com/netdim-go/netsim/pkg/model"
)

// Heuristic estimates the remaining cost from node to target; it must never
// overestimate the true cost for A* to stay optimal. A nil heuristic
// degrades A* to Dijkstra.
type Heuristic func(net *model.Network, node, target string) float64

type aItem struct {
	node     string
	g        float64 // cost so far
	f        float64 // g + heuristic
	viaLink  *model.Link
	fromNode string
	index    int
}

type aQueue []*aItem

func (p aQueue) Len() int            { return len(p) }
func (p aQueue) Less(i, j int) bool  { return p[i].f < p[j].f }
func (p aQueue) Swap(i, j int)       { p[i], p[j] = p[j], p[i]; p[i].index = i; p[j].index = j }
func (p *aQueue) Push(x interface{}) { it := x.(*aItem); it.index = len(*p); *p = append(*p, it) }
func (p *aQueue) Pop() interface{} {
	old := *p
	n := len(old)
	it := old[n-1]
	*p = old[:n-1]
	return it
}

// aStarSegment runs a single A* search from source to target under c,
// returning the path as an ordered list of links, or nil if unreachable.
func aStarSegment(net *model.Network, source, target string, c *Constraints, h Heuristic) []*model.Link {
	if source == target {
		return nil
	}
	g := map[string]float64{source: 0}
	prevLink := map[string]*model.Link{}
	prevNode := map[string]string{}
	visited := map[string]struct{}{}

	hv := func(node string) float64 {
		if h == nil {
			return 0
		}
		return h(net, node, target)
	}

	q := &aQueue{}
	heap.Init(q)
	heap.Push(q, &aItem{node: source, g: 0, f: hv(source)})

	for q.Len() > 0 {
		cur := heap.Pop(q).(*aItem)
		if _, done := visited[cur.node]; done {
			continue
		}
		visited[cur.node] = struct{}{}
		if cur.node != source {
			prevLink[cur.node] = cur.viaLink
			prevNode[cur.node] = cur.fromNode
		}
		if cur.node == target {
			break
		}
		for _, nb := range neighbors(net, cur.node, model.KindTrunk, c) {
			if _, done := visited[nb.Neighbor]; done {
				continue
			}
			ng := cur.g + nb.Link.CostFrom(cur.node)
			if old, ok := g[nb.Neighbor]; !ok || ng < old {
				g[nb.Neighbor] = ng
				heap.Push(q, &aItem{node: nb.Neighbor, g: ng, f: ng + hv(nb.Neighbor), viaLink: nb.Link, fromNode: cur.node})
			}
		}
	}

	if _, ok := g[target]; !ok {
		return nil
	}
	var reversed []*model.Link
	n := target
	for n != source {
		l, ok := prevLink[n]
		if !ok {
			return nil
		}
		reversed = append(reversed, l)
		n = prevNode[n]
	}
	path := make([]*model.Link, len(reversed))
	for i, l := range reversed {
		path[len(reversed)-1-i] = l
	}
	return path
}

// AStar runs A* from source to target under c, honoring an ordered list of
// waypoint nodes in pathConstraints. Per spec §4.4, the search pops
// constraints from a stack as each is reached, restarting the visited set
// (a fresh segment search) at each waypoint, and finally reaches target.
// Returns the concatenated path, or nil if any leg is unreachable.
func AStar(net *model.Network, source, target string, c *Constraints, h Heuristic, pathConstraints []string) []*model.Link {
	waypoints := append(append([]string{}, pathConstraints...), target)
	var full []*model.Link
	cur := source
	for _, wp := range waypoints {
		if wp == cur {
			continue
		}
		seg := aStarSegment(net, cur, wp, c, h)
		if seg == nil {
			return nil
		}
		full = append(full, seg...)
		cur = wp
	}
	return full
}
