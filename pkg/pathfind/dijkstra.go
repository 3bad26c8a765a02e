package pathfind

import (
	"container/heap"
	"math"

	"github.com/netdim-go/netsim/pkg/model"
)

// item is one entry in the Dijkstra priority queue: a candidate distance to
// reach node, via the link that led to it.
type item struct {
	node     string
	dist     float64
	viaLink  *model.Link
	fromNode string
	index    int
}

type pq []*item

func (p pq) Len() int            { return len(p) }
func (p pq) Less(i, j int) bool  { return p[i].dist < p[j].dist }
func (p pq) Swap(i, j int)       { p[i], p[j] = p[j], p[i]; p[i].index = i; p[j].index = j }
func (p *pq) Push(x interface{}) { it := x.(*item); it.index = len(*p); *p = append(*p, it) }
func (p *pq) Pop() interface{} {
	old := *p
	n := len(old)
	it := old[n-1]
	*p = old[:n-1]
	return it
}

// Dijkstra computes shortest distances from source to every reachable node
// under c, using a binary-heap priority queue and a "lazy decrease-key"
// strategy (duplicate heap entries are pushed and stale ones ignored on
// pop). Cost lookups always use the directional cost from the current
// node's side (model.Link.CostFrom), per spec §4.4.
//
// Returns dist (node -> distance, source at 0), the shortest path from
// source to target as an ordered list of links (nil if target=="" or
// unreachable), and the tree of "prev link for every non-source node"
// reached (invariant: tree[v] is the link used to first finalize v).
func Dijkstra(net *model.Network, source, target string, c *Constraints) (dist map[string]float64, path []*model.Link, tree map[string]*model.Link) {
	dist, prevLink, prevNode := DijkstraTree(net, source, target, c)
	tree = prevLink

	if target == "" || target == source {
		return dist, nil, tree
	}
	if _, ok := dist[target]; !ok {
		return dist, nil, tree
	}
	path = ReconstructPath(source, target, prevLink, prevNode)
	return dist, path, tree
}

// DijkstraTree runs the Dijkstra relaxation from source under c and returns
// the full distance map plus the predecessor link/node maps needed to
// reconstruct a path to ANY reached node -- not just a single target. If
// stopAt is non-empty, the search still stops early once stopAt is
// finalized (an optimization; pass "" to explore everything reachable).
func DijkstraTree(net *model.Network, source, stopAt string, c *Constraints) (dist map[string]float64, prevLink map[string]*model.Link, prevNode map[string]string) {
	dist = map[string]float64{source: 0}
	prevLink = map[string]*model.Link{}
	prevNode = map[string]string{}
	visited := map[string]struct{}{}

	q := &pq{}
	heap.Init(q)
	heap.Push(q, &item{node: source, dist: 0})

	for q.Len() > 0 {
		cur := heap.Pop(q).(*item)
		if _, done := visited[cur.node]; done {
			continue
		}
		visited[cur.node] = struct{}{}
		if cur.node != source {
			prevLink[cur.node] = cur.viaLink
			prevNode[cur.node] = cur.fromNode
		}
		if stopAt != "" && cur.node == stopAt {
			break
		}
		for _, nb := range neighbors(net, cur.node, model.KindTrunk, c) {
			if _, done := visited[nb.Neighbor]; done {
				continue
			}
			nd := cur.dist + nb.Link.CostFrom(cur.node)
			if old, ok := dist[nb.Neighbor]; !ok || nd < old {
				dist[nb.Neighbor] = nd
				heap.Push(q, &item{node: nb.Neighbor, dist: nd, viaLink: nb.Link, fromNode: cur.node})
			}
		}
	}
	return dist, prevLink, prevNode
}

// ReconstructPath walks prevLink/prevNode back from target to source.
// Fixes the source-repo bug noted in spec §9: only walk back while a
// predecessor actually exists, rather than unconditionally dropping the
// last traced element (which dereferences a missing predecessor whenever
// source==target or the trace is incomplete).
func ReconstructPath(source, target string, prevLink map[string]*model.Link, prevNode map[string]string) []*model.Link {
	if target == source {
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

// InfDistance is the sentinel for "unreachable" returned in dist maps by
// callers that want a finite value instead of a missing key.
const InfDistance = math.MaxFloat64
