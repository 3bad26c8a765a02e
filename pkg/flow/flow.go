// Package flow implements the three max-flow algorithms of C9:
// Ford-Fulkerson (recursive DFS augmentation), Edmonds-Karp (BFS
// augmentation) and Dinic (level graph + blocking flow). All three operate
// on trunk capacitySD/DS, maintain flowSD/DS, reset flow at entry, and
// return the total flow leaving source after termination.
package flow

import (
	"math"

	"github.com/netdim-go/netsim/pkg/model"
	"github.com/netdim-go/netsim/pkg/pathfind"
)

// ResetFlow zeroes the Flow field of every trunk's both directions.
func ResetFlow(net *model.Network) {
	for _, l := range net.Links(model.KindTrunk) {
		l.SD.Flow = 0
		l.DS.Flow = 0
	}
}

// residual returns the remaining capacity for traversing l from node's
// side, net of flow already pushed in either direction.
func residual(l *model.Link, node string) float64 {
	fwd := l.AttrsFrom(node)
	back := l.AttrsFrom(l.OtherEnd(node))
	return fwd.Capacity - fwd.Flow + back.Flow
}

// push sends delta units of flow from node along l, preferring to cancel
// any existing opposite-direction flow before adding forward flow.
func push(l *model.Link, node string, delta float64) {
	fwd := l.AttrsFrom(node)
	back := l.AttrsFrom(l.OtherEnd(node))
	if back.Flow >= delta {
		back.Flow -= delta
		return
	}
	delta -= back.Flow
	back.Flow = 0
	fwd.Flow += delta
}

// FordFulkerson computes max flow from source to sink using recursive DFS
// augmentation on the residual network.
func FordFulkerson(net *model.Network, source, sink string, c *pathfind.Constraints) float64 {
	ResetFlow(net)
	var total float64
	for {
		visited := map[string]struct{}{source: {}}
		path, bottleneck := dfsAugment(net, source, sink, c, visited)
		if path == nil {
			break
		}
		applyAugmentation(path, bottleneck)
		total += bottleneck
	}
	return total
}

type hop struct {
	node string
	link *model.Link
}

func dfsAugment(net *model.Network, cur, sink string, c *pathfind.Constraints, visited map[string]struct{}) ([]hop, float64) {
	if cur == sink {
		return []hop{}, math.MaxFloat64
	}
	for _, nb := range net.Neighbors(cur, model.KindTrunk) {
		if !c.NodeOK(nb.Neighbor) || !c.TrunkOK(nb.Link.Name) {
			continue
		}
		if _, ok := visited[nb.Neighbor]; ok {
			continue
		}
		r := residual(nb.Link, cur)
		if r <= 1e-9 {
			continue
		}
		visited[nb.Neighbor] = struct{}{}
		rest, bottleneck := dfsAugment(net, nb.Neighbor, sink, c, visited)
		if rest != nil {
			if r < bottleneck {
				bottleneck = r
			}
			return append([]hop{{node: cur, link: nb.Link}}, rest...), bottleneck
		}
	}
	return nil, 0
}

func applyAugmentation(path []hop, delta float64) {
	for _, h := range path {
		push(h.link, h.node, delta)
	}
}

// EdmondsKarp computes max flow using BFS (shortest augmenting path by hop
// count) augmentation.
func EdmondsKarp(net *model.Network, source, sink string, c *pathfind.Constraints) float64 {
	ResetFlow(net)
	var total float64
	for {
		parent := map[string]hop{}
		visited := map[string]struct{}{source: {}}
		queue := []string{source}
		found := false
		for len(queue) > 0 && !found {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range net.Neighbors(cur, model.KindTrunk) {
				if !c.NodeOK(nb.Neighbor) || !c.TrunkOK(nb.Link.Name) {
					continue
				}
				if _, ok := visited[nb.Neighbor]; ok {
					continue
				}
				if residual(nb.Link, cur) <= 1e-9 {
					continue
				}
				visited[nb.Neighbor] = struct{}{}
				parent[nb.Neighbor] = hop{node: cur, link: nb.Link}
				if nb.Neighbor == sink {
					found = true
					break
				}
				queue = append(queue, nb.Neighbor)
			}
		}
		if !found {
			break
		}
		bottleneck := math.MaxFloat64
		for n := sink; n != source; {
			h := parent[n]
			if r := residual(h.link, h.node); r < bottleneck {
				bottleneck = r
			}
			n = h.node
		}
		for n := sink; n != source; {
			h := parent[n]
			push(h.link, h.node, bottleneck)
			n = h.node
		}
		total += bottleneck
	}
	return total
}

// Dinic computes max flow using repeated level-graph construction (BFS)
// followed by blocking-flow augmentation (DFS with per-node iteration
// pointers) on each level graph.
func Dinic(net *model.Network, source, sink string, c *pathfind.Constraints) float64 {
	ResetFlow(net)
	var total float64
	for {
		level := bfsLevels(net, source, sink, c)
		if level == nil {
			break
		}
		iter := map[string]int{}
		for {
			visited := map[string]struct{}{}
			sent := dinicDFS(net, source, sink, math.MaxFloat64, level, iter, c, visited)
			if sent <= 1e-9 {
				break
			}
			total += sent
		}
	}
	return total
}

func bfsLevels(net *model.Network, source, sink string, c *pathfind.Constraints) map[string]int {
	level := map[string]int{source: 0}
	queue := []string{source}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range net.Neighbors(cur, model.KindTrunk) {
			if !c.NodeOK(nb.Neighbor) || !c.TrunkOK(nb.Link.Name) {
				continue
			}
			if residual(nb.Link, cur) <= 1e-9 {
				continue
			}
			if _, ok := level[nb.Neighbor]; ok {
				continue
			}
			level[nb.Neighbor] = level[cur] + 1
			queue = append(queue, nb.Neighbor)
		}
	}
	if _, ok := level[sink]; !ok {
		return nil
	}
	return level
}

func dinicDFS(net *model.Network, cur, sink string, limit float64, level map[string]int, iter map[string]int, c *pathfind.Constraints, visited map[string]struct{}) float64 {
	if cur == sink {
		return limit
	}
	visited[cur] = struct{}{}
	nbs := net.Neighbors(cur, model.KindTrunk)
	for ; iter[cur] < len(nbs); iter[cur]++ {
		nb := nbs[iter[cur]]
		if !c.NodeOK(nb.Neighbor) || !c.TrunkOK(nb.Link.Name) {
			continue
		}
		if lv, ok := level[nb.Neighbor]; !ok || lv != level[cur]+1 {
			continue
		}
		r := residual(nb.Link, cur)
		if r <= 1e-9 {
			continue
		}
		if _, ok := visited[nb.Neighbor]; ok {
			continue
		}
		sent := dinicDFS(net, nb.Neighbor, sink, math.Min(limit, r), level, iter, c, visited)
		if sent > 1e-9 {
			push(nb.Link, cur, sent)
			return sent
		}
	}
	return 0
}
