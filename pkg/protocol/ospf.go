package protocol

import (
	"container/heap"

	"github.com/netdim-go/netsim/pkg/model"
)

// isBackboneMember reports whether node is a member of as's backbone area,
// or is a border router (>= 2 areas of as), which spec §4.5 says is
// "treated as belonging to the backbone".
func isBackboneMember(node *model.Node, as *model.AS) bool {
	return node.AreaCount(as.Name) >= 2 || node.InArea(as.Name, model.BackboneAreaKey)
}

// ospfState is a (node, phase) pair: phase 0 = source area, 1 = backbone,
// 2 = target area. The pair, not the bare node, is the visited key so the
// same node can be re-expanded under a different region.
type ospfState struct {
	node  string
	phase int
}

type ospfItem struct {
	state    ospfState
	dist     float64
	viaLink  *model.Link
	fromNode string
	fromPh   int
	index    int
}

type ospfPQ []*ospfItem

func (p ospfPQ) Len() int            { return len(p) }
func (p ospfPQ) Less(i, j int) bool  { return p[i].dist < p[j].dist }
func (p ospfPQ) Swap(i, j int)       { p[i], p[j] = p[j], p[i]; p[i].index = i; p[j].index = j }
func (p *ospfPQ) Push(x interface{}) { it := x.(*ospfItem); it.index = len(*p); *p = append(*p, it) }
func (p *ospfPQ) Pop() interface{} {
	old := *p
	n := len(old)
	it := old[n-1]
	*p = old[:n-1]
	return it
}

// OSPFRouting runs the three-phase OSPF path search (spec §4.5). At each
// phase, only trunks belonging to the current region's area may be used:
// source area (phase 0), backbone (phase 1), target area (phase 2).
// Transitions 0->1 and {0,1}->2 are free (zero cost) and forced whenever
// the current node qualifies for the next region (backbone membership, or
// target-area membership).
func OSPFRouting(net *model.Network, as *model.AS, source, target string) ([]string, []*model.Link) {
	srcNode, ok := net.GetNode(source)
	if !ok {
		return nil, nil
	}
	tgtNode, ok := net.GetNode(target)
	if !ok {
		return nil, nil
	}
	srcArea, srcHasArea := nonBackboneArea(srcNode, as)
	tgtArea, tgtHasArea := nonBackboneArea(tgtNode, as)

	regionTrunks := func(phase int) map[string]struct{} {
		switch phase {
		case 0:
			if srcHasArea {
				return as.Areas[srcArea].Trunks
			}
			return nil
		case 1:
			return as.Backbone().Trunks
		default:
			if tgtHasArea {
				return as.Areas[tgtArea].Trunks
			}
			return nil
		}
	}

	start := ospfState{node: source, phase: 0}
	dist := map[ospfState]float64{start: 0}
	prevLink := map[ospfState]*model.Link{}
	prevState := map[ospfState]ospfState{}
	visited := map[ospfState]struct{}{}

	q := &ospfPQ{}
	heap.Init(q)
	heap.Push(q, &ospfItem{state: start, dist: 0})

	var finalState ospfState
	found := false

	for q.Len() > 0 {
		cur := heap.Pop(q).(*ospfItem)
		if _, done := visited[cur.state]; done {
			continue
		}
		visited[cur.state] = struct{}{}
		if cur.state != start {
			prevLink[cur.state] = cur.viaLink
			prevState[cur.state] = ospfState{node: cur.fromNode, phase: cur.fromPh}
		}
		if cur.state.node == target {
			finalState = cur.state
			found = true
			break
		}

		node, _ := net.GetNode(cur.state.node)

		// Free phase transitions, forced by region membership: a node that
		// qualifies for a later region is not expanded in its current one.
		forced := false
		if cur.state.phase == 0 && isBackboneMember(node, as) {
			forced = true
			ns := ospfState{node: cur.state.node, phase: 1}
			if _, done := visited[ns]; !done {
				if old, ok := dist[ns]; !ok || cur.dist < old {
					dist[ns] = cur.dist
					heap.Push(q, &ospfItem{state: ns, dist: cur.dist, viaLink: nil, fromNode: cur.state.node, fromPh: cur.state.phase})
				}
			}
		}
		if cur.state.phase <= 1 && tgtHasArea && node.InArea(as.Name, tgtArea) {
			forced = true
			ns := ospfState{node: cur.state.node, phase: 2}
			if _, done := visited[ns]; !done {
				if old, ok := dist[ns]; !ok || cur.dist < old {
					dist[ns] = cur.dist
					heap.Push(q, &ospfItem{state: ns, dist: cur.dist, viaLink: nil, fromNode: cur.state.node, fromPh: cur.state.phase})
				}
			}
		}
		if forced {
			continue
		}

		allowed := regionTrunks(cur.state.phase)
		for _, nb := range net.Neighbors(cur.state.node, model.KindTrunk) {
			if allowed != nil {
				if _, ok := allowed[nb.Link.Name]; !ok {
					continue
				}
			} else {
				continue
			}
			ns := ospfState{node: nb.Neighbor, phase: cur.state.phase}
			if _, done := visited[ns]; done {
				continue
			}
			nd := cur.dist + nb.Link.CostFrom(cur.state.node)
			if old, ok := dist[ns]; !ok || nd < old {
				dist[ns] = nd
				heap.Push(q, &ospfItem{state: ns, dist: nd, viaLink: nb.Link, fromNode: cur.state.node, fromPh: cur.state.phase})
			}
		}
	}

	if !found {
		return nil, nil
	}

	var reversed []*model.Link
	s := finalState
	for s.node != source || s.phase != 0 {
		l := prevLink[s]
		ps, ok := prevState[s]
		if !ok {
			return nil, nil
		}
		if l != nil {
			reversed = append(reversed, l)
		}
		s = ps
		if _, seen := dist[s]; !seen {
			return nil, nil
		}
	}
	path := make([]*model.Link, len(reversed))
	for i, l := range reversed {
		path[len(reversed)-1-i] = l
	}
	return nil, path
}
