package protocol

import (
	"github.com/netdim-go/netsim/pkg/model"
	"github.com/netdim-go/netsim/pkg/pathfind"
)

// ISISRouting runs the two-phase IS-IS path search (spec §4.5).
//
// Phase 0 (step=false) applies when source has a non-backbone area, is not
// itself in the backbone, and target is not in that same area (it sits in a
// different non-backbone area or in none): the search
// is restricted to source-area nodes/trunks until the first border router
// is reached, then the heap is cleared (a fresh search begins) for phase 1.
// Phase 1 (step=true) is restricted to backbone ∪ target-area until target.
func ISISRouting(net *model.Network, as *model.AS, source, target string) ([]string, []*model.Link) {
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

	needsPhase0 := srcHasArea && !inBackbone(srcNode, as) && (!tgtHasArea || tgtArea != srcArea)

	cur := source
	var full []*model.Link

	if needsPhase0 {
		area := as.Areas[srcArea]
		c := &pathfind.Constraints{AllowedNodes: area.Nodes, AllowedTrunks: area.Trunks}
		dist, prevLink, prevNode := pathfind.DijkstraTree(net, cur, "", c)
		border, found := nearestMatching(dist, cur, func(n string) bool {
			_, isBorder := as.BorderRouters[n]
			return isBorder
		})
		if !found {
			return nil, nil
		}
		seg := pathfind.ReconstructPath(cur, border, prevLink, prevNode)
		full = append(full, seg...)
		cur = border
		// "clear the heap on transition": phase 1 below is a brand-new search.
	}

	var targetArea *model.Area
	if tgtHasArea {
		targetArea = as.Areas[tgtArea]
	}
	c1 := unionConstraints(as.Backbone(), targetArea)
	seg := pathfind.AStar(net, cur, target, c1, nil, nil)
	if seg == nil {
		return nil, nil
	}
	full = append(full, seg...)
	return nil, full
}
