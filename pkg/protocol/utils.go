package protocol

import (
	"github.com/netdim-go/netsim/pkg/model"
	"github.com/netdim-go/netsim/pkg/pathfind"
)

// nonBackboneArea returns the single non-backbone area node belongs to
// within as, if any.
func nonBackboneArea(node *model.Node, as *model.AS) (string, bool) {
	for areaName := range node.Areas[as.Name] {
		if areaName != model.BackboneAreaKey {
			return areaName, true
		}
	}
	return "", false
}

// inBackbone reports whether node is a member of as's backbone area.
func inBackbone(node *model.Node, as *model.AS) bool {
	return node.InArea(as.Name, model.BackboneAreaKey)
}

// unionConstraints merges the node/trunk sets of one or two areas into a
// single allowed-set Constraints.
func unionConstraints(areas ...*model.Area) *pathfind.Constraints {
	nodes := map[string]struct{}{}
	trunks := map[string]struct{}{}
	for _, a := range areas {
		if a == nil {
			continue
		}
		for n := range a.Nodes {
			nodes[n] = struct{}{}
		}
		for t := range a.Trunks {
			trunks[t] = struct{}{}
		}
	}
	return &pathfind.Constraints{AllowedNodes: nodes, AllowedTrunks: trunks}
}

// nearestMatching scans a distance map for the closest node (by distance)
// satisfying pred, excluding the search's own source. Returns ("", false)
// if none is reachable.
func nearestMatching(dist map[string]float64, source string, pred func(string) bool) (string, bool) {
	best := ""
	bestDist := pathfind.InfDistance
	for node, d := range dist {
		if node == source {
			continue
		}
		if !pred(node) {
			continue
		}
		if d < bestDist {
			bestDist = d
			best = node
		}
	}
	return best, best != ""
}
