// Package protocol implements the three routing-protocol path searches
// (C6): RIP, OSPF and IS-IS, each enforcing its own area/backbone
// visitation rules. RIP and IS-IS run on the pathfind kernel (A*, plus
// Dijkstra for IS-IS's first phase); OSPF runs its own phase-aware search.
//
// All three return (nodesVisited, pathLinks); nodesVisited is a
// placeholder slice carried over from the source implementation's
// original return signature and is not meaningful beyond its presence --
// callers use only pathLinks (per spec §4.5).
package protocol

import (
	"github.com/netdim-go/netsim/pkg/model"
	"github.com/netdim-go/netsim/pkg/pathfind"
)

// RIPRouting runs A* restricted to as's own nodes and trunks.
func RIPRouting(net *model.Network, as *model.AS, source, target string) ([]string, []*model.Link) {
	c := &pathfind.Constraints{AllowedNodes: as.Nodes, AllowedTrunks: as.Trunks}
	path := pathfind.AStar(net, source, target, c, nil, nil)
	return nil, path
}
