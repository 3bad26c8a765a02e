// Package traffic implements the traffic router (C8): distributes each
// demand's throughput through the routers' already-built RFTs, splitting
// proportionally across ECMP entries and accumulating per-trunk load.
package traffic

import "github.com/netdim-go/netsim/pkg/model"

// UnroutedReason explains why a demand could not be fully routed.
type UnroutedReason string

const (
	ReasonNoDestinationTrunk UnroutedReason = "destination node has no incident trunk"
	ReasonRFTMiss            UnroutedReason = "intermediate router's RFT has no entry for the destination subnetwork"
)

// Unrouted records one demand that §4.7/§7 requires to be reported rather
// than silently dropped.
type Unrouted struct {
	Demand *model.Link
	Reason UnroutedReason
}

// Route distributes every KindTraffic demand in net through the RFTs
// already built on its routers (spec §4.7), returning the demands that
// could not be fully routed.
func Route(net *model.Network) []Unrouted {
	var unrouted []Unrouted
	for _, demand := range net.Links(model.KindTraffic) {
		if u, ok := routeOne(net, demand); !ok {
			unrouted = append(unrouted, u)
		}
	}
	return unrouted
}

type work struct {
	node  string
	share float64
}

// routeOne implements spec §4.7 steps 1-4.
func routeOne(net *model.Network, demand *model.Link) (Unrouted, bool) {
	demand.Path = make(map[string]struct{})

	// Step 1: resolve the destination subnetwork via any trunk incident to
	// the destination. An isolated destination is unroutable, not a crash
	// (spec §9, the "empty line unreachable" heuristic).
	nbs := net.Neighbors(demand.Destination, model.KindTrunk)
	if len(nbs) == 0 {
		return Unrouted{Demand: demand, Reason: ReasonNoDestinationTrunk}, false
	}
	destSntw := nbs[0].Link.Sntw

	// Step 2-3: work-stack propagation, splitting each ECMP fan-out evenly.
	stack := []work{{node: demand.Source, share: demand.Throughput}}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if w.node == demand.Destination {
			continue
		}
		router, ok := net.GetNode(w.node)
		if !ok {
			return Unrouted{Demand: demand, Reason: ReasonRFTMiss}, false
		}
		entries := router.RFT[destSntw]
		if len(entries) == 0 {
			// Spec §9 / §7: an RFT miss marks the whole demand unrouted,
			// rather than silently dropping this intermediate's share.
			demand.Path = make(map[string]struct{})
			return Unrouted{Demand: demand, Reason: ReasonRFTMiss}, false
		}

		perEntry := w.share / float64(len(entries))
		for _, e := range entries {
			demand.Path[e.ExitTrunk] = struct{}{}
			if t, ok := net.GetLink(e.ExitTrunk); ok {
				t.AddTraffic(w.node, perEntry)
			}
			stack = append(stack, work{node: e.NextHopNode, share: perEntry})
		}
	}
	return Unrouted{}, true
}
