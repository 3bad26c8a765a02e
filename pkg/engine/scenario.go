// Package engine is the top-level driver (§5/§6): it owns a Network, a
// failure.Set, and Config, and exposes CalculateAll, the one pipeline that
// walks every component in the ordering §5 fixes. The algorithm packages
// return their results rather than logging them (pkg/milp's
// solver-unavailable warning is the one exception); engine is where
// pipeline results get logged.
package engine

import (
	"github.com/netdim-go/netsim/pkg/addressing"
	"github.com/netdim-go/netsim/pkg/failure"
	"github.com/netdim-go/netsim/pkg/model"
	"github.com/netdim-go/netsim/pkg/rft"
	"github.com/netdim-go/netsim/pkg/traffic"
)

// Scenario bundles a Network with the failure state and config that live
// alongside it (spec §3 Lifecycles: "failure marking is a side state held
// on the containing scenario").
type Scenario struct {
	Name    string
	Network *model.Network
	Failure *failure.Set
	Config  Config
}

// NewScenario returns an empty scenario with default config.
func NewScenario(name string) *Scenario {
	return &Scenario{
		Name:    name,
		Network: model.NewNetwork(),
		Failure: failure.NewSet(),
		Config:  DefaultConfig(),
	}
}

// CalculateAll runs the pipeline in this order: addressing -> traffic
// counter reset -> connected-route seed + ECMP or non-LB RFT per router per
// AS -> failure clear -> per-AS topology update -> per-traffic routing. No
// static routes are seeded and no label refresh is performed; the pipeline
// ends at traffic routing.
// "Failure clear" mirrors the source's calculate_all: RFTs are built
// honoring the current failure set, which is then cleared so traffic
// routing runs against the unfailed topology (the failure set's job was
// only to steer RFT construction).
func (sc *Scenario) CalculateAll() []traffic.Unrouted {
	log := withScenario(sc.Name)

	addressing.Run(sc.Network)

	for _, trunk := range sc.Network.Links(model.KindTrunk) {
		trunk.SD.Traffic, trunk.DS.Traffic = 0, 0
		trunk.SD.WCTraffic, trunk.DS.WCTraffic = 0, 0
	}

	for _, as := range sc.Network.ASes() {
		k := as.K
		if k <= 0 {
			k = sc.Config.DefaultK
		}
		for nodeName := range as.Nodes {
			node, ok := sc.Network.GetNode(nodeName)
			if !ok || node.Subtype != model.SubtypeRouter {
				continue
			}
			node.RFT = rft.Build(sc.Network, as, nodeName, k, sc.Failure)
		}
	}

	sc.Failure.Clear()

	for _, as := range sc.Network.ASes() {
		sc.Network.UpdateTopology(as)
	}

	unrouted := traffic.Route(sc.Network)
	for _, u := range unrouted {
		log.WithFields(map[string]interface{}{
			"demand": u.Demand.Name,
			"reason": u.Reason,
		}).Warn("traffic demand could not be fully routed")
	}

	return unrouted
}
