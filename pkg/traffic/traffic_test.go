package traffic_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/netdim-go/netsim/pkg/addressing"
	"github.com/netdim-go/netsim/pkg/model"
	"github.com/netdim-go/netsim/pkg/rft"
	"github.com/netdim-go/netsim/pkg/traffic"
)

type TrafficSuite struct {
	suite.Suite
}

func buildAndRoute(t *testing.T, net *model.Network, as *model.AS, routers []string) {
	t.Helper()
	addressing.Run(net)
	net.UpdateTopology(as)
	for _, r := range routers {
		node, _ := net.GetNode(r)
		node.RFT = rft.Build(net, as, r, as.K, nil)
	}
}

// TestLinearDemandCarriesFullThroughput is S4's first half: S1 topology
// plus a traffic demand A->C of throughput 10; both trunks should carry 10.
func (s *TrafficSuite) TestLinearDemandCarriesFullThroughput() {
	net := model.NewNetwork()
	for _, n := range []string{"A", "B", "C"} {
		net.NodeFactory(n, model.SubtypeRouter)
	}
	ab, _ := net.LinkFactory(model.KindTrunk, "AB", "A", "B", model.ProtocolEthernet)
	bc, _ := net.LinkFactory(model.KindTrunk, "BC", "B", "C", model.ProtocolEthernet)
	ab.SD.Cost, ab.DS.Cost = 1, 1
	bc.SD.Cost, bc.DS.Cost = 1, 1

	as := net.ASFactory("AS1", model.ASTypeRIP)
	for _, n := range []string{"A", "B", "C"} {
		as.AddMemberNode(n)
	}
	as.AddMemberTrunk("AB")
	as.AddMemberTrunk("BC")

	buildAndRoute(s.T(), net, as, []string{"A", "B", "C"})

	demand, err := net.LinkFactory(model.KindTraffic, "T1", "A", "C", model.ProtocolEthernet)
	require.NoError(s.T(), err)
	demand.Throughput = 10

	unrouted := traffic.Route(net)
	s.Empty(unrouted)
	s.Equal(10.0, ab.SD.Traffic)
	s.Equal(10.0, bc.SD.Traffic)
}

// TestDiamondDemandSplitsEvenly is S2's topology plus a traffic demand A->D
// of throughput 10: each ECMP path should carry 5.
func (s *TrafficSuite) TestDiamondDemandSplitsEvenly() {
	net := model.NewNetwork()
	for _, n := range []string{"A", "B", "C", "D"} {
		net.NodeFactory(n, model.SubtypeRouter)
	}
	names := [][3]string{{"AB", "A", "B"}, {"AC", "A", "C"}, {"BD", "B", "D"}, {"CD", "C", "D"}}
	links := map[string]*model.Link{}
	for _, l := range names {
		link, err := net.LinkFactory(model.KindTrunk, l[0], l[1], l[2], model.ProtocolEthernet)
		require.NoError(s.T(), err)
		link.SD.Cost, link.DS.Cost = 1, 1
		links[l[0]] = link
	}

	as := net.ASFactory("AS1", model.ASTypeRIP)
	for _, n := range []string{"A", "B", "C", "D"} {
		as.AddMemberNode(n)
	}
	for _, l := range names {
		as.AddMemberTrunk(l[0])
	}
	as.K = 2

	buildAndRoute(s.T(), net, as, []string{"A", "B", "C", "D"})

	demand, err := net.LinkFactory(model.KindTraffic, "T1", "A", "D", model.ProtocolEthernet)
	require.NoError(s.T(), err)
	demand.Throughput = 10

	unrouted := traffic.Route(net)
	s.Empty(unrouted)
	s.Equal(5.0, links["AB"].SD.Traffic)
	s.Equal(5.0, links["AC"].SD.Traffic)
	s.Equal(5.0, links["BD"].SD.Traffic)
	s.Equal(5.0, links["CD"].SD.Traffic)
}

func (s *TrafficSuite) TestIsolatedDestinationReportsUnrouted() {
	net := model.NewNetwork()
	net.NodeFactory("A", model.SubtypeRouter)
	net.NodeFactory("Z", model.SubtypeRouter) // no incident trunks
	demand, err := net.LinkFactory(model.KindTraffic, "T1", "A", "Z", model.ProtocolEthernet)
	require.NoError(s.T(), err)
	demand.Throughput = 1

	unrouted := traffic.Route(net)
	s.Require().Len(unrouted, 1)
	s.Equal(traffic.ReasonNoDestinationTrunk, unrouted[0].Reason)
	s.Empty(demand.Path)
}

func TestTrafficSuite(t *testing.T) {
	suite.Run(t, new(TrafficSuite))
}
