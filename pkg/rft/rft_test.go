package rft_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/netdim-go/netsim/pkg/addressing"
	"github.com/netdim-go/netsim/pkg/model"
	"github.com/netdim-go/netsim/pkg/rft"
)

type RFTSuite struct {
	suite.Suite
}

// TestLinearRIPSeedsSingleRoute is S1: three routers A-B-C, one trunk each,
// cost 1, one RIP AS. A's RFT for subnet(B-C) should hold exactly one entry
// of type R with cost 2.
func (s *RFTSuite) TestLinearRIPSeedsSingleRoute() {
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
	as.K = 2

	addressing.Run(net)
	net.UpdateTopology(as)

	table := rft.Build(net, as, "A", as.K, nil)
	entries := table[bc.Sntw]
	s.Require().Len(entries, 1)
	s.Equal(model.RouteRIP, entries[0].RouteType)
	s.Equal(2.0, entries[0].Cost)
	s.Equal("AB", entries[0].ExitTrunk)
	s.Equal("B", entries[0].NextHopNode)
}

// TestDiamondECMP is S2: diamond A-{B,C}-D, all trunk costs 1, RIP, K=2.
// A's RFT for D's subnetwork should hold both exit trunks, cost 2 each.
func (s *RFTSuite) TestDiamondECMP() {
	net := model.NewNetwork()
	for _, n := range []string{"A", "B", "C", "D"} {
		net.NodeFactory(n, model.SubtypeRouter)
	}
	names := [][3]string{{"AB", "A", "B"}, {"AC", "A", "C"}, {"BD", "B", "D"}, {"CD", "C", "D"}}
	for _, l := range names {
		link, err := net.LinkFactory(model.KindTrunk, l[0], l[1], l[2], model.ProtocolEthernet)
		require.NoError(s.T(), err)
		link.SD.Cost, link.DS.Cost = 1, 1
	}

	as := net.ASFactory("AS1", model.ASTypeRIP)
	for _, n := range []string{"A", "B", "C", "D"} {
		as.AddMemberNode(n)
	}
	for _, l := range names {
		as.AddMemberTrunk(l[0])
	}
	as.K = 2

	addressing.Run(net)
	net.UpdateTopology(as)

	table := rft.Build(net, as, "A", as.K, nil)
	bd, _ := net.GetLink("BD")
	entries := table[bd.Sntw]
	s.Require().Len(entries, 2)
	s.Equal(entries[0].Cost, entries[1].Cost)
	s.Equal(2.0, entries[0].Cost)
	exits := map[string]bool{entries[0].ExitTrunk: true, entries[1].ExitTrunk: true}
	s.True(exits["AB"])
	s.True(exits["AC"])
}

func (s *RFTSuite) TestConnectedRouteHasZeroCost() {
	net := model.NewNetwork()
	net.NodeFactory("A", model.SubtypeRouter)
	net.NodeFactory("B", model.SubtypeRouter)
	ab, _ := net.LinkFactory(model.KindTrunk, "AB", "A", "B", model.ProtocolEthernet)
	ab.SD.Cost, ab.DS.Cost = 5, 5

	as := net.ASFactory("AS1", model.ASTypeRIP)
	as.AddMemberNode("A")
	as.AddMemberNode("B")
	as.AddMemberTrunk("AB")

	addressing.Run(net)
	net.UpdateTopology(as)

	table := rft.Build(net, as, "A", as.K, nil)
	entries := table[ab.Sntw]
	s.Require().Len(entries, 1)
	s.Equal(model.RouteConnected, entries[0].RouteType)
	s.Equal(0.0, entries[0].Cost)
}

func TestRFTSuite(t *testing.T) {
	suite.Run(t, new(RFTSuite))
}
