package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/netdim-go/netsim/pkg/model"
)

// StoreSuite exercises the graph store's factories and adjacency index
// (invariants 1 and 2, spec §3).
type StoreSuite struct {
	suite.Suite
	net *model.Network
}

func (s *StoreSuite) SetupTest() {
	s.net = model.NewNetwork()
}

func (s *StoreSuite) TestNodeFactoryIdempotent() {
	a := s.net.NodeFactory("A", model.SubtypeRouter)
	b := s.net.NodeFactory("A", model.SubtypeSwitch)
	s.Same(a, b)
	s.Equal(model.SubtypeRouter, b.Subtype, "subtype set only on first creation")
}

func (s *StoreSuite) TestLinkFactoryIndexesBothEndpoints() {
	s.net.NodeFactory("A", model.SubtypeRouter)
	s.net.NodeFactory("B", model.SubtypeRouter)
	l, err := s.net.LinkFactory(model.KindTrunk, "AB", "A", "B", model.ProtocolEthernet)
	s.Require().NoError(err)

	s.True(s.net.IsConnected("A", "B", model.KindTrunk))
	nbA := s.net.Neighbors("A", model.KindTrunk)
	nbB := s.net.Neighbors("B", model.KindTrunk)
	s.Require().Len(nbA, 1)
	s.Require().Len(nbB, 1)
	s.Equal("B", nbA[0].Neighbor)
	s.Equal("A", nbB[0].Neighbor)
	s.Same(l, nbA[0].Link)
}

func (s *StoreSuite) TestRemoveLinkClearsBothEndpoints() {
	s.net.NodeFactory("A", model.SubtypeRouter)
	s.net.NodeFactory("B", model.SubtypeRouter)
	s.net.LinkFactory(model.KindTrunk, "AB", "A", "B", model.ProtocolEthernet)
	removed := s.net.RemoveLink("AB")
	s.Require().NotNil(removed)
	s.False(s.net.IsConnected("A", "B", model.KindTrunk))
	s.Empty(s.net.Neighbors("A", model.KindTrunk))
	s.Empty(s.net.Neighbors("B", model.KindTrunk))
}

func (s *StoreSuite) TestRemoveNodeYieldsIncidentLinks() {
	s.net.NodeFactory("A", model.SubtypeRouter)
	s.net.NodeFactory("B", model.SubtypeRouter)
	s.net.NodeFactory("C", model.SubtypeRouter)
	s.net.LinkFactory(model.KindTrunk, "AB", "A", "B", model.ProtocolEthernet)
	s.net.LinkFactory(model.KindTrunk, "AC", "A", "C", model.ProtocolEthernet)

	removed := s.net.RemoveNode("A")
	s.Len(removed, 2)
	_, ok := s.net.GetNode("A")
	s.False(ok)
	s.Empty(s.net.Neighbors("B", model.KindTrunk))
	s.Empty(s.net.Neighbors("C", model.KindTrunk))
}

func (s *StoreSuite) TestASFactoryIdempotent() {
	as1 := s.net.ASFactory("AS1", model.ASTypeOSPF)
	as2 := s.net.ASFactory("AS1", model.ASTypeRIP)
	s.Same(as1, as2)
	s.NotNil(as1.Backbone(), "OSPF AS auto-creates the Backbone area")
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func TestDirectionalCost(t *testing.T) {
	net := model.NewNetwork()
	net.NodeFactory("A", model.SubtypeRouter)
	net.NodeFactory("B", model.SubtypeRouter)
	l, err := net.LinkFactory(model.KindTrunk, "AB", "A", "B", model.ProtocolEthernet)
	require.NoError(t, err)
	l.SD.Cost = 5
	l.DS.Cost = 7
	require.Equal(t, 5.0, l.CostFrom("A"))
	require.Equal(t, 7.0, l.CostFrom("B"))
	require.Equal(t, "B", l.OtherEnd("A"))
	require.Equal(t, "A", l.OtherEnd("B"))
}
