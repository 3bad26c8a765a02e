package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/netdim-go/netsim/pkg/model"
	"github.com/netdim-go/netsim/pkg/protocol"
)

type ProtocolSuite struct {
	suite.Suite
}

func (s *ProtocolSuite) TestRIPRoutingLinearPath() {
	net := model.NewNetwork()
	for _, n := range []string{"A", "B", "C"} {
		net.NodeFactory(n, model.SubtypeRouter)
	}
	ab, _ := net.LinkFactory(model.KindTrunk, "AB", "A", "B", model.ProtocolEthernet)
	bc, _ := net.LinkFactory(model.KindTrunk, "BC", "B", "C", model.ProtocolEthernet)
	ab.SD.Cost, ab.DS.Cost = 1, 1
	bc.SD.Cost, bc.DS.Cost = 1, 1

	as := net.ASFactory("AS1", model.ASTypeRIP)
	as.AddMemberNode("A")
	as.AddMemberNode("B")
	as.AddMemberNode("C")
	as.AddMemberTrunk("AB")
	as.AddMemberTrunk("BC")

	_, path := protocol.RIPRouting(net, as, "A", "C")
	s.Require().Len(path, 2)
	s.Equal("AB", path[0].Name)
	s.Equal("BC", path[1].Name)
}

// interAreaOSPF builds two OSPF areas joined at border router R: area1 has
// node N1, area2 has node N2, R sits in both (and thus the backbone).
func interAreaOSPF(t *testing.T) (*model.Network, *model.AS) {
	t.Helper()
	net := model.NewNetwork()
	for _, n := range []string{"N1", "R", "N2"} {
		net.NodeFactory(n, model.SubtypeRouter)
	}
	l1, err := net.LinkFactory(model.KindTrunk, "N1R", "N1", "R", model.ProtocolEthernet)
	require.NoError(t, err)
	l2, err := net.LinkFactory(model.KindTrunk, "RN2", "R", "N2", model.ProtocolEthernet)
	require.NoError(t, err)
	l1.SD.Cost, l1.DS.Cost = 1, 1
	l2.SD.Cost, l2.DS.Cost = 1, 1

	as := net.ASFactory("AS1", model.ASTypeOSPF)
	area1 := as.AddArea("area1")
	area2 := as.AddArea("area2")
	area1.Nodes["N1"] = struct{}{}
	area1.Nodes["R"] = struct{}{}
	area1.Trunks["N1R"] = struct{}{}
	area2.Nodes["R"] = struct{}{}
	area2.Nodes["N2"] = struct{}{}
	area2.Trunks["RN2"] = struct{}{}
	as.Backbone().Nodes["R"] = struct{}{}

	n1, _ := net.GetNode("N1")
	r, _ := net.GetNode("R")
	n2, _ := net.GetNode("N2")
	n1.AddArea("AS1", "area1")
	r.AddArea("AS1", "area1")
	r.AddArea("AS1", "area2")
	n2.AddArea("AS1", "area2")

	as.AddMemberNode("N1")
	as.AddMemberNode("R")
	as.AddMemberNode("N2")
	as.AddMemberTrunk("N1R")
	as.AddMemberTrunk("RN2")
	return net, as
}

func (s *ProtocolSuite) TestOSPFRoutingCrossesAtBorderRouter() {
	net, as := interAreaOSPF(s.T())
	_, path := protocol.OSPFRouting(net, as, "N1", "N2")
	s.Require().Len(path, 2)
	s.Equal("N1R", path[0].Name)
	s.Equal("RN2", path[1].Name)
}

func TestProtocolSuite(t *testing.T) {
	suite.Run(t, new(ProtocolSuite))
}
