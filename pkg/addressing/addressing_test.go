package addressing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netdim-go/netsim/pkg/addressing"
	"github.com/netdim-go/netsim/pkg/model"
)

func linearRIP(t *testing.T) (*model.Network, *model.AS) {
	t.Helper()
	net := model.NewNetwork()
	net.NodeFactory("A", model.SubtypeRouter)
	net.NodeFactory("B", model.SubtypeRouter)
	net.NodeFactory("C", model.SubtypeRouter)
	ab, err := net.LinkFactory(model.KindTrunk, "AB", "A", "B", model.ProtocolEthernet)
	require.NoError(t, err)
	bc, err := net.LinkFactory(model.KindTrunk, "BC", "B", "C", model.ProtocolEthernet)
	require.NoError(t, err)
	ab.SD.Cost, ab.DS.Cost = 1, 1
	bc.SD.Cost, bc.DS.Cost = 1, 1

	as := net.ASFactory("AS1", model.ASTypeRIP)
	as.AddMemberNode("A")
	as.AddMemberNode("B")
	as.AddMemberNode("C")
	as.AddMemberTrunk("AB")
	as.AddMemberTrunk("BC")
	return net, as
}

func TestRunAssignsRIPTrunkAddresses(t *testing.T) {
	net, _ := linearRIP(t)
	addressing.Run(net)

	ab, _ := net.GetLink("AB")
	bc, _ := net.GetLink("BC")
	require.Equal(t, "255.255.255.252", ab.SD.SubnetMask)
	require.NotEmpty(t, ab.SD.IPAddress)
	require.NotEmpty(t, ab.DS.IPAddress)
	require.NotEqual(t, ab.Sntw, bc.Sntw, "distinct trunks get distinct subnetwork ids")
}

func TestRunAssignsLoopbacksInNameOrder(t *testing.T) {
	net, _ := linearRIP(t)
	addressing.Run(net)

	a, _ := net.GetNode("A")
	b, _ := net.GetNode("B")
	c, _ := net.GetNode("C")
	require.Equal(t, "192.168.0.1", a.Loopback)
	require.Equal(t, "192.168.0.2", b.Loopback)
	require.Equal(t, "192.168.0.3", c.Loopback)
}

func TestRunNumbersInterfacesPerNode(t *testing.T) {
	net := model.NewNetwork()
	net.NodeFactory("A", model.SubtypeRouter)
	net.NodeFactory("B", model.SubtypeRouter)
	net.NodeFactory("C", model.SubtypeRouter)
	net.LinkFactory(model.KindTrunk, "AB", "A", "B", model.ProtocolEthernet)
	net.LinkFactory(model.KindTrunk, "AC", "A", "C", model.ProtocolEthernet)
	addressing.Run(net)

	ab, _ := net.GetLink("AB")
	ac, _ := net.GetLink("AC")
	require.Equal(t, "Ethernet0/0", ab.SD.Interface, "AB sorts before AC")
	require.Equal(t, "Ethernet0/1", ac.SD.Interface)
}

func TestASLessTrunksUseDistinctBlock(t *testing.T) {
	net := model.NewNetwork()
	net.NodeFactory("X", model.SubtypeRouter)
	net.NodeFactory("Y", model.SubtypeRouter)
	net.LinkFactory(model.KindTrunk, "XY", "X", "Y", model.ProtocolEthernet)
	addressing.Run(net)

	xy, _ := net.GetLink("XY")
	require.Equal(t, "172.16.0.1", xy.SD.IPAddress)
	require.Equal(t, "172.16.0.2", xy.DS.IPAddress)
}
