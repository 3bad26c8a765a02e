package pathfind_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/netdim-go/netsim/pkg/model"
	"github.com/netdim-go/netsim/pkg/pathfind"
)

// diamond builds A-{B,C}-D, all SD/DS costs 1, for ECMP-shaped tests.
func diamond(t *testing.T) *model.Network {
	t.Helper()
	net := model.NewNetwork()
	for _, n := range []string{"A", "B", "C", "D"} {
		net.NodeFactory(n, model.SubtypeRouter)
	}
	links := []struct{ a, b, name string }{
		{"A", "B", "AB"}, {"A", "C", "AC"}, {"B", "D", "BD"}, {"C", "D", "CD"},
	}
	for _, l := range links {
		link, err := net.LinkFactory(model.KindTrunk, l.name, l.a, l.b, model.ProtocolEthernet)
		require.NoError(t, err)
		link.SD.Cost, link.DS.Cost = 1, 1
	}
	return net
}

type PathfindSuite struct {
	suite.Suite
}

func (s *PathfindSuite) TestDijkstraShortestPath() {
	net := diamond(s.T())
	dist, path, tree := pathfind.Dijkstra(net, "A", "D", nil)
	s.Equal(2.0, dist["D"])
	s.Len(path, 2)
	s.NotNil(tree["D"])
}

func (s *PathfindSuite) TestDijkstraUnreachableTarget() {
	net := model.NewNetwork()
	net.NodeFactory("A", model.SubtypeRouter)
	net.NodeFactory("B", model.SubtypeRouter)
	_, path, _ := pathfind.Dijkstra(net, "A", "B", nil)
	s.Nil(path)
}

func (s *PathfindSuite) TestAStarMatchesDijkstraWithNilHeuristic() {
	net := diamond(s.T())
	path := pathfind.AStar(net, "A", "D", nil, nil, nil)
	s.Len(path, 2)
}

func (s *PathfindSuite) TestAStarWaypointConstraint() {
	net := diamond(s.T())
	path := pathfind.AStar(net, "A", "D", nil, nil, []string{"C"})
	s.Require().Len(path, 2)
	s.Equal("AC", path[0].Name)
	s.Equal("CD", path[1].Name)
}

func (s *PathfindSuite) TestBellmanFordToleratesNegativeCost() {
	net := diamond(s.T())
	ab, _ := net.GetLink("AB")
	ab.SD.Cost = -1
	path, negCycle := pathfind.BellmanFord(net, "A", "D", nil)
	s.False(negCycle)
	s.Require().NotEmpty(path)
}

func (s *PathfindSuite) TestFloydWarshallAgreesWithDijkstra() {
	net := diamond(s.T())
	matrix, ok := pathfind.FloydWarshall(net, nil)
	s.Require().True(ok)
	dist, _, _ := pathfind.Dijkstra(net, "A", "D", nil)
	s.InDelta(dist["D"], matrix["A"]["D"], 1e-9)
}

func (s *PathfindSuite) TestAllLoopFreePathsFindsBothDiamondRoutes() {
	net := diamond(s.T())
	var found int
	pathfind.AllLoopFreePaths(net, "A", "D", nil, func(path []*model.Link) bool {
		found++
		return true
	})
	s.Equal(2, found)
}

func (s *PathfindSuite) TestConstraintsExcludeNode() {
	net := diamond(s.T())
	c := &pathfind.Constraints{ExcludedNodes: map[string]struct{}{"B": {}}}
	_, path, _ := pathfind.Dijkstra(net, "A", "D", c)
	s.Require().Len(path, 2)
	s.Equal("AC", path[0].Name)
}

func TestPathfindSuite(t *testing.T) {
	suite.Run(t, new(PathfindSuite))
}
