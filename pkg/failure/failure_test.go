package failure_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/netdim-go/netsim/pkg/failure"
	"github.com/netdim-go/netsim/pkg/pathfind"
)

type FailureSuite struct {
	suite.Suite
}

func (s *FailureSuite) TestFailAndRestoreLink() {
	set := failure.NewSet()
	s.False(set.IsLinkFailed("AB"))
	set.FailLink("AB")
	s.True(set.IsLinkFailed("AB"))
	set.RestoreLink("AB")
	s.False(set.IsLinkFailed("AB"))
}

func (s *FailureSuite) TestApplyMergesIntoExistingConstraints() {
	set := failure.NewSet()
	set.FailLink("AB")
	set.FailNode("X")

	base := &pathfind.Constraints{ExcludedNodes: map[string]struct{}{"Y": {}}}
	out := set.Apply(base)

	s.Contains(out.ExcludedNodes, "X")
	s.Contains(out.ExcludedNodes, "Y")
	s.Contains(out.ExcludedTrunks, "AB")
}

func (s *FailureSuite) TestApplyWithNilBase() {
	set := failure.NewSet()
	set.FailNode("X")
	out := set.Apply(nil)
	s.Contains(out.ExcludedNodes, "X")
}

func (s *FailureSuite) TestClearRemovesAllFailures() {
	set := failure.NewSet()
	set.FailLink("AB")
	set.FailNode("X")
	set.Clear()
	s.False(set.IsLinkFailed("AB"))
	s.False(set.IsNodeFailed("X"))
}

func TestFailureSuite(t *testing.T) {
	suite.Run(t, new(FailureSuite))
}
