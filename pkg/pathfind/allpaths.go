package pathfind

import "github.com/netdim-go/netsim/pkg/model"

// AllLoopFreePaths depth-first enumerates every simple path from source,
// under c. If target is non-empty, it yields each simple path reaching
// target (via visit); if target is empty, it yields every maximal
// dead-end path (a path that cannot be extended further).
func AllLoopFreePaths(net *model.Network, source, target string, c *Constraints, visit func(path []*model.Link) bool) {
	visitedNodes := map[string]struct{}{source: {}}
	var stack []*model.Link

	var walk func(cur string) bool
	walk = func(cur string) bool {
		if target != "" && cur == target {
			return visit(append([]*model.Link{}, stack...))
		}
		nbs := neighbors(net, cur, model.KindTrunk, c)
		extended := false
		for _, nb := range nbs {
			if _, ok := visitedNodes[nb.Neighbor]; ok {
				continue
			}
			extended = true
			visitedNodes[nb.Neighbor] = struct{}{}
			stack = append(stack, nb.Link)

			cont := walk(nb.Neighbor)

			stack = stack[:len(stack)-1]
			delete(visitedNodes, nb.Neighbor)
			if !cont {
				return false
			}
		}
		if target == "" && !extended && len(stack) > 0 {
			return visit(append([]*model.Link{}, stack...))
		}
		return true
	}
	walk(source)
}
