package pathfind

import "github.com/netdim-go/netsim/pkg/model"

// edgeView is one directed traversal usable during relaxation: from -> to
// via link, at the directional cost seen from "from".
type edgeView struct {
	from, to string
	link     *model.Link
	cost     float64
}

func collectEdges(net *model.Network, c *Constraints) []edgeView {
	var edges []edgeView
	seen := map[string]struct{}{}
	for _, node := range net.Nodes() {
		if !c.NodeOK(node.Name) {
			continue
		}
		for _, nb := range neighbors(net, node.Name, model.KindTrunk, c) {
			key := node.Name + "|" + nb.Link.Name
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, edgeView{from: node.Name, to: nb.Neighbor, link: nb.Link, cost: nb.Link.CostFrom(node.Name)})
		}
	}
	return edges
}

// BellmanFord computes the shortest path from source to target, tolerating
// negative edge costs (used by Bhandari after reweighting a found path to
// -1). Runs |V|+2 passes, per spec §4.4. Returns a nil path if target is
// unreachable; negCycle is true if a negative cycle affecting the source's
// reachable set was detected on the final pass.
func BellmanFord(net *model.Network, source, target string, c *Constraints) (path []*model.Link, negCycle bool) {
	nodes := net.Nodes()
	dist := make(map[string]float64, len(nodes))
	prevLink := make(map[string]*model.Link, len(nodes))
	prevNode := make(map[string]string, len(nodes))
	for _, n := range nodes {
		dist[n.Name] = InfDistance
	}
	dist[source] = 0

	edges := collectEdges(net, c)
	passes := len(nodes) + 2
	for i := 0; i < passes; i++ {
		changed := false
		for _, e := range edges {
			if dist[e.from] == InfDistance {
				continue
			}
			nd := dist[e.from] + e.cost
			if nd < dist[e.to] {
				dist[e.to] = nd
				prevLink[e.to] = e.link
				prevNode[e.to] = e.from
				changed = true
				if i == passes-1 {
					negCycle = true
				}
			}
		}
		if !changed {
			break
		}
	}

	if dist[target] == InfDistance {
		return nil, negCycle
	}
	var reversed []*model.Link
	n := target
	for n != source {
		l, ok := prevLink[n]
		if !ok {
			return nil, negCycle
		}
		reversed = append(reversed, l)
		n = prevNode[n]
	}
	path = make([]*model.Link, len(reversed))
	for i, l := range reversed {
		path[len(reversed)-1-i] = l
	}
	return path, negCycle
}
