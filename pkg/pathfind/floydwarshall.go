package pathfind

import "github.com/netdim-go/netsim/pkg/model"

// FloydWarshall computes the all-pairs directional-cost distance matrix
// over the nodes allowed by c. Returns (matrix, true) normally, or
// (nil, false) if a negative cycle is detected (some W[v][v] < 0), per
// spec §4.4 / §7.
func FloydWarshall(net *model.Network, c *Constraints) (matrix map[string]map[string]float64, ok bool) {
	var names []string
	for _, n := range net.Nodes() {
		if c.NodeOK(n.Name) {
			names = append(names, n.Name)
		}
	}

	w := make(map[string]map[string]float64, len(names))
	for _, a := range names {
		w[a] = make(map[string]float64, len(names))
		for _, b := range names {
			if a == b {
				w[a][b] = 0
			} else {
				w[a][b] = InfDistance
			}
		}
	}
	for _, a := range names {
		for _, nb := range neighbors(net, a, model.KindTrunk, c) {
			cost := nb.Link.CostFrom(a)
			if cost < w[a][nb.Neighbor] {
				w[a][nb.Neighbor] = cost
			}
		}
	}

	for _, k := range names {
		for _, i := range names {
			if w[i][k] == InfDistance {
				continue
			}
			for _, j := range names {
				if w[k][j] == InfDistance {
					continue
				}
				nd := w[i][k] + w[k][j]
				if nd < w[i][j] {
					w[i][j] = nd
				}
			}
		}
	}

	for _, v := range names {
		if w[v][v] < 0 {
			return nil, false
		}
	}
	return w, true
}
