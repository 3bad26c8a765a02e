// Package layout implements the two force-directed layout algorithms of
// §6 (Eades' spring layout and Fruchterman-Reingold) plus the geometry
// helpers (distance, haversine) the rest of the engine uses for
// heuristics. Both layouts mutate node (x, y, vx, vy) in place, per spec
// §3's "layout state is engine-accessible but only mutated by the layout
// component".
package layout

import (
	"math"

	"github.com/netdim-go/netsim/pkg/model"
)

// Distance returns the Euclidean distance for a displacement (dx, dy).
func Distance(dx, dy float64) float64 {
	return math.Sqrt(dx*dx + dy*dy)
}

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// nodes' (X, Y) treated as (longitude, latitude) in degrees.
func Haversine(src, dst *model.Node) float64 {
	lat1, lon1 := src.Y*math.Pi/180, src.X*math.Pi/180
	lat2, lon2 := dst.Y*math.Pi/180, dst.X*math.Pi/180
	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func neighborNames(net *model.Network, node string) []string {
	var out []string
	for _, nb := range net.Neighbors(node, model.KindTrunk) {
		out = append(out, nb.Neighbor)
	}
	return out
}

// SpringLayout runs Eades' spring-embedder algorithm over nodes for cf
// iterations: connected pairs attract logarithmically, non-adjacent pairs
// repel inversely with the square of distance, scaled by k and the spring
// constant sf, with ideal edge length L0.
func SpringLayout(net *model.Network, nodes []*model.Node, cf int, k, sf, l0 float64) {
	for iter := 0; iter < cf; iter++ {
		forces := make(map[string][2]float64, len(nodes))
		for _, a := range nodes {
			var fx, fy float64
			neighbors := map[string]struct{}{}
			for _, name := range neighborNames(net, a.Name) {
				neighbors[name] = struct{}{}
			}
			for _, b := range nodes {
				if a.Name == b.Name {
					continue
				}
				dx, dy := b.X-a.X, b.Y-a.Y
				dist := Distance(dx, dy)
				if dist < 1e-6 {
					dist = 1e-6
				}
				ux, uy := dx/dist, dy/dist
				if _, connected := neighbors[b.Name]; connected {
					// Attraction grows with log(dist/L0): pulls connected
					// nodes toward the ideal edge length.
					mag := sf * math.Log(dist/l0+1e-9)
					fx += ux * mag
					fy += uy * mag
				} else {
					// Repulsion falls off with the square of distance.
					mag := -k * k / (dist * dist)
					fx += ux * mag
					fy += uy * mag
				}
			}
			forces[a.Name] = [2]float64{fx, fy}
		}
		for _, a := range nodes {
			f := forces[a.Name]
			a.VX, a.VY = f[0], f[1]
			a.X += a.VX
			a.Y += a.VY
		}
	}
}

// FruchtermanReingoldLayout runs the Fruchterman-Reingold force model:
// attraction proportional to dist^2/k, repulsion proportional to k^2/dist,
// with per-iteration displacement capped by limit and k derived from the
// optimal pairwise distance opd.
func FruchtermanReingoldLayout(net *model.Network, nodes []*model.Node, opd, limit float64, iterations int) {
	k := opd
	temperature := limit
	for iter := 0; iter < iterations; iter++ {
		disp := make(map[string][2]float64, len(nodes))
		for _, a := range nodes {
			for _, b := range nodes {
				if a.Name == b.Name {
					continue
				}
				dx, dy := a.X-b.X, a.Y-b.Y
				dist := Distance(dx, dy)
				if dist < 1e-6 {
					dist = 1e-6
				}
				repel := k * k / dist
				d := disp[a.Name]
				d[0] += dx / dist * repel
				d[1] += dy / dist * repel
				disp[a.Name] = d
			}
		}
		for _, nb := range net.Links(model.KindTrunk) {
			a, aok := net.GetNode(nb.Source)
			b, bok := net.GetNode(nb.Destination)
			if !aok || !bok {
				continue
			}
			dx, dy := a.X-b.X, a.Y-b.Y
			dist := Distance(dx, dy)
			if dist < 1e-6 {
				dist = 1e-6
			}
			attract := dist * dist / k
			da, db := disp[a.Name], disp[b.Name]
			da[0] -= dx / dist * attract
			da[1] -= dy / dist * attract
			db[0] += dx / dist * attract
			db[1] += dy / dist * attract
			disp[a.Name] = da
			disp[b.Name] = db
		}
		for _, a := range nodes {
			d := disp[a.Name]
			mag := Distance(d[0], d[1])
			if mag < 1e-6 {
				continue
			}
			capped := math.Min(mag, temperature)
			a.VX, a.VY = d[0]/mag*capped, d[1]/mag*capped
			a.X += a.VX
			a.Y += a.VY
		}
		temperature *= 0.95 // simulated-annealing cooling
	}
}
