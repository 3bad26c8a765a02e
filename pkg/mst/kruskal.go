// Package mst implements Kruskal's Minimum Spanning Tree algorithm over
// trunks, using a disjoint-set (union-find) structure with path
// compression and union by rank.
package mst

import (
	"sort"

	"github.com/netdim-go/netsim/pkg/model"
)

type dsu struct {
	parent map[string]string
	rank   map[string]int
}

func newDSU(nodes []string) *dsu {
	d := &dsu{parent: make(map[string]string, len(nodes)), rank: make(map[string]int, len(nodes))}
	for _, n := range nodes {
		d.parent[n] = n
	}
	return d
}

func (d *dsu) find(x string) string {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]] // path compression
		x = d.parent[x]
	}
	return x
}

func (d *dsu) union(a, b string) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
}

// Kruskal computes the Minimum Spanning Tree over the trunks restricted to
// the given node set (or every node, if nodes is nil), using SD cost as
// the (undirected) edge weight. Returns the MST trunks and total weight.
func Kruskal(net *model.Network, nodes map[string]struct{}) ([]*model.Link, float64) {
	var nodeNames []string
	if nodes == nil {
		for _, n := range net.Nodes() {
			nodeNames = append(nodeNames, n.Name)
		}
	} else {
		for n := range nodes {
			nodeNames = append(nodeNames, n)
		}
	}
	sort.Strings(nodeNames)
	if len(nodeNames) <= 1 {
		return nil, 0
	}

	trunks := net.Links(model.KindTrunk)
	if nodes != nil {
		filtered := trunks[:0:0]
		for _, l := range trunks {
			if _, ok := nodes[l.Source]; !ok {
				continue
			}
			if _, ok := nodes[l.Destination]; !ok {
				continue
			}
			filtered = append(filtered, l)
		}
		trunks = filtered
	}
	sort.SliceStable(trunks, func(i, j int) bool { return trunks[i].SD.Cost < trunks[j].SD.Cost })

	d := newDSU(nodeNames)
	var mst []*model.Link
	var total float64
	for _, l := range trunks {
		if d.find(l.Source) == d.find(l.Destination) {
			continue
		}
		d.union(l.Source, l.Destination)
		mst = append(mst, l)
		total += l.SD.Cost
		if len(mst) == len(nodeNames)-1 {
			break
		}
	}
	return mst, total
}
