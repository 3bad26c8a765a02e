// Package generate builds stock topologies (§6) directly onto a
// model.Network via NodeFactory/LinkFactory, following the teacher
// builder package's per-topology Constructor convention: one function per
// shape, deterministic ID and edge-emission order, an explicit minimum
// parameter check, and plain sentinel errors instead of panics.
package generate

import (
	"errors"
	"fmt"

	"github.com/netdim-go/netsim/pkg/model"
)

var (
	// ErrTooFewNodes is returned when a generator's size parameter is
	// below the shape's minimum (a cycle needs 3 nodes, a mesh needs 2...).
	ErrTooFewNodes = errors.New("generate: too few nodes for this topology")
	// ErrBadKneserParams is returned when Kneser's (n,k) pair is invalid.
	ErrBadKneserParams = errors.New("generate: kneser requires n > 2k")
)

func idFn(prefix string, i int) string {
	return fmt.Sprintf("%s%d", prefix, i)
}

func connect(net *model.Network, subtype model.NodeSubtype, protocol model.Protocol, a, b string) {
	net.NodeFactory(a, subtype)
	net.NodeFactory(b, subtype)
	net.LinkFactory(model.KindTrunk, "", a, b, protocol)
}

// Tree builds a balanced binary tree over n nodes: node i's children are at
// 2i+1 and 2i+2, root at index 0.
func Tree(net *model.Network, n int, subtype model.NodeSubtype, protocol model.Protocol) error {
	if n < 1 {
		return fmt.Errorf("generate.Tree: n=%d: %w", n, ErrTooFewNodes)
	}
	net.NodeFactory(idFn("n", 0), subtype)
	for i := 1; i < n; i++ {
		parent := (i - 1) / 2
		connect(net, subtype, protocol, idFn("n", parent), idFn("n", i))
	}
	return nil
}

// Star builds a hub-and-spoke topology: one "Center" node connected to n-1
// leaves, leaf IDs emitted in ascending index order.
func Star(net *model.Network, n int, subtype model.NodeSubtype, protocol model.Protocol) error {
	const minNodes = 2
	if n < minNodes {
		return fmt.Errorf("generate.Star: n=%d < min=%d: %w", n, minNodes, ErrTooFewNodes)
	}
	net.NodeFactory("Center", subtype)
	for i := 1; i < n; i++ {
		connect(net, subtype, protocol, "Center", idFn("n", i))
	}
	return nil
}

// FullMesh builds the complete graph K_n: every unordered pair {i,j}, i<j,
// gets exactly one trunk.
func FullMesh(net *model.Network, n int, subtype model.NodeSubtype, protocol model.Protocol) error {
	const minNodes = 2
	if n < minNodes {
		return fmt.Errorf("generate.FullMesh: n=%d < min=%d: %w", n, minNodes, ErrTooFewNodes)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			connect(net, subtype, protocol, idFn("n", i), idFn("n", j))
		}
	}
	return nil
}

// Ring builds the n-cycle C_n: node i connects to (i+1)%n.
func Ring(net *model.Network, n int, subtype model.NodeSubtype, protocol model.Protocol) error {
	const minNodes = 3
	if n < minNodes {
		return fmt.Errorf("generate.Ring: n=%d < min=%d: %w", n, minNodes, ErrTooFewNodes)
	}
	for i := 0; i < n; i++ {
		connect(net, subtype, protocol, idFn("n", i), idFn("n", (i+1)%n))
	}
	return nil
}

// SquareTiling builds an n x n grid: node (r,c) connects to its right and
// down neighbors, giving the standard rectangular mesh.
func SquareTiling(net *model.Network, n int, subtype model.NodeSubtype, protocol model.Protocol) error {
	const minSide = 2
	if n < minSide {
		return fmt.Errorf("generate.SquareTiling: n=%d < min=%d: %w", n, minSide, ErrTooFewNodes)
	}
	id := func(r, c int) string { return fmt.Sprintf("n%d_%d", r, c) }
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			net.NodeFactory(id(r, c), subtype)
			if c+1 < n {
				connect(net, subtype, protocol, id(r, c), id(r, c+1))
			}
			if r+1 < n {
				connect(net, subtype, protocol, id(r, c), id(r+1, c))
			}
		}
	}
	return nil
}

// Hypercube builds the n-dimensional hypercube Q_n: 2^n nodes labeled by
// their binary index, edges between indices differing in exactly one bit.
func Hypercube(net *model.Network, n int, subtype model.NodeSubtype, protocol model.Protocol) error {
	const minDim = 1
	if n < minDim {
		return fmt.Errorf("generate.Hypercube: n=%d < min=%d: %w", n, minDim, ErrTooFewNodes)
	}
	size := 1 << uint(n)
	for i := 0; i < size; i++ {
		net.NodeFactory(idFn("n", i), subtype)
	}
	for i := 0; i < size; i++ {
		for bit := 0; bit < n; bit++ {
			j := i ^ (1 << uint(bit))
			if j > i {
				connect(net, subtype, protocol, idFn("n", i), idFn("n", j))
			}
		}
	}
	return nil
}

// Petersen builds the generalized Petersen graph GP(n,k): an outer n-cycle
// "o0..o(n-1)", an inner set of n nodes "i0..i(n-1)" connected in steps of
// k (the inner star polygon), and spokes o_i - i_i.
func Petersen(net *model.Network, n, k int, subtype model.NodeSubtype, protocol model.Protocol) error {
	const minN = 3
	if n < minN || k < 1 || 2*k >= n {
		return fmt.Errorf("generate.Petersen: n=%d k=%d: %w", n, k, ErrBadKneserParams)
	}
	outer := func(i int) string { return fmt.Sprintf("o%d", i) }
	inner := func(i int) string { return fmt.Sprintf("i%d", i) }
	for i := 0; i < n; i++ {
		connect(net, subtype, protocol, outer(i), outer((i+1)%n))
		connect(net, subtype, protocol, inner(i), inner((i+k)%n))
		connect(net, subtype, protocol, outer(i), inner(i))
	}
	return nil
}

// Kneser builds the Kneser graph K(n,k): one node per k-subset of {0..n-1},
// an edge between any two disjoint subsets. n > 2k is required; otherwise
// ErrBadKneserParams is returned.
func Kneser(net *model.Network, n, k int, subtype model.NodeSubtype, protocol model.Protocol) error {
	if n <= 2*k {
		return fmt.Errorf("generate.Kneser: n=%d k=%d: %w", n, k, ErrBadKneserParams)
	}
	subsets := kSubsets(n, k)
	names := make([]string, len(subsets))
	for i, s := range subsets {
		names[i] = subsetName(s)
		net.NodeFactory(names[i], subtype)
	}
	for i := 0; i < len(subsets); i++ {
		for j := i + 1; j < len(subsets); j++ {
			if disjoint(subsets[i], subsets[j]) {
				connect(net, subtype, protocol, names[i], names[j])
			}
		}
	}
	return nil
}

func kSubsets(n, k int) [][]int {
	var out [][]int
	var combo []int
	var rec func(start int)
	rec = func(start int) {
		if len(combo) == k {
			out = append(out, append([]int(nil), combo...))
			return
		}
		for v := start; v < n; v++ {
			combo = append(combo, v)
			rec(v + 1)
			combo = combo[:len(combo)-1]
		}
	}
	rec(0)
	return out
}

func disjoint(a, b []int) bool {
	set := make(map[int]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; ok {
			return false
		}
	}
	return true
}

func subsetName(s []int) string {
	out := "s"
	for _, v := range s {
		out += fmt.Sprintf("_%d", v)
	}
	return out
}
