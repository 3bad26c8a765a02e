package model

import (
	"fmt"

	"github.com/google/uuid"
)

// All factories are idempotent on name: calling a factory twice with the
// same name returns the same entity rather than creating a duplicate
// (invariant 2, spec §3).

// NodeFactory creates-or-returns the node named name. subtype is only
// applied on creation; an existing node's subtype is left untouched.
func (n *Network) NodeFactory(name string, subtype NodeSubtype) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()

	if name == "" {
		n.cptNode++
		name = fmt.Sprintf("node%d", n.cptNode)
	}
	if existing, ok := n.nodes[name]; ok {
		return existing
	}
	n.cptNode++
	node := NewNode(uuid.New(), name, subtype)
	n.nodes[name] = node
	if n.adj[name] == nil {
		n.adj[name] = make(map[LinkKind]map[string]struct{})
	}
	return node
}

// GetNode returns the node named name, or (nil, false).
func (n *Network) GetNode(name string) (*Node, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	node, ok := n.nodes[name]
	return node, ok
}

// Nodes returns a snapshot slice of all nodes in the pool.
func (n *Network) Nodes() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Node, 0, len(n.nodes))
	for _, node := range n.nodes {
		out = append(out, node)
	}
	return out
}

// LinkFactory creates-or-returns the link named name of the given kind
// between src and dst. Trunks additionally take a Protocol. Creating a
// trunk updates both endpoints' adjacency entries (invariant 1).
func (n *Network) LinkFactory(kind LinkKind, name, src, dst string, protocol Protocol) (*Link, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.nodes[src]; !ok {
		return nil, fmt.Errorf("model: source node %q not found", src)
	}
	if _, ok := n.nodes[dst]; !ok {
		return nil, fmt.Errorf("model: destination node %q not found", dst)
	}
	if name == "" {
		n.cptLink++
		name = fmt.Sprintf("%s%d", kind, n.cptLink)
	}
	if existing, ok := n.links[name]; ok {
		return existing, nil
	}
	n.cptLink++
	link := &Link{ID: uuid.New(), Name: name, Kind: kind, Source: src, Destination: dst, Protocol: protocol}
	if kind == KindTraffic {
		link.Path = make(map[string]struct{})
	}
	n.links[name] = link
	n.indexAdjacency(link)
	return link, nil
}

// indexAdjacency installs link into both endpoints' adjacency sets. Must be
// called with n.mu held.
func (n *Network) indexAdjacency(l *Link) {
	n.ensureAdjEntry(l.Source, l.Kind)
	n.ensureAdjEntry(l.Destination, l.Kind)
	n.adj[l.Source][l.Kind][l.Name] = struct{}{}
	n.adj[l.Destination][l.Kind][l.Name] = struct{}{}
}

func (n *Network) ensureAdjEntry(node string, kind LinkKind) {
	if n.adj[node] == nil {
		n.adj[node] = make(map[LinkKind]map[string]struct{})
	}
	if n.adj[node][kind] == nil {
		n.adj[node][kind] = make(map[string]struct{})
	}
}

// GetLink returns the link named name, or (nil, false).
func (n *Network) GetLink(name string) (*Link, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	l, ok := n.links[name]
	return l, ok
}

// Links returns a snapshot of every link of the given kind (or every link
// if kind is "").
func (n *Network) Links(kind LinkKind) []*Link {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Link, 0, len(n.links))
	for _, l := range n.links {
		if kind == "" || l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}

// LinksBetween iterates over parallel links of kind between a and b
// (multigraph support).
func (n *Network) LinksBetween(a, b string, kind LinkKind) []*Link {
	n.mu.RLock()
	defer n.mu.RUnlock()
	var out []*Link
	for name := range n.adj[a][kind] {
		l := n.links[name]
		if l == nil {
			continue
		}
		if (l.Source == a && l.Destination == b) || (l.Source == b && l.Destination == a) {
			out = append(out, l)
		}
	}
	return out
}

// IsConnected is an any-over-adjacency test: does some link of kind join a
// and b directly.
func (n *Network) IsConnected(a, b string, kind LinkKind) bool {
	return len(n.LinksBetween(a, b, kind)) > 0
}

// Neighbors returns, for node, the set of (neighborName, link) pairs
// reachable via links of kind.
func (n *Network) Neighbors(node string, kind LinkKind) []struct {
	Neighbor string
	Link     *Link
} {
	n.mu.RLock()
	defer n.mu.RUnlock()
	var out []struct {
		Neighbor string
		Link     *Link
	}
	for name := range n.adj[node][kind] {
		l := n.links[name]
		if l == nil {
			continue
		}
		if l.Kind == KindRoute && l.Source != node {
			continue // routes are unidirectional, source -> destination only
		}
		out = append(out, struct {
			Neighbor string
			Link     *Link
		}{Neighbor: l.OtherEnd(node), Link: l})
	}
	return out
}

// ASFactory creates-or-returns the AS named name, binding it to the
// network.
func (n *Network) ASFactory(name string, t ASType) *AS {
	n.mu.Lock()
	defer n.mu.Unlock()

	if name == "" {
		n.cptAS++
		name = fmt.Sprintf("AS%d", n.cptAS)
	}
	if existing, ok := n.ases[name]; ok {
		return existing
	}
	n.cptAS++
	as := newAS(uuid.New(), name, t)
	n.ases[name] = as
	return as
}

// GetAS returns the AS named name, or (nil, false).
func (n *Network) GetAS(name string) (*AS, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	as, ok := n.ases[name]
	return as, ok
}

// ASes returns a snapshot slice of all ASes.
func (n *Network) ASes() []*AS {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*AS, 0, len(n.ases))
	for _, as := range n.ases {
		out = append(out, as)
	}
	return out
}

// ObjectFactory creates-or-returns a node from a string kind, for callers
// (e.g. a generic import path) that only have kind as data. kind is taken
// as a NodeSubtype; a LinkKind value returns an error, since links need
// endpoints (use LinkFactory).
func (n *Network) ObjectFactory(name, kind string) (interface{}, error) {
	switch LinkKind(kind) {
	case KindTrunk, KindRoute, KindTraffic:
		return nil, fmt.Errorf("model: ObjectFactory requires endpoints for link kind %q; use LinkFactory", kind)
	}
	return n.NodeFactory(name, NodeSubtype(kind)), nil
}

// RemoveNode removes n's node named name and every link incident to it,
// returning the removed links.
func (n *Network) RemoveNode(name string) []*Link {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.nodes[name]; !ok {
		return nil
	}
	var removed []*Link
	for kind, set := range n.adj[name] {
		for linkName := range set {
			l := n.links[linkName]
			if l == nil {
				continue
			}
			n.unindexAndDelete(l)
			removed = append(removed, l)
			_ = kind
		}
	}
	delete(n.nodes, name)
	delete(n.adj, name)
	return removed
}

// RemoveLink removes only the named link.
func (n *Network) RemoveLink(name string) *Link {
	n.mu.Lock()
	defer n.mu.Unlock()

	l, ok := n.links[name]
	if !ok {
		return nil
	}
	n.unindexAndDelete(l)
	return l
}

// unindexAndDelete removes l from both endpoints' adjacency sets and from
// the link pool. Must be called with n.mu held.
func (n *Network) unindexAndDelete(l *Link) {
	if set := n.adj[l.Source][l.Kind]; set != nil {
		delete(set, l.Name)
	}
	if set := n.adj[l.Destination][l.Kind]; set != nil {
		delete(set, l.Name)
	}
	delete(n.links, l.Name)
}

// EraseNetwork empties every pool.
func (n *Network) EraseNetwork() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nodes = make(map[string]*Node)
	n.links = make(map[string]*Link)
	n.ases = make(map[string]*AS)
	n.adj = make(map[string]map[LinkKind]map[string]struct{})
	n.cptNode, n.cptLink, n.cptAS = 0, 0, 0
}
