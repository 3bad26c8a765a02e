// Package failure implements the failure model (C10): a side table of
// failed links and nodes held separately from the topology. Apply merges it
// into a pathfind.Constraints as excluded sets; the RFT builder instead
// queries it through the rft.Excluder methods. Per spec §3 lifecycles,
// marking a failure never mutates Link fields.
package failure

import "github.com/netdim-go/netsim/pkg/pathfind"

// Set is the scenario-held table of currently failed link names.
type Set struct {
	links map[string]struct{}
	nodes map[string]struct{}
}

// NewSet returns an empty failure set.
func NewSet() *Set {
	return &Set{links: make(map[string]struct{}), nodes: make(map[string]struct{})}
}

// FailLink marks a link as failed.
func (s *Set) FailLink(name string) { s.links[name] = struct{}{} }

// RestoreLink clears a link's failed marking.
func (s *Set) RestoreLink(name string) { delete(s.links, name) }

// FailNode marks a node as failed (all its incident links become unusable
// through the excluded-node mechanism, without enumerating each link).
func (s *Set) FailNode(name string) { s.nodes[name] = struct{}{} }

// RestoreNode clears a node's failed marking.
func (s *Set) RestoreNode(name string) { delete(s.nodes, name) }

// Clear removes every failure marking.
func (s *Set) Clear() {
	s.links = make(map[string]struct{})
	s.nodes = make(map[string]struct{})
}

// IsLinkFailed and IsNodeFailed report current marking state.
func (s *Set) IsLinkFailed(name string) bool { _, ok := s.links[name]; return ok }
func (s *Set) IsNodeFailed(name string) bool { _, ok := s.nodes[name]; return ok }

// ExcludedNodes and ExcludedTrunks expose the raw failure sets for
// algorithm packages (rft.Excluder) that build their own Constraints
// rather than going through Apply.
func (s *Set) ExcludedNodes() map[string]struct{}  { return s.nodes }
func (s *Set) ExcludedTrunks() map[string]struct{} { return s.links }

// Apply merges this failure set into c as excluded sets, returning a new
// Constraints so the caller's own constraints are left untouched.
func (s *Set) Apply(c *pathfind.Constraints) *pathfind.Constraints {
	out := &pathfind.Constraints{}
	var existingNodes, existingTrunks map[string]struct{}
	if c != nil {
		out.AllowedNodes = c.AllowedNodes
		out.AllowedTrunks = c.AllowedTrunks
		existingNodes = c.ExcludedNodes
		existingTrunks = c.ExcludedTrunks
	}
	out.ExcludedNodes = mergeSets(existingNodes, s.nodes)
	out.ExcludedTrunks = mergeSets(existingTrunks, s.links)
	return out
}

func mergeSets(a, b map[string]struct{}) map[string]struct{} {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}
