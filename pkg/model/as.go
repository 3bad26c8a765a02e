package model

import "github.com/google/uuid"

// Area is an OSPF/IS-IS subdivision of an AS: an owned set of member nodes
// and member trunks plus an id. Every OSPF/IS-IS AS owns a distinguished
// Backbone area (see AS.Backbone).
type Area struct {
	ID     uuid.UUID
	Name   string
	Nodes  map[string]struct{}
	Trunks map[string]struct{}
}

func newArea(id uuid.UUID, name string) *Area {
	return &Area{ID: id, Name: name, Nodes: make(map[string]struct{}), Trunks: make(map[string]struct{})}
}

// AS is an Autonomous System: a routing domain owning a set of member
// nodes, member trunks, edge nodes (nodes touching a non-member node), and
// -- for OSPF/IS-IS -- a set of border routers and a mapping of area name
// to Area.
type AS struct {
	ID     uuid.UUID
	Name   string
	Type   ASType
	Nodes  map[string]struct{}
	Trunks map[string]struct{}

	EdgeNodes     map[string]struct{}
	BorderRouters map[string]struct{}
	Areas         map[string]*Area

	// ECMP selects between the ECMP RFT builder (K candidates per
	// subnetwork) and the non-LB variant (one candidate, first reached
	// under pure Dijkstra relaxation). K is the ECMP cap when ECMP=true.
	ECMP bool
	K    int
}

func newAS(id uuid.UUID, name string, t ASType) *AS {
	as := &AS{
		ID:            id,
		Name:          name,
		Type:          t,
		Nodes:         make(map[string]struct{}),
		Trunks:        make(map[string]struct{}),
		EdgeNodes:     make(map[string]struct{}),
		BorderRouters: make(map[string]struct{}),
		Areas:         make(map[string]*Area),
		ECMP:          true,
		K:             4,
	}
	if t == ASTypeOSPF || t == ASTypeISIS {
		as.Areas[BackboneAreaKey] = newArea(uuid.New(), BackboneAreaKey)
	}
	return as
}

// Backbone returns the AS's distinguished backbone area, or nil for a RIP
// AS (which has no areas).
func (as *AS) Backbone() *Area {
	return as.Areas[BackboneAreaKey]
}

// AddArea creates (or returns the existing) non-backbone area named name.
func (as *AS) AddArea(name string) *Area {
	if a, ok := as.Areas[name]; ok {
		return a
	}
	a := newArea(uuid.New(), name)
	as.Areas[name] = a
	return a
}

// AddMemberNode and AddMemberTrunk record an entity as belonging to the AS.
func (as *AS) AddMemberNode(name string) { as.Nodes[name] = struct{}{} }
func (as *AS) AddMemberTrunk(name string) {
	as.Trunks[name] = struct{}{}
}

// HasNode and HasTrunk report membership.
func (as *AS) HasNode(name string) bool   { _, ok := as.Nodes[name]; return ok }
func (as *AS) HasTrunk(name string) bool  { _, ok := as.Trunks[name]; return ok }

// PruneDangling drops members that no longer exist in the network's node
// and link pools. §7: "Inconsistent topology" errors are handled lazily --
// removing a node concurrently referenced by an AS leaves the AS with a
// dangling member, pruned on the next UpdateTopology call rather than
// eagerly cascaded.
func (as *AS) PruneDangling(exists func(kind LinkKind, name string) bool, nodeExists func(string) bool) {
	for name := range as.Nodes {
		if !nodeExists(name) {
			delete(as.Nodes, name)
		}
	}
	for name := range as.Trunks {
		if !exists(KindTrunk, name) {
			delete(as.Trunks, name)
		}
	}
	for _, a := range as.Areas {
		for name := range a.Nodes {
			if !nodeExists(name) {
				delete(a.Nodes, name)
			}
		}
		for name := range a.Trunks {
			if !exists(KindTrunk, name) {
				delete(a.Trunks, name)
			}
		}
	}
}
