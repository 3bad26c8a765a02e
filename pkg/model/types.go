// Package model implements the graph store: typed entity pools for nodes,
// links, autonomous systems and areas, plus the bidirectional adjacency
// index that every algorithm package walks.
//
// The store mirrors lvlath/core's pool-of-entities-plus-adjacency design,
// generalized from a single Vertex/Edge pair to the tagged node/link union
// a network-simulation topology needs (routers, switches, OXCs, hosts...
// trunks, routes, traffic demands).
package model

import (
	"sync"

	"github.com/google/uuid"
)

// NodeSubtype enumerates the kinds of device a Node may represent.
type NodeSubtype string

const (
	SubtypeRouter      NodeSubtype = "router"
	SubtypeSwitch      NodeSubtype = "switch"
	SubtypeOXC         NodeSubtype = "oxc"
	SubtypeHost        NodeSubtype = "host"
	SubtypeAntenna     NodeSubtype = "antenna"
	SubtypeRegenerator NodeSubtype = "regenerator"
	SubtypeSplitter    NodeSubtype = "splitter"
	SubtypeCloud       NodeSubtype = "cloud"
)

// LinkKind tags the trunk/route/traffic union. Code dispatches on this tag
// rather than on inheritance (per the source's design notes).
type LinkKind string

const (
	KindTrunk   LinkKind = "trunk"
	KindRoute   LinkKind = "route"
	KindTraffic LinkKind = "traffic"
)

// Protocol is the physical-layer protocol of a trunk.
type Protocol string

const (
	ProtocolEthernet Protocol = "ethernet"
	ProtocolWDM      Protocol = "wdm"
)

// ASType selects which routing-protocol simulator governs an AS.
type ASType string

const (
	ASTypeRIP  ASType = "RIP"
	ASTypeOSPF ASType = "OSPF"
	ASTypeISIS ASType = "ISIS"
)

// RouteType is the RFT entry classification, in the precedence order used
// by the RFT builder (connected > static > protocol-native > inter-area).
type RouteType string

const (
	RouteConnected  RouteType = "C"
	RouteStatic     RouteType = "S"
	RouteRIP        RouteType = "R"
	RouteOSPFIntra  RouteType = "O"
	RouteOSPFInter  RouteType = "O IA"
	RouteISISL1     RouteType = "i L1"
	RouteISISL2     RouteType = "i L2"
	BackboneAreaKey           = "Backbone"
)

// DirectionalAttrs holds one direction's worth of a trunk's numeric and
// addressing attributes. A trunk keeps two of these, SD and DS, instead of
// reflecting over "cost"+"SD"/"DS" field-name strings.
type DirectionalAttrs struct {
	Cost       float64
	Capacity   float64
	Flow       float64
	Traffic    float64
	WCTraffic  float64
	IPAddress  string
	SubnetMask string
	Interface  string
}

// Node is a device in the topology. Areas maps AS name to the set of area
// names the node belongs to within that AS; a node with two areas in the
// same OSPF/IS-IS AS is a border router.
type Node struct {
	ID       uuid.UUID
	Name     string
	Subtype  NodeSubtype
	X, Y     float64
	VX, VY   float64
	Loopback string
	Areas    map[string]map[string]struct{}
	RFT      RFT // populated only for routers
}

// NewNode constructs a Node in its zero-traffic, zero-RFT state.
func NewNode(id uuid.UUID, name string, subtype NodeSubtype) *Node {
	return &Node{
		ID:      id,
		Name:    name,
		Subtype: subtype,
		Areas:   make(map[string]map[string]struct{}),
		RFT:     make(RFT),
	}
}

// InArea reports whether the node belongs to areaName within asName.
func (n *Node) InArea(asName, areaName string) bool {
	areas, ok := n.Areas[asName]
	if !ok {
		return false
	}
	_, ok = areas[areaName]
	return ok
}

// AddArea records membership of the node in areaName within asName.
func (n *Node) AddArea(asName, areaName string) {
	if n.Areas[asName] == nil {
		n.Areas[asName] = make(map[string]struct{})
	}
	n.Areas[asName][areaName] = struct{}{}
}

// AreaCount returns how many areas the node belongs to within asName.
func (n *Node) AreaCount(asName string) int {
	return len(n.Areas[asName])
}

// Link is a trunk, route, or traffic demand. Only the fields relevant to
// Kind are meaningful; see the Kind-specific accessors below.
type Link struct {
	ID          uuid.UUID
	Name        string
	Kind        LinkKind
	Source      string
	Destination string

	// Trunk-only fields.
	Protocol Protocol
	SD, DS   DirectionalAttrs
	Sntw     string

	// Route-only field.
	Cost float64

	// Traffic-only fields.
	Throughput float64
	Path       map[string]struct{} // set of trunk names carrying the demand
}

// OtherEnd returns the endpoint of the link that is not node.
func (l *Link) OtherEnd(node string) string {
	if l.Source == node {
		return l.Destination
	}
	return l.Source
}

// AttrsFrom returns the directional attribute record for traversing the
// trunk starting at node: SD when node is the source, DS otherwise.
func (l *Link) AttrsFrom(node string) *DirectionalAttrs {
	if l.Source == node {
		return &l.SD
	}
	return &l.DS
}

// CostFrom returns the directional cost of traversing the trunk from node's
// side, or the single Cost for a route link (direction-agnostic).
func (l *Link) CostFrom(node string) float64 {
	if l.Kind == KindRoute {
		return l.Cost
	}
	return l.AttrsFrom(node).Cost
}

// AddTraffic adds share to the directional traffic counter for the side the
// link is traversed from.
func (l *Link) AddTraffic(node string, share float64) {
	l.AttrsFrom(node).Traffic += share
}

// RFTEntry is one forwarding candidate for a destination subnetwork.
type RFTEntry struct {
	RouteType     RouteType
	NextHopIP     string
	ExitInterface string
	Cost          float64
	NextHopNode   string
	ExitTrunk     string
}

// RFT is a router's Routing Forwarding Table: subnetwork id -> up to K
// equal-cost, equal-route-type forwarding entries.
type RFT map[string][]RFTEntry

// Network is the graph store: pools of nodes/links/ASes keyed by name, plus
// the adjacency index. All mutation goes through the factory methods in
// factory.go; algorithm packages only read through the accessors here.
type Network struct {
	mu sync.RWMutex

	nodes map[string]*Node
	links map[string]*Link
	ases  map[string]*AS

	// adj[nodeName][kind] is the set of link names incident to nodeName
	// via links of that kind. Invariant 1 (spec §3): adding/removing a
	// trunk updates both endpoints' entries atomically.
	adj map[string]map[LinkKind]map[string]struct{}

	cptNode, cptLink, cptAS int
}

// NewNetwork returns an empty graph store.
func NewNetwork() *Network {
	return &Network{
		nodes: make(map[string]*Node),
		links: make(map[string]*Link),
		ases:  make(map[string]*AS),
		adj:   make(map[string]map[LinkKind]map[string]struct{}),
	}
}
