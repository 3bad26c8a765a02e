package model

// UpdateTopology recomputes area membership and the border-router set for
// as from the current node/trunk pools (C3, spec §4.2). Edge nodes are not
// recomputed here; FindEdgeNodes does that.
//
// For OSPF and IS-IS alike, each trunk's area set is derived from its
// endpoints' area sets: a trunk is in area r iff both endpoints are in r,
// the backbone included. No per-node IS-IS level (L1, L2, L1/L2) is
// computed or stored.
// Border routers are nodes in >= 2 areas of this AS.
//
// PruneDangling runs first so a node/trunk removed from the network since
// the last call does not leave stale members behind (§7 "inconsistent
// topology").
func (n *Network) UpdateTopology(as *AS) {
	as.PruneDangling(func(kind LinkKind, name string) bool {
		_, ok := n.GetLink(name)
		return ok && n.links[name].Kind == kind
	}, func(name string) bool {
		_, ok := n.GetNode(name)
		return ok
	})

	if as.Type != ASTypeOSPF && as.Type != ASTypeISIS {
		return
	}

	// Recompute per-area trunk membership from endpoint area sets.
	for _, area := range as.Areas {
		area.Trunks = make(map[string]struct{})
	}
	for trunkName := range as.Trunks {
		l, ok := n.GetLink(trunkName)
		if !ok || l.Kind != KindTrunk {
			continue
		}
		src, _ := n.GetNode(l.Source)
		dst, _ := n.GetNode(l.Destination)
		if src == nil || dst == nil {
			continue
		}
		for areaName := range src.Areas[as.Name] {
			if dst.InArea(as.Name, areaName) {
				as.Areas[areaName].Trunks[trunkName] = struct{}{}
			}
		}
	}

	// Recompute border routers: nodes in >= 2 areas of this AS.
	as.BorderRouters = make(map[string]struct{})
	for nodeName := range as.Nodes {
		node, ok := n.GetNode(nodeName)
		if !ok {
			continue
		}
		if node.AreaCount(as.Name) >= 2 {
			as.BorderRouters[nodeName] = struct{}{}
		}
		for areaName := range node.Areas[as.Name] {
			if area, ok := as.Areas[areaName]; ok {
				area.Nodes[nodeName] = struct{}{}
			}
		}
	}
}

// FindEdgeNodes returns the subset of as's nodes having at least one trunk
// whose other endpoint lies outside the AS, and records the result on as.
func (n *Network) FindEdgeNodes(as *AS) map[string]struct{} {
	as.EdgeNodes = make(map[string]struct{})
	for nodeName := range as.Nodes {
		for _, nb := range n.Neighbors(nodeName, KindTrunk) {
			if !as.HasNode(nb.Neighbor) {
				as.EdgeNodes[nodeName] = struct{}{}
				break
			}
		}
	}
	return as.EdgeNodes
}

// AreaOfTrunk returns the non-backbone area a trunk belongs to within as,
// or "" with ok=false if it is only in the backbone or in none.
func AreaOfTrunk(as *AS, trunkName string) (string, bool) {
	for name, area := range as.Areas {
		if name == BackboneAreaKey {
			continue
		}
		if _, ok := area.Trunks[trunkName]; ok {
			return name, true
		}
	}
	return "", false
}

// TrunkInArea reports whether trunkName belongs to areaName within as.
func TrunkInArea(as *AS, areaName, trunkName string) bool {
	area, ok := as.Areas[areaName]
	if !ok {
		return false
	}
	_, ok = area.Trunks[trunkName]
	return ok
}
