// Package addressing implements the addressing pipeline (C4): per-AS trunk
// addressing, loopbacks, AS-less trunk addressing, subnetwork ids and
// interface numbering, executed in the exact order spec §4.3 fixes.
package addressing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/netdim-go/netsim/pkg/model"
)

// Run executes the full addressing pipeline over net.
func Run(net *model.Network) {
	asIndex := assignASIndexes(net)
	for as, idx := range asIndex {
		addressASTrunks(net, as, idx)
	}
	assignLoopbacks(net)
	addressASLessTrunks(net)
	assignSubnetworkIDs(net)
	assignInterfaces(net)
}

// assignASIndexes gives each AS a stable 1-based index `a` for the
// "10.a.r.z" address block (spec §4.3 step 1), ordered by name for
// determinism.
func assignASIndexes(net *model.Network) map[*model.AS]int {
	ases := net.ASes()
	sort.Slice(ases, func(i, j int) bool { return ases[i].Name < ases[j].Name })
	out := make(map[*model.AS]int, len(ases))
	for i, as := range ases {
		out[as] = i + 1
	}
	return out
}

// addressASTrunks addresses every trunk of every area of as with block
// 10.a.r.z/30, S at z=1,5,9,..., D at z+1. RIP ASes have no Areas (only
// OSPF/IS-IS ASes carry areas, model.newAS), so they address their whole
// member-trunk set as the single implicit area r=0.
func addressASTrunks(net *model.Network, as *model.AS, a int) {
	if len(as.Areas) == 0 {
		addressTrunkGroup(net, trunkNamesOf(as.Trunks), a, 0)
		return
	}

	areaNames := make([]string, 0, len(as.Areas))
	for name := range as.Areas {
		areaNames = append(areaNames, name)
	}
	sort.Strings(areaNames)

	for r, areaName := range areaNames {
		addressTrunkGroup(net, trunkNamesOf(as.Areas[areaName].Trunks), a, r)
	}
}

func trunkNamesOf(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func addressTrunkGroup(net *model.Network, trunkNames []string, a, r int) {
	z := 1
	for _, name := range trunkNames {
		l, ok := net.GetLink(name)
		if !ok || l.Kind != model.KindTrunk {
			continue
		}
		l.SD.IPAddress = fmt.Sprintf("10.%d.%d.%d", a, r, z)
		l.SD.SubnetMask = "255.255.255.252"
		l.DS.IPAddress = fmt.Sprintf("10.%d.%d.%d", a, r, z+1)
		l.DS.SubnetMask = "255.255.255.252"
		z += 4 // /30 consumes 4 addresses; .3 and .0 of the block are unused by convention
	}
}

// assignLoopbacks numbers every router 192.168.(i/255).(i%255) in 1-based
// enumeration order (spec §4.3 step 2), ordered by name for determinism.
func assignLoopbacks(net *model.Network) {
	var routers []*model.Node
	for _, n := range net.Nodes() {
		if n.Subtype == model.SubtypeRouter {
			routers = append(routers, n)
		}
	}
	sort.Slice(routers, func(i, j int) bool { return routers[i].Name < routers[j].Name })

	for idx, r := range routers {
		i := idx + 1
		r.Loopback = fmt.Sprintf("192.168.%d.%d", i/255, i%255)
	}
}

// addressASLessTrunks addresses every trunk belonging to no AS with block
// 172.16.0.z/30 (spec §4.3 step 3).
func addressASLessTrunks(net *model.Network) {
	owned := map[string]struct{}{}
	for _, as := range net.ASes() {
		for name := range as.Trunks {
			owned[name] = struct{}{}
		}
	}

	var names []string
	for _, l := range net.Links(model.KindTrunk) {
		if _, ok := owned[l.Name]; !ok {
			names = append(names, l.Name)
		}
	}
	sort.Strings(names)

	z := 1
	for _, name := range names {
		l, _ := net.GetLink(name)
		l.SD.IPAddress = fmt.Sprintf("172.16.0.%d", z)
		l.SD.SubnetMask = "255.255.255.252"
		l.DS.IPAddress = fmt.Sprintf("172.16.0.%d", z+1)
		l.DS.SubnetMask = "255.255.255.252"
		z += 4
	}
}

// assignSubnetworkIDs sets sntw = ipaddress AND mask on every trunk (spec
// §4.3 step 4).
func assignSubnetworkIDs(net *model.Network) {
	for _, l := range net.Links(model.KindTrunk) {
		l.Sntw = network(l.SD.IPAddress, l.SD.SubnetMask)
	}
}

// assignInterfaces numbers each node's trunks Ethernet0/0, Ethernet0/1, ...
// in trunk-name order, setting the side-qualified interface field
// (spec §4.3 step 5).
func assignInterfaces(net *model.Network) {
	for _, n := range net.Nodes() {
		nbs := net.Neighbors(n.Name, model.KindTrunk)
		sort.Slice(nbs, func(i, j int) bool { return nbs[i].Link.Name < nbs[j].Link.Name })
		for i, nb := range nbs {
			iface := fmt.Sprintf("Ethernet0/%d", i)
			nb.Link.AttrsFrom(n.Name).Interface = iface
		}
	}
}

// network computes ip AND mask over dotted-quad strings.
func network(ip, mask string) string {
	ipOctets, err1 := parseQuad(ip)
	maskOctets, err2 := parseQuad(mask)
	if err1 != nil || err2 != nil {
		return ""
	}
	var out [4]int
	for i := 0; i < 4; i++ {
		out[i] = ipOctets[i] & maskOctets[i]
	}
	return fmt.Sprintf("%d.%d.%d.%d", out[0], out[1], out[2], out[3])
}

func parseQuad(s string) ([4]int, error) {
	var out [4]int
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return out, fmt.Errorf("addressing: malformed dotted quad %q", s)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}
