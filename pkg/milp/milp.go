// Package milp offers entry points for the optional integer-LP formulations
// of §4.9 (shortest path, max flow, min-cost flow, K link-disjoint shortest
// paths, RWA wavelength assignment). The package builds no formulation
// itself: each entry point hands only the problem name and the network to
// a caller-supplied Solver; source, sink and the other parameters are not
// forwarded. No MILP solver ships in this module's dependency set; with a
// nil Solver every entry point degrades per §7's "solver unavailable"
// contract: log one warning and return a null result, rather than failing
// the caller's pipeline.
package milp

import (
	"github.com/sirupsen/logrus"

	"github.com/netdim-go/netsim/pkg/model"
)

// Problem names the formulation a caller asked for, for the warning
// message and for future solver dispatch.
type Problem string

const (
	ProblemShortestPath     Problem = "shortest_path"
	ProblemMaxFlow          Problem = "max_flow"
	ProblemMinCostFlow      Problem = "min_cost_flow"
	ProblemDisjointKPaths   Problem = "k_disjoint_shortest_paths"
	ProblemWavelengthAssign Problem = "rwa_wavelength_assignment"
)

// Result is the null object every entry point returns while no solver is
// wired: Solved is always false and Objective/Assignment are zero values.
type Result struct {
	Solved     bool
	Objective  float64
	Assignment map[string]float64
}

// Solver abstracts an external integer-LP backend. No implementation ships
// with this module; wiring one in means constructing node-flow-conservation
// constraints from the network below and calling it here.
type Solver interface {
	Solve(problem Problem, net *model.Network) (Result, error)
}

var log = logrus.WithField("component", "milp")

func unavailable(problem Problem) Result {
	log.Warnf("milp: no solver configured, %s formulation skipped", problem)
	return Result{}
}

// ShortestPath would formulate single-commodity flow conservation with a
// unit source/sink demand and trunk costs as the objective; returns the
// null result until a Solver is wired in.
func ShortestPath(net *model.Network, solver Solver, source, target string) Result {
	if solver == nil {
		return unavailable(ProblemShortestPath)
	}
	res, err := solver.Solve(ProblemShortestPath, net)
	if err != nil {
		log.WithError(err).Warn("milp: shortest_path solve failed")
		return Result{}
	}
	return res
}

// MaxFlow would formulate capacity-bounded flow conservation maximizing
// flow out of source; returns the null result until a Solver is wired in.
func MaxFlow(net *model.Network, solver Solver, source, sink string) Result {
	if solver == nil {
		return unavailable(ProblemMaxFlow)
	}
	res, err := solver.Solve(ProblemMaxFlow, net)
	if err != nil {
		log.WithError(err).Warn("milp: max_flow solve failed")
		return Result{}
	}
	return res
}

// MinCostFlow would add per-unit trunk cost to MaxFlow's constraint set as
// the minimization objective at a fixed required flow value.
func MinCostFlow(net *model.Network, solver Solver, source, sink string, requiredFlow float64) Result {
	if solver == nil {
		return unavailable(ProblemMinCostFlow)
	}
	res, err := solver.Solve(ProblemMinCostFlow, net)
	if err != nil {
		log.WithError(err).Warn("milp: min_cost_flow solve failed")
		return Result{}
	}
	return res
}

// KDisjointShortestPaths would add a binary trunk-usage variable per
// candidate path and a constraint capping shared-trunk usage to 0,
// minimizing total path cost across k paths.
func KDisjointShortestPaths(net *model.Network, solver Solver, source, target string, k int) Result {
	if solver == nil {
		return unavailable(ProblemDisjointKPaths)
	}
	res, err := solver.Solve(ProblemDisjointKPaths, net)
	if err != nil {
		log.WithError(err).Warn("milp: k_disjoint_shortest_paths solve failed")
		return Result{}
	}
	return res
}

// WavelengthAssignment would formulate Routing and Wavelength Assignment
// over optical trunks: a binary variable per (trunk, wavelength) pair and
// a wavelength-continuity constraint per lightpath.
func WavelengthAssignment(net *model.Network, solver Solver, demands []*model.Link, wavelengths int) Result {
	if solver == nil {
		return unavailable(ProblemWavelengthAssign)
	}
	res, err := solver.Solve(ProblemWavelengthAssign, net)
	if err != nil {
		log.WithError(err).Warn("milp: rwa_wavelength_assignment solve failed")
		return Result{}
	}
	return res
}
