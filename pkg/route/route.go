// pkg/route/route.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package route is the top-level orchestrator tying the k-shortest-
// path loop (pkg/search) to the validator repair loop (pkg/validator)
// into the single cooperative search the rest of the core implements
// piecewise: build a candidate, submit it, mutate the graph on
// rejection, try again, until the validator accepts or the core gives
// up (spec §5).
package route

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
	"github.com/tsailer/vfrnav-public-sub016/pkg/log"
	"github.com/tsailer/vfrnav-public-sub016/pkg/perf"
	"github.com/tsailer/vfrnav-public-sub016/pkg/search"
	"github.com/tsailer/vfrnav-public-sub016/pkg/validator"
)

// Config bundles the orchestrator's own tunables (as opposed to
// builder.Config's graph-assembly tunables): how many candidates and
// validator rounds to try before giving up.
type Config struct {
	PoolLimit            int
	IterationLimit       int
	ValidatorMaxRestarts int
}

// DefaultConfig mirrors spec §4.G/§4.I's suggested defaults.
func DefaultConfig() Config {
	return Config{PoolLimit: search.DefaultPoolLimit, IterationLimit: 64, ValidatorMaxRestarts: 3}
}

// Search is the single cooperative task of spec §5: one goroutine
// calling Run with a context for cancellation, alternating between
// the k-shortest-path loop and the validator's submit/parse/repair
// loop until a candidate is accepted or the core stops.
type Search struct {
	G       *lgraph.Graph
	Airways *airway.Table
	Perf    perf.Model
	Vdep, Vdest lgraph.VertexIndex
	Rules   []search.Alternative
	Conn    validator.Conn
	Mutator *validator.Mutator
	Finalizer *validator.Finalizer
	Logger  *log.Logger
	Cfg     Config
}

// Result is the outcome of a Run.
type Result struct {
	Nodes   []search.Node
	PlanText string
	Stop    validator.StopReason
}

// Run drives the loop until acceptance, a stopping condition, or ctx
// is cancelled. It returns the accepted route's nodes (nil if none was
// accepted) along with the StopReason bitmask (spec §7); StopNone with
// a non-nil Nodes slice means acceptance.
func (s *Search) Run(ctx context.Context) Result {
	driver := validator.NewDriver(s.Conn, s.Mutator, s.Finalizer, s.Logger, s.Cfg.ValidatorMaxRestarts)

	k := search.NewKShortest(s.G, s.Perf, s.Vdep, s.Vdest)
	if s.Cfg.PoolLimit > 0 {
		k.PoolLimit = s.Cfg.PoolLimit
	}
	if !k.Start(s.Rules) {
		return Result{Stop: validator.StopEnroute}
	}

	for iter := 0; ; iter++ {
		if err := ctx.Err(); err != nil {
			return Result{Stop: validator.StopIteration}
		}
		if s.Cfg.IterationLimit > 0 && iter >= s.Cfg.IterationLimit {
			return Result{Stop: validator.StopIteration}
		}

		candidate, ok := k.Next()
		if !ok {
			return Result{Stop: validator.StopEnroute}
		}

		planText, ok := s.render(candidate)
		if !ok {
			s.Logger.Infof("route: candidate could not be rendered to a flight plan, skipping")
			continue
		}

		accepted, mutated, stop := driver.Round(ctx, planText, s.waypointIdents(candidate))
		if stop != validator.StopNone {
			return Result{Stop: stop}
		}
		if accepted {
			return Result{Nodes: candidate.Nodes, PlanText: planText, Stop: validator.StopNone}
		}
		if mutated {
			if !k.Start(s.Rules) {
				return Result{Stop: validator.StopEnroute}
			}
		}
	}
}

// render generates an ICAO-style flight-plan route string from a
// candidate (spec §4.I: "generate an ICAO flight plan from the chosen
// route"), e.g. "N0120 F090 ALPHA DCT BRAVO N869 CHARLIE". The speed/
// level prefix is taken from the first en-route leg's cruise level.
func (s *Search) render(r search.Route) (string, bool) {
	nodes := r.Nodes
	if len(nodes) < 2 {
		return "", false
	}

	cruisePi := nodes[0].Level
	if len(nodes) > 1 {
		cruisePi = nodes[1].Level
	}
	lvl := s.Perf.LevelAt(cruisePi)

	var b strings.Builder
	fmt.Fprintf(&b, "N%04d F%03d", int(lvl.TAS), lvl.AltitudeFt/100)
	fmt.Fprintf(&b, " %s", s.G.Vertex(nodes[0].Vertex).Ident)
	for i := 1; i < len(nodes); i++ {
		e := s.G.FindEdge(nodes[i-1].Vertex, nodes[i].Vertex, airway.MatchAll)
		if e == nil {
			return "", false
		}
		fmt.Fprintf(&b, " %s %s", s.Airways.Name(e.Airway), s.G.Vertex(nodes[i].Vertex).Ident)
	}
	return b.String(), true
}

// waypointIdents returns the enroute waypoint sequence the validator
// driver's path-probe cursor walks on a stall (spec §4.I).
func (s *Search) waypointIdents(r search.Route) []string {
	idents := make([]string, len(r.Nodes))
	for i, n := range r.Nodes {
		idents[i] = s.G.Vertex(n.Vertex).Ident
	}
	return idents
}
