// pkg/tfr/translator.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package tfr

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/airspace"
	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

// VertexLookup resolves an identifier to the graph vertices sharing
// it (there may be more than one, per spec's heuristic pruning note).
type VertexLookup func(ident string) []lgraph.VertexIndex

// Translator applies TFR rule matches to a search graph (component
// H). levelAltitudes[pi] is the altitude in feet of cruise-level
// index pi, used to turn a crossing gate's altset.Set into the
// cruise-level indices to kill.
type Translator struct {
	Graph            *lgraph.Graph
	Airways          *airway.Table
	Airspaces        *airspace.Cache
	VertexOf         VertexLookup
	LevelAltitudes   []int
	ForbiddenPenalty float32
}

// MutationOutcome reports what a single Translate call did.
type MutationOutcome struct {
	Mutated      bool
	Mandatory    []Alternative // collected Mandatory-type alternatives, to hand to the sequence planner
}

func (t *Translator) levelsInBand(lo, hi int) []int {
	var out []int
	for pi, alt := range t.LevelAltitudes {
		if alt >= lo && alt < hi {
			out = append(out, pi)
		}
	}
	return out
}

// killEdgeLevels invalidates edge (from,to,airway) at the given
// levels, in both directions if bidirectional is true.
func (t *Translator) killEdgeLevels(fromIdent, toIdent string, aw airway.Index, levels []int, bidirectional bool) bool {
	mutated := false
	kill := func(fromIdent, toIdent string) {
		for _, u := range t.VertexOf(fromIdent) {
			for _, v := range t.VertexOf(toIdent) {
				e := t.Graph.FindEdge(u, v, aw)
				if e == nil {
					continue
				}
				for _, pi := range levels {
					if e.ValidAtLevel(pi) {
						e.Metric[pi] = lgraph.InvalidMetric
						mutated = true
					}
				}
			}
		}
	}
	kill(fromIdent, toIdent)
	if bidirectional {
		kill(toIdent, fromIdent)
	}
	if mutated {
		t.Graph.RemoveInvalidEdges()
	}
	return mutated
}

// scaleForbiddenFallback scales the solution's cited vertex/edge
// metric by factor, the fallback used when no alternative's crossing
// condition or route-static segment actually matched (spec §4.H).
func (t *Translator) scaleForbiddenFallback(ident string, factor float32) bool {
	mutated := false
	for _, u := range t.VertexOf(ident) {
		for _, rec := range t.Graph.OutEdges(u) {
			for pi, m := range rec.Edge.Metric {
				if m != lgraph.InvalidMetric {
					rec.Edge.Metric[pi] = m * factor
					mutated = true
				}
			}
		}
	}
	return mutated
}

// Translate applies every match in matches to the graph, returning
// whether any mutation occurred and the accumulated Mandatory
// alternatives for the sequence planner to consume.
func (t *Translator) Translate(matches []Match) MutationOutcome {
	var out MutationOutcome

	for _, m := range matches {
		switch m.Type {
		case Forbidden:
			if t.applyForbidden(m) {
				out.Mutated = true
			}
		case Closed:
			if t.applyClosed(m) {
				out.Mutated = true
			}
		case Mandatory:
			out.Mandatory = append(out.Mandatory, m.Alternatives...)
			if m.IsMandatoryInbound {
				if t.applyMandatoryInbound(m) {
					out.Mutated = true
				}
			}
		}
	}
	return out
}

func (t *Translator) applyForbidden(m Match) bool {
	matched := false
	for _, alt := range m.Alternatives {
		if alt.RouteStatic {
			aw := t.Airways.Lookup(alt.RouteStaticAirway, false)
			if t.killEdgeLevels(alt.RouteStaticFrom, alt.RouteStaticTo, aw, allLevels(len(t.LevelAltitudes)), !m.IsUnconditional) {
				matched = true
			}
			continue
		}
		for _, cond := range alt.CrossingConditions {
			a := t.Airspaces.Find(cond, "", "")
			if a == nil {
				continue
			}
			for _, seq := range alt.Sequences {
				for _, step := range seq.Steps {
					for _, vi := range t.VertexOf(step.Ident) {
						p := t.Graph.Vertex(vi).Coord
						rng := t.Airspaces.GetAltRange(a, p, nil, step.LevelBandLo, step.LevelBandHi)
						for _, iv := range rng.Intervals() {
							levels := t.levelsInBand(iv.Lo, iv.Hi)
							if len(levels) == 0 {
								continue
							}
							aw := airway.MatchAll
							if step.AirwayToNext != "" {
								aw = t.Airways.Lookup(step.AirwayToNext, false)
							}
							for _, out := range t.Graph.OutEdges(vi) {
								if !airway.Matches(out.Edge.Airway, aw) {
									continue
								}
								for _, pi := range levels {
									if out.Edge.ValidAtLevel(pi) {
										out.Edge.Metric[pi] = lgraph.InvalidMetric
										matched = true
									}
								}
							}
						}
					}
				}
			}
		}
	}
	if matched {
		t.Graph.RemoveInvalidEdges()
		return true
	}
	// Fall back to scaling the solution's metric by the forbidden
	// penalty so the next Dijkstra run disprefers it.
	for _, alt := range m.Alternatives {
		for _, seq := range alt.Sequences {
			for _, step := range seq.Steps {
				if t.scaleForbiddenFallback(step.Ident, t.ForbiddenPenalty) {
					matched = true
				}
			}
		}
	}
	return matched
}

func (t *Translator) applyClosed(m Match) bool {
	matched := false
	for _, alt := range m.Alternatives {
		for _, seq := range alt.Sequences {
			for _, step := range seq.Steps {
				levels := t.levelsInBand(step.LevelBandLo, step.LevelBandHi)
				aw := airway.MatchAll
				if step.AirwayToNext != "" {
					aw = t.Airways.Lookup(step.AirwayToNext, false)
				}
				for _, vi := range t.VertexOf(step.Ident) {
					for _, oe := range t.Graph.OutEdges(vi) {
						if !airway.Matches(oe.Edge.Airway, aw) {
							continue
						}
						for _, pi := range levels {
							if oe.Edge.ValidAtLevel(pi) {
								oe.Edge.Metric[pi] = lgraph.InvalidMetric
								matched = true
							}
						}
					}
				}
			}
		}
	}
	if matched {
		t.Graph.RemoveInvalidEdges()
		return true
	}
	// Reciprocal-penalty fallback, mirroring the forbidden case.
	factor := float32(1)
	if t.ForbiddenPenalty != 0 {
		factor = 1 / t.ForbiddenPenalty
	}
	for _, alt := range m.Alternatives {
		for _, seq := range alt.Sequences {
			for _, step := range seq.Steps {
				if t.scaleForbiddenFallback(step.Ident, factor) {
					matched = true
				}
			}
		}
	}
	return matched
}

// applyMandatoryInbound kills all in-edges of the rule's terminal
// point at levels not justified by any alternative's level bands.
func (t *Translator) applyMandatoryInbound(m Match) bool {
	justified := make(map[int]bool)
	for _, alt := range m.Alternatives {
		for _, seq := range alt.Sequences {
			for _, step := range seq.Steps {
				for _, pi := range t.levelsInBand(step.LevelBandLo, step.LevelBandHi) {
					justified[pi] = true
				}
			}
		}
	}

	mutated := false
	for _, vi := range t.VertexOf(m.TerminalIdent) {
		for _, in := range t.Graph.InEdges(vi) {
			for pi, mv := range in.Edge.Metric {
				if mv != lgraph.InvalidMetric && !justified[pi] {
					in.Edge.Metric[pi] = lgraph.InvalidMetric
					mutated = true
				}
			}
		}
	}
	if mutated {
		t.Graph.RemoveInvalidEdges()
	}
	return mutated
}

func allLevels(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
