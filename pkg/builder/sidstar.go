// pkg/builder/sidstar.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package builder

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

// addSIDSTARConnectors is spec §4.D.5: create the Vdep/Vdest terminal
// vertices and wire them to every candidate vertex within radius (or
// through a single explicit fix), with a configurable airport
// connection offset and penalty.
func (b *Builder) addSIDSTARConnectors(cfg Config) {
	b.Log.Push("sidstar")
	defer b.Log.Pop()

	dep, ok := b.DB.LookupAirport(cfg.DepartureICAO)
	if !ok {
		b.Log.ErrorString("departure airport %s not found", cfg.DepartureICAO)
		return
	}
	dest, ok := b.DB.LookupAirport(cfg.DestinationICAO)
	if !ok {
		b.Log.ErrorString("destination airport %s not found", cfg.DestinationICAO)
		return
	}

	b.vdep = b.vertexFor(cfg.DepartureICAO, dep.Coordinate(), dep)
	b.vdest = b.vertexFor(cfg.DestinationICAO, dest.Coordinate(), dest)

	if cfg.SIDFix != nil {
		b.addExplicitFix(b.vdep, *cfg.SIDFix, airway.SID, cfg.SIDPenalty, cfg.AirportConnectionOffsetNM, true)
	} else {
		b.addRadiusConnectors(b.vdep, cfg.SIDRadiusNM, airway.SID, cfg.SIDPenalty, cfg.AirportConnectionOffsetNM, true)
	}

	if cfg.STARFix != nil {
		b.addExplicitFix(b.vdest, *cfg.STARFix, airway.STAR, cfg.STARPenalty, cfg.AirportConnectionOffsetNM, false)
	} else {
		b.addRadiusConnectors(b.vdest, cfg.STARRadiusNM, airway.STAR, cfg.STARPenalty, cfg.AirportConnectionOffsetNM, false)
	}
}

// addRadiusConnectors wires terminal (Vdep if outbound, Vdest if not)
// to every other vertex within radiusNM.
func (b *Builder) addRadiusConnectors(terminal lgraph.VertexIndex, radiusNM float32, aw airway.Index, penalty, offsetNM float32, outbound bool) {
	tv := b.Graph.Vertex(terminal)
	L := b.Perf.NumLevels()
	for _, v := range b.Graph.Vertices() {
		if v == terminal || v == b.vdep || v == b.vdest {
			continue
		}
		vv := b.Graph.Vertex(v)
		dist := tv.Coord.DistanceNM(vv.Coord)
		if dist > radiusNM {
			continue
		}
		metric := make([]float32, L)
		for pi := range metric {
			metric[pi] = (dist + offsetNM) * penaltyOrOne(penalty)
		}
		if outbound {
			course := tv.Coord.InitialBearing(vv.Coord)
			b.Graph.SetMetric(terminal, v, aw, metric, dist, course)
		} else {
			course := vv.Coord.InitialBearing(tv.Coord)
			b.Graph.SetMetric(v, terminal, aw, metric, dist, course)
		}
	}
}

// addExplicitFix replaces the radius-based connector set with a
// single edge through the vertex named fix.Ident nearest the terminal,
// failing (via the error log) if that vertex is not within the
// tolerance.
func (b *Builder) addExplicitFix(terminal lgraph.VertexIndex, fix SIDSTARFix, aw airway.Index, penalty, offsetNM float32, outbound bool) {
	named := b.Graph.VerticesNamed(fix.Ident)
	if len(named) == 0 {
		b.Log.ErrorString("explicit fix %q not found in database", fix.Ident)
		return
	}
	tv := b.Graph.Vertex(terminal)
	v := named[0]
	dist := tv.Coord.DistanceNM(b.Graph.Vertex(v).Coord)
	for _, cand := range named[1:] {
		if d := tv.Coord.DistanceNM(b.Graph.Vertex(cand).Coord); d < dist {
			v, dist = cand, d
		}
	}
	vv := b.Graph.Vertex(v)
	if dist > fix.ToleranceNM {
		b.Log.ErrorString("explicit fix %q outside tolerance (%.1fnm > %.1fnm)", fix.Ident, dist, fix.ToleranceNM)
		return
	}
	L := b.Perf.NumLevels()
	metric := make([]float32, L)
	for pi := range metric {
		metric[pi] = (dist + offsetNM) * penaltyOrOne(penalty)
	}
	if outbound {
		course := tv.Coord.InitialBearing(vv.Coord)
		b.Graph.SetMetric(terminal, v, aw, metric, dist, course)
	} else {
		course := vv.Coord.InitialBearing(tv.Coord)
		b.Graph.SetMetric(v, terminal, aw, metric, dist, course)
	}
}

func penaltyOrOne(p float32) float32 {
	if p == 0 {
		return 1
	}
	return p
}
