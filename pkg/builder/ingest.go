// pkg/builder/ingest.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package builder

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/altset"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
	"github.com/tsailer/vfrnav-public-sub016/pkg/navdb"
	"github.com/tsailer/vfrnav-public-sub016/pkg/tfr"
)

// ingestAirways is spec §4.D.1: load every airway segment, navaid and
// ICAO intersection intersecting the search bbox, add a vertex for
// each significant point (skipping numeric-only intersection
// identifiers), and add both directions of every airway segment with
// its per-level validity derived from the terrain corridor and the
// airway's declared vertical band.
func (b *Builder) ingestAirways(cfg Config) {
	b.Log.Push("ingest")
	defer b.Log.Pop()

	for _, n := range b.DB.NavaidsInBBox(cfg.SearchBBox) {
		if validIdent(n.Ident()) {
			b.vertexFor(n.Ident(), n.Coordinate(), n)
		}
	}
	for _, x := range b.DB.IntersectionsInBBox(cfg.SearchBBox) {
		if validIdent(x.Ident()) {
			b.vertexFor(x.Ident(), x.Coordinate(), x)
		}
	}

	for _, seg := range b.DB.AirwaysInBBox(cfg.SearchBBox) {
		b.ingestSegment(cfg, seg)
	}
}

// ingestSegment adds (or reuses) vertices for both of seg's endpoints
// even when one fails I1 — such a vertex only exists to be bypassed by
// eliminateInvalidSupernodes (§4.D.2), so ingest itself must still
// wire it into the graph.
func (b *Builder) ingestSegment(cfg Config, seg navdb.AirwaySegment) {
	u := b.vertexFor(seg.From.Ident(), seg.From.Coordinate(), seg.From)
	v := b.vertexFor(seg.To.Ident(), seg.To.Coordinate(), seg.To)

	terrainMax := b.Terrain.MaxElevationCorridor(seg.From.Coordinate(), seg.To.Coordinate())
	minAlt := navdb.MinAltitudeForTerrain(terrainMax)

	distNM := seg.From.Coordinate().DistanceNM(seg.To.Coordinate())
	courseFwd := seg.From.Coordinate().InitialBearing(seg.To.Coordinate())
	courseRev := seg.To.Coordinate().InitialBearing(seg.From.Coordinate())

	aw := b.Airways.Lookup(seg.Airway, true)
	L := b.Perf.NumLevels()

	var dctFwd, dctRev altset.Set
	if aw != airway.DCT {
		dctFwd, dctRev = b.TFR.CheckDCT(tfr.DctParameters{
			Id0: seg.From.Ident(), Id1: seg.To.Ident(),
			Coord0: seg.From.Coordinate(), Coord1: seg.To.Coordinate(),
			AltMin: minAlt,
		})
	}

	metricFwd := make([]float32, L)
	metricRev := make([]float32, L)
	extraDCTFwd := make([]float32, L)
	extraDCTRev := make([]float32, L)
	for i := range metricFwd {
		metricFwd[i], metricRev[i] = lgraph.InvalidMetric, lgraph.InvalidMetric
		extraDCTFwd[i], extraDCTRev[i] = lgraph.InvalidMetric, lgraph.InvalidMetric
	}

	fwdDCT := make([]float32, L)
	revDCT := make([]float32, L)
	for i := range fwdDCT {
		fwdDCT[i], revDCT[i] = lgraph.InvalidMetric, lgraph.InvalidMetric
	}

	for pi := 0; pi < L; pi++ {
		lvl := b.Perf.LevelAt(pi)
		inBand := lvl.AltitudeFt >= minAlt
		if cfg.HonourAirwayLevels && (seg.BaseFL != 0 || seg.TopFL != 0) {
			inBand = inBand && lvl.AltitudeFt >= seg.BaseFL*100 && lvl.AltitudeFt <= seg.TopFL*100
		}

		if aw == airway.DCT {
			if inBand {
				fwdDCT[pi] = distNM
				revDCT[pi] = distNM
			}
			continue
		}

		if inBand {
			metricFwd[pi] = distNM
			metricRev[pi] = distNM
			continue
		}
		if dctFwd.Contains(lvl.AltitudeFt) {
			extraDCTFwd[pi] = distNM
		}
		if dctRev.Contains(lvl.AltitudeFt) {
			extraDCTRev[pi] = distNM
		}
	}

	if aw == airway.DCT {
		b.Graph.SetMetric(u, v, airway.DCT, fwdDCT, distNM, courseFwd)
		b.Graph.SetMetric(v, u, airway.DCT, revDCT, distNM, courseRev)
		return
	}

	b.Graph.SetMetric(u, v, aw, metricFwd, distNM, courseFwd)
	b.Graph.SetMetric(v, u, aw, metricRev, distNM, courseRev)
	if hasAny(extraDCTFwd) {
		b.Graph.SetMetric(u, v, airway.DCT, extraDCTFwd, distNM, courseFwd)
	}
	if hasAny(extraDCTRev) {
		b.Graph.SetMetric(v, u, airway.DCT, extraDCTRev, distNM, courseRev)
	}
}

func hasAny(m []float32) bool {
	for _, v := range m {
		if v != lgraph.InvalidMetric {
			return true
		}
	}
	return false
}
