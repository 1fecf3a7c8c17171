// pkg/validator/mutate.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package validator

import (
	"strconv"
	"strings"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/intel"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

// Mutator applies the graph-mutation recipes spec §4.I associates
// with each validator response code, in terms of the identifier-level
// primitives the original implementation exposed (lgraphdisconnect
// vertex, lgraphmodifyedge, lgraphedgetodct, ...), re-expressed over
// an lgraph.Graph.
type Mutator struct {
	G       *lgraph.Graph
	Airways *airway.Table
	Perf    LevelIndexer
	Intel   intel.Store
}

// LevelIndexer maps an FL (hundreds of feet) band to the graph's
// level-index range, since the validator speaks in flight levels but
// the graph speaks in level indices.
type LevelIndexer interface {
	LevelIndexRange(loFL, hiFL int) (lo, hi int)
	NumLevels() int
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Apply dispatches m to its recipe and reports whether the graph
// changed.
func (mu *Mutator) Apply(m Match) bool {
	switch m.Code {
	case CodeROUTE49:
		return mu.disconnectVertex(m.Groups[0], 0, mu.Perf.NumLevels()-1)
	case CodeROUTE52:
		return mu.killEdge(m.Groups[0], m.Groups[1], airway.DCT, true)
	case CodeROUTE130:
		idu := strings.ToUpper(m.Groups[0])
		work := mu.disconnectVertex(idu, 0, mu.Perf.NumLevels()-1)
		if aw := mu.Airways.Lookup(idu, false); aw != airway.DCT && aw != airway.MatchNone {
			work = mu.edgeToDCT(aw) || work
		}
		return work
	case CodeROUTE134:
		return mu.killSolutionEdgesMatching(airway.STAR)
	case CodeROUTE135:
		return mu.killSolutionEdgesMatching(airway.SID)
	case CodeROUTE139:
		return mu.restrictOutgoing(m.Groups[1], mu.Airways.Lookup(m.Groups[0], false))
	case CodeROUTE140:
		return mu.restrictIncoming(m.Groups[1], mu.Airways.Lookup(m.Groups[0], false))
	case CodeROUTE165, CodeROUTE168:
		return mu.killEdge(m.Groups[0], m.Groups[1], airway.DCT, true)
	case CodeROUTE171:
		return mu.edgeToDCT(mu.Airways.Lookup(m.Groups[0], true))
	case CodeROUTE172:
		aw := mu.Airways.Lookup(m.Groups[2], true)
		return mu.renameEdge(m.Groups[0], m.Groups[1], airway.DCT, aw)
	case CodeROUTE179:
		return mu.shrinkLevelLadder()
	case CodePROF50:
		return mu.prof50(m.Groups[0], m.Groups[1], m.Groups[2])
	case CodePROF193:
		return mu.killSIDSTARAt(m.Groups[0])
	case CodePROF194:
		lo, hi := mu.Perf.LevelIndexRange(atoi(m.Groups[3]), atoi(m.Groups[4]))
		return mu.prof195(m.Groups[0], m.Groups[1], m.Groups[2], lo, hi)
	case CodePROF195:
		lo, hi := mu.Perf.LevelIndexRange(atoi(m.Groups[3]), atoi(m.Groups[4]))
		return mu.prof195(m.Groups[0], m.Groups[1], m.Groups[2], lo, hi)
	case CodePROF197:
		lo, hi := mu.Perf.LevelIndexRange(atoi(m.Groups[3]), atoi(m.Groups[4]))
		return mu.killAwySegmentBand(m.Groups[0], m.Groups[2], mu.Airways.Lookup(m.Groups[1], false), lo, hi, true)
	case CodePROF201:
		if mu.prof50(m.Groups[0], m.Groups[1], m.Groups[2]) {
			return true
		}
		if m.Groups[3] != "" && m.Groups[4] != "" {
			lo, hi := mu.Perf.LevelIndexRange(atoi(m.Groups[3]), atoi(m.Groups[4]))
			if mu.killAwySegmentBand(m.Groups[0], m.Groups[2], mu.Airways.Lookup(m.Groups[1], false), lo, hi, true) {
				return true
			}
		}
		work := mu.killSIDSTARAt(m.Groups[0])
		return mu.killSIDSTARAt(m.Groups[2]) || work
	case CodePROF204:
		return mu.prof204(m.Groups[0], m.Groups[1], m.Groups[2])
	case CodePROF205:
		return mu.killSolutionVertex(m.Groups[0])
	case CodePROF206:
		lo, hi := mu.Perf.LevelIndexRange(atoi(m.Groups[2]), atoi(m.Groups[3]))
		return mu.killEdgeBand(m.Groups[0], m.Groups[1], airway.DCT, lo, hi, true)
	case CodeEFPM228, CodeFAIL:
		return false // terminal: the caller checks m.Code itself and stops the search
	}
	return false
}

// disconnectVertex kills every edge incident to every vertex named
// ident, at the levels within [loIdx,hiIdx].
func (mu *Mutator) disconnectVertex(ident string, loIdx, hiIdx int) bool {
	work := false
	for _, vi := range mu.G.VerticesNamed(strings.ToUpper(ident)) {
		for _, out := range mu.G.OutEdges(vi) {
			if invalidateBand(out.Edge, loIdx, hiIdx) {
				work = true
			}
		}
		for _, in := range mu.G.InEdges(vi) {
			if invalidateBand(in.Edge, loIdx, hiIdx) {
				work = true
			}
		}
	}
	mu.G.RemoveInvalidEdges()
	return work
}

func invalidateBand(e *lgraph.Edge, lo, hi int) bool {
	work := false
	for pi := lo; pi <= hi && pi < len(e.Metric); pi++ {
		if pi < 0 {
			continue
		}
		if e.Metric[pi] != lgraph.InvalidMetric {
			e.Metric[pi] = lgraph.InvalidMetric
			work = true
		}
	}
	return work
}

// killEdge kills the edge(s) from->to (and to->from when bidirectional)
// at the given airway across all levels.
func (mu *Mutator) killEdge(from, to string, aw airway.Index, bidirectional bool) bool {
	return mu.killEdgeBand(from, to, aw, 0, mu.Perf.NumLevels()-1, bidirectional)
}

func (mu *Mutator) killEdgeBand(from, to string, aw airway.Index, loIdx, hiIdx int, bidirectional bool) bool {
	work := false
	for _, u := range mu.G.VerticesNamed(strings.ToUpper(from)) {
		for _, v := range mu.G.VerticesNamed(strings.ToUpper(to)) {
			if e := mu.G.FindEdge(u, v, aw); e != nil && invalidateBand(e, loIdx, hiIdx) {
				work = true
			}
			if bidirectional {
				if e := mu.G.FindEdge(v, u, aw); e != nil && invalidateBand(e, loIdx, hiIdx) {
					work = true
				}
			}
		}
	}
	mu.G.RemoveInvalidEdges()
	return work
}

// killAwySegmentBand is killEdgeBand restricted to a specific named
// airway, falling back to killing the DCT parallel if the airway edge
// didn't exist (spec's "kill or rename ... between two named points",
// PROF195 family).
func (mu *Mutator) killAwySegmentBand(from, to string, aw airway.Index, loIdx, hiIdx int, bidirectional bool) bool {
	if aw != airway.MatchNone && mu.killEdgeBand(from, to, aw, loIdx, hiIdx, bidirectional) {
		return true
	}
	return mu.killEdgeBand(from, to, airway.DCT, loIdx, hiIdx, bidirectional)
}

// renameEdge moves an edge's metric from one airway index to another
// between the same two named endpoints (ROUTE172's "X is suggested").
func (mu *Mutator) renameEdge(from, to string, fromAw, toAw airway.Index) bool {
	work := false
	for _, u := range mu.G.VerticesNamed(strings.ToUpper(from)) {
		for _, v := range mu.G.VerticesNamed(strings.ToUpper(to)) {
			e := mu.G.FindEdge(u, v, fromAw)
			if e == nil {
				continue
			}
			mu.G.SetMetric(u, v, toAw, e.Metric, e.DistNM, e.CourseTrue)
			mu.G.RemoveEdge(u, v, fromAw)
			work = true
		}
	}
	return work
}

// edgeToDCT converts every edge using airway aw into a DCT edge
// between the same endpoints, merging metrics.
func (mu *Mutator) edgeToDCT(aw airway.Index) bool {
	if aw == airway.DCT || aw == airway.MatchNone {
		return false
	}
	work := false
	for _, u := range mu.G.Vertices() {
		for _, out := range mu.G.OutEdges(u) {
			if out.Edge.Airway != aw {
				continue
			}
			mu.G.SetMetric(u, out.To, airway.DCT, out.Edge.Metric, out.Edge.DistNM, out.Edge.CourseTrue)
			mu.G.RemoveEdge(u, out.To, aw)
			work = true
		}
	}
	return work
}

// restrictOutgoing disables every out-edge of ident not on airway aw.
func (mu *Mutator) restrictOutgoing(ident string, aw airway.Index) bool {
	if aw == airway.MatchNone {
		return false
	}
	work := false
	for _, vi := range mu.G.VerticesNamed(strings.ToUpper(ident)) {
		for _, out := range mu.G.OutEdges(vi) {
			if out.Edge.Airway == aw {
				continue
			}
			for i := range out.Edge.Metric {
				out.Edge.Metric[i] = lgraph.InvalidMetric
			}
			work = true
		}
	}
	mu.G.RemoveInvalidEdges()
	return work
}

// restrictIncoming disables every in-edge of ident not on airway aw.
func (mu *Mutator) restrictIncoming(ident string, aw airway.Index) bool {
	if aw == airway.MatchNone {
		return false
	}
	work := false
	for _, vi := range mu.G.VerticesNamed(strings.ToUpper(ident)) {
		for _, in := range mu.G.InEdges(vi) {
			if in.Edge.Airway == aw {
				continue
			}
			for i := range in.Edge.Metric {
				in.Edge.Metric[i] = lgraph.InvalidMetric
			}
			work = true
		}
	}
	mu.G.RemoveInvalidEdges()
	return work
}

// killSolutionEdgesMatching kills every edge on the current solution
// whose airway matches m, memoising the kill in the intel store so
// future searches of the same area avoid it too (ROUTE134/135).
func (mu *Mutator) killSolutionEdgesMatching(m airway.Index) bool {
	work := false
	for _, u := range mu.G.Vertices() {
		uv := mu.G.Vertex(u)
		for _, out := range mu.G.OutEdges(u) {
			if out.Edge.SolutionLevel < 0 || !airway.Matches(out.Edge.Airway, m) {
				continue
			}
			vv := mu.G.Vertex(out.To)
			if mu.Intel != nil {
				mu.Intel.AddSegment(intel.Segment{From: uv.Ident, To: vv.Ident, Airway: mu.Airways.Name(out.Edge.Airway), Level: out.Edge.SolutionLevel})
			}
			out.Edge.Metric[out.Edge.SolutionLevel] = lgraph.InvalidMetric
			out.Edge.SolutionLevel = -1
			work = true
		}
	}
	mu.G.RemoveInvalidEdges()
	return work
}

// killSolutionVertex disconnects every vertex named ident that
// currently carries a solution edge (PROF205/PROF204e).
func (mu *Mutator) killSolutionVertex(ident string) bool {
	work := false
	for _, vi := range mu.G.VerticesNamed(strings.ToUpper(ident)) {
		hasSolution := false
		for _, out := range mu.G.OutEdges(vi) {
			if out.Edge.SolutionLevel >= 0 {
				hasSolution = true
				break
			}
		}
		if !hasSolution {
			for _, in := range mu.G.InEdges(vi) {
				if in.Edge.SolutionLevel >= 0 {
					hasSolution = true
					break
				}
			}
		}
		if hasSolution {
			mu.G.DisconnectVertex(vi)
			work = true
		}
	}
	return work
}

// killSIDSTARAt disconnects every SID/STAR edge touching the
// aerodrome named ident (PROF193's "IFR operations not permitted").
func (mu *Mutator) killSIDSTARAt(ident string) bool {
	work := false
	for _, vi := range mu.G.VerticesNamed(strings.ToUpper(ident)) {
		for _, out := range mu.G.OutEdges(vi) {
			if out.Edge.Airway == airway.SID || out.Edge.Airway == airway.STAR {
				for i := range out.Edge.Metric {
					out.Edge.Metric[i] = lgraph.InvalidMetric
				}
				work = true
			}
		}
		for _, in := range mu.G.InEdges(vi) {
			if in.Edge.Airway == airway.SID || in.Edge.Airway == airway.STAR {
				for i := range in.Edge.Metric {
					in.Edge.Metric[i] = lgraph.InvalidMetric
				}
				work = true
			}
		}
	}
	mu.G.RemoveInvalidEdges()
	return work
}

// prof50 is PROF50's climb/descend-outside-vertical-limits recipe:
// kill the cited airway segment (falling back to DCT) across its full
// band.
func (mu *Mutator) prof50(from, awyName, to string) bool {
	aw := mu.Airways.Lookup(awyName, false)
	if aw != airway.MatchNone && mu.killEdge(from, to, aw, true) {
		return true
	}
	return mu.killEdge(from, to, airway.DCT, true)
}

// prof195 is the shared recipe for PROF194/195/198/199: kill the named
// segment within the cited FL band, falling back to DCT.
func (mu *Mutator) prof195(from, awyName, to string, loIdx, hiIdx int) bool {
	aw := mu.Airways.Lookup(awyName, false)
	if aw != airway.MatchNone && mu.killAwySegmentBand(from, to, aw, loIdx, hiIdx, true) {
		return true
	}
	return mu.killEdgeBand(from, to, airway.DCT, loIdx, hiIdx, true)
}

// prof204 walks the space-separated "point airway point point ..."
// token stream cited by a PROF204/205 forbidden/mandatory-route
// violation, killing each point-airway-point triple it can parse and
// disconnecting every bare point otherwise.
func (mu *Mutator) prof204(points, loStr, hiStr string) bool {
	tokens := strings.Fields(points)
	loIdx, hiIdx := 0, mu.Perf.NumLevels()-1
	if loStr != "" && hiStr != "" {
		loIdx, hiIdx = mu.Perf.LevelIndexRange(atoi(loStr), atoi(hiStr))
	}
	work := false
	for i := 0; i < len(tokens); i++ {
		if i+2 < len(tokens) && !isNumericIdent(tokens[i]) && isNumericIdent(tokens[i+1]) && !isNumericIdent(tokens[i+2]) {
			aw := mu.Airways.Lookup(tokens[i+1], false)
			if aw != airway.MatchNone && aw != airway.DCT {
				if mu.killAwySegmentBand(tokens[i], tokens[i+2], aw, loIdx, hiIdx, true) {
					work = true
				} else if mu.edgeToDCT(aw) {
					work = true
				} else {
					work = mu.restrictOutgoing(tokens[i], airway.MatchNone) || work
				}
			}
			i += 2
			continue
		}
		if mu.killSolutionVertex(tokens[i]) {
			work = true
		}
	}
	return work
}

func isNumericIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// shrinkLevelLadder disables the highest level index currently used on
// the solution and every level index above it (ROUTE179's
// cruise-level-ladder reshape).
func (mu *Mutator) shrinkLevelLadder() bool {
	highest := -1
	for _, u := range mu.G.Vertices() {
		for _, out := range mu.G.OutEdges(u) {
			if out.Edge.SolutionLevel > highest {
				highest = out.Edge.SolutionLevel
			}
		}
	}
	if highest <= 0 {
		return false
	}
	work := false
	for _, u := range mu.G.Vertices() {
		for _, out := range mu.G.OutEdges(u) {
			for pi := highest; pi < len(out.Edge.Metric); pi++ {
				if out.Edge.Metric[pi] != lgraph.InvalidMetric {
					out.Edge.Metric[pi] = lgraph.InvalidMetric
					work = true
				}
			}
		}
	}
	mu.G.RemoveInvalidEdges()
	return work
}
