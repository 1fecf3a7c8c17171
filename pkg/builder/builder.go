// pkg/builder/builder.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package builder

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/airspace"
	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
	"github.com/tsailer/vfrnav-public-sub016/pkg/intel"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
	"github.com/tsailer/vfrnav-public-sub016/pkg/log"
	"github.com/tsailer/vfrnav-public-sub016/pkg/navdb"
	"github.com/tsailer/vfrnav-public-sub016/pkg/perf"
	"github.com/tsailer/vfrnav-public-sub016/pkg/tfr"
	"github.com/tsailer/vfrnav-public-sub016/pkg/util"
)

// Builder assembles the per-flight L-graph (component D) by running
// its passes over the injected collaborators in the fixed order spec
// §4.D lays out: ingest, bypass invalid supernodes, exclude regions,
// add DCT, add SID/STAR, apply intel, final metric pass.
type Builder struct {
	DB        navdb.Database
	Terrain   navdb.Terrain
	TFR       tfr.Engine
	Airspaces *airspace.Cache
	Intel     intel.Store
	Perf      perf.Model
	Airways   *airway.Table
	Logger    *log.Logger

	Graph *lgraph.Graph
	Log   util.ErrorLogger

	vertexByIdent map[string]lgraph.VertexIndex
	vdep, vdest   lgraph.VertexIndex
}

// New returns a Builder ready to run Build.
func New(db navdb.Database, terrain navdb.Terrain, eng tfr.Engine, asCache *airspace.Cache, store intel.Store, pm perf.Model, tbl *airway.Table, lg *log.Logger) *Builder {
	return &Builder{
		DB:            db,
		Terrain:       terrain,
		TFR:           eng,
		Airspaces:     asCache,
		Intel:         store,
		Perf:          pm,
		Airways:       tbl,
		Logger:        lg,
		Graph:         lgraph.New(pm.NumLevels()),
		vertexByIdent: make(map[string]lgraph.VertexIndex),
	}
}

// Build runs every pass in order and returns the assembled graph, its
// Vdep/Vdest terminal vertices, and whatever non-fatal ingest problems
// util.ErrorLogger accumulated along the way.
func (b *Builder) Build(cfg Config) (*lgraph.Graph, lgraph.VertexIndex, lgraph.VertexIndex, *util.ErrorLogger) {
	b.Log.Push("build")
	defer b.Log.Pop()

	b.ingestAirways(cfg)
	b.eliminateInvalidSupernodes()
	b.excludeRegions(cfg)
	b.addDCTEdges(cfg)
	b.Graph.SuppressDCTWherePreferred()
	b.addSIDSTARConnectors(cfg)
	b.applyPersistentIntel(cfg)
	b.metricPass(cfg)

	if b.Logger != nil {
		b.Logger.Infof("builder: assembled graph with %d vertices", b.Graph.VertexCount())
	}
	return b.Graph, b.vdep, b.vdest, &b.Log
}

// vertexFor returns the existing vertex for ident, or creates one from
// obj, per invariant I6 (identifier index stays consistent with the
// vertex set).
func (b *Builder) vertexFor(ident string, coord geo.Point, obj navdb.Object) lgraph.VertexIndex {
	if vi, ok := b.vertexByIdent[ident]; ok {
		return vi
	}
	vi := b.Graph.AddVertex(lgraph.Vertex{Ident: ident, Coord: coord, Obj: obj})
	b.vertexByIdent[ident] = vi
	return vi
}
