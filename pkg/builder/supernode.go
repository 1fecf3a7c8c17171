// pkg/builder/supernode.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package builder

import "github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"

// eliminateInvalidSupernodes is spec §4.D.2: bypass any vertex whose
// identifier fails I1 (a geometric shaping point with no real
// identity) by synthesising s→t edges across it for every matching
// in/out airway pair, then disconnecting it entirely.
func (b *Builder) eliminateInvalidSupernodes() {
	b.Log.Push("supernode")
	defer b.Log.Pop()

	for ident, vi := range b.vertexByIdent {
		if validIdent(ident) {
			continue
		}
		b.bypassVertex(vi)
	}
}

func (b *Builder) bypassVertex(v lgraph.VertexIndex) {
	ins := b.Graph.InEdges(v)
	outs := b.Graph.OutEdges(v)

	for _, in := range ins {
		for _, out := range outs {
			if in.From == out.To || in.Edge.Airway != out.Edge.Airway {
				continue
			}
			summed := make([]float32, len(in.Edge.Metric))
			for i := range summed {
				if in.Edge.Metric[i] == lgraph.InvalidMetric || out.Edge.Metric[i] == lgraph.InvalidMetric {
					summed[i] = lgraph.InvalidMetric
					continue
				}
				summed[i] = in.Edge.Metric[i] + out.Edge.Metric[i]
			}
			b.Graph.SetMetric(in.From, out.To, in.Edge.Airway, summed, in.Edge.DistNM+out.Edge.DistNM, in.Edge.CourseTrue)
		}
	}

	b.Graph.DisconnectVertex(v)
}
