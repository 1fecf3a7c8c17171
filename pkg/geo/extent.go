// pkg/geo/extent.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

// Extent is an axis-aligned bounding box in fixed-point coordinates,
// following the teacher's Extent2D shape (two opposite corners) but
// over geo.Point rather than [2]float32.
type Extent struct {
	Min, Max Point
}

// EmptyExtent returns a degenerate extent that Union-s correctly with
// the first point offered to it.
func EmptyExtent() Extent {
	const inf = 1 << 30
	return Extent{Min: Point{Lat: inf, Lon: inf}, Max: Point{Lat: -inf, Lon: -inf}}
}

// ExtentFromPoints returns the smallest Extent containing all of pts.
func ExtentFromPoints(pts []Point) Extent {
	e := EmptyExtent()
	for _, p := range pts {
		e = e.Union(p)
	}
	return e
}

// Union returns the smallest Extent containing e and p.
func (e Extent) Union(p Point) Extent {
	if p.Lat < e.Min.Lat {
		e.Min.Lat = p.Lat
	}
	if p.Lon < e.Min.Lon {
		e.Min.Lon = p.Lon
	}
	if p.Lat > e.Max.Lat {
		e.Max.Lat = p.Lat
	}
	if p.Lon > e.Max.Lon {
		e.Max.Lon = p.Lon
	}
	return e
}

// Expand grows e by d fixed-point units in every direction.
func (e Extent) Expand(d int32) Extent {
	return Extent{
		Min: Point{Lat: e.Min.Lat - d, Lon: e.Min.Lon - d},
		Max: Point{Lat: e.Max.Lat + d, Lon: e.Max.Lon + d},
	}
}

// Inside reports whether p lies within e, inclusive of the boundary.
func (e Extent) Inside(p Point) bool {
	return p.Lat >= e.Min.Lat && p.Lat <= e.Max.Lat && p.Lon >= e.Min.Lon && p.Lon <= e.Max.Lon
}

// Overlaps reports whether e and o share any area.
func Overlaps(e, o Extent) bool {
	lat := e.Max.Lat >= o.Min.Lat && e.Min.Lat <= o.Max.Lat
	lon := e.Max.Lon >= o.Min.Lon && e.Min.Lon <= o.Max.Lon
	return lat && lon
}

// IntersectsSegment reports whether the bounding box of the segment
// p0-p1 overlaps e. It is true for every segment that crosses e, and
// also for some segments that pass outside a corner of e.
func (e Extent) IntersectsSegment(p0, p1 Point) bool {
	if e.Inside(p0) || e.Inside(p1) {
		return true
	}
	seg := ExtentFromPoints([]Point{p0, p1})
	return Overlaps(e, seg)
}
