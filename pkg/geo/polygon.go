// pkg/geo/polygon.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

// PointInPolygon reports whether p lies inside the polygon described
// by the closed loop verts, using the standard winding-number test
// (robust to non-convex polygons, unlike a ray-casting test near
// shared edges).
func PointInPolygon(p Point, verts []Point) bool {
	if len(verts) < 3 {
		return false
	}

	wn := 0
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		if a.Lat <= p.Lat {
			if b.Lat > p.Lat && isLeft(a, b, p) > 0 {
				wn++
			}
		} else {
			if b.Lat <= p.Lat && isLeft(a, b, p) < 0 {
				wn--
			}
		}
	}
	return wn != 0
}

// isLeft returns >0 if p is left of the line a->b, <0 if right, 0 if
// p is exactly on the line.
func isLeft(a, b, p Point) int64 {
	return int64(b.Lon-a.Lon)*int64(p.Lat-a.Lat) - int64(p.Lon-a.Lon)*int64(b.Lat-a.Lat)
}

// Polygon is a polygon-with-holes: PointInPolygon(p, Outer) that is
// not inside any Holes[i].
type Polygon struct {
	Outer []Point
	Holes [][]Point
}

func (poly Polygon) Inside(p Point) bool {
	if !PointInPolygon(p, poly.Outer) {
		return false
	}
	for _, h := range poly.Holes {
		if PointInPolygon(p, h) {
			return false
		}
	}
	return true
}

// segmentsIntersect reports whether segments a0-a1 and b0-b1 cross,
// using the standard orientation test.
func segmentsIntersect(a0, a1, b0, b1 Point) bool {
	d1 := isLeft(b0, b1, a0)
	d2 := isLeft(b0, b1, a1)
	d3 := isLeft(a0, a1, b0)
	d4 := isLeft(a0, a1, b1)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// IntersectsSegment reports whether the segment p0-p1 crosses poly's
// boundary or has either endpoint inside it; this is the containment
// test used by exclude-region processing (a segment that merely
// clips a corner of the airspace still counts as intersecting).
func (poly Polygon) IntersectsSegment(p0, p1 Point) bool {
	if poly.Inside(p0) || poly.Inside(p1) {
		return true
	}
	if segmentCrossesLoop(p0, p1, poly.Outer) {
		return true
	}
	for _, h := range poly.Holes {
		if segmentCrossesLoop(p0, p1, h) {
			return true
		}
	}
	return false
}

func segmentCrossesLoop(p0, p1 Point, loop []Point) bool {
	n := len(loop)
	for i := 0; i < n; i++ {
		if segmentsIntersect(p0, p1, loop[i], loop[(i+1)%n]) {
			return true
		}
	}
	return false
}
