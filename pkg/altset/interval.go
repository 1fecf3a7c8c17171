// pkg/altset/interval.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package altset implements a closed set of integer altitude
// intervals (foot units), kept as a sorted, coalesced slice rather
// than a bitmask. This mirrors the interval-set representation in the
// original CFMU router's interval.cc/.hh (see original_source/), used
// throughout the core wherever a component needs to report "valid
// for these altitude bands" rather than a single band: the
// airspace-geometry cache's get_altrange, and the TFR engine's
// crossing-gate and check_dct results.
package altset

import "sort"

// Interval is a half-open altitude band [Lo, Hi) in feet.
type Interval struct {
	Lo, Hi int
}

// Set is a normalized (sorted, non-overlapping, coalesced) list of
// Intervals. The zero value is the empty set.
type Set struct {
	ivs []Interval
}

// Of builds a normalized Set from the given intervals.
func Of(ivs ...Interval) Set {
	var s Set
	s.ivs = append(s.ivs, ivs...)
	s.normalize()
	return s
}

func (s *Set) normalize() {
	ivs := s.ivs[:0:0]
	ivs = append(ivs, s.ivs...)
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Lo < ivs[j].Lo })

	out := ivs[:0]
	for _, iv := range ivs {
		if iv.Lo >= iv.Hi {
			continue
		}
		if n := len(out); n > 0 && iv.Lo <= out[n-1].Hi {
			if iv.Hi > out[n-1].Hi {
				out[n-1].Hi = iv.Hi
			}
		} else {
			out = append(out, iv)
		}
	}
	s.ivs = out
}

// Intervals returns the normalized intervals making up s. The
// returned slice must not be mutated by the caller.
func (s Set) Intervals() []Interval {
	return s.ivs
}

// Empty reports whether s contains no altitudes.
func (s Set) Empty() bool {
	return len(s.ivs) == 0
}

// Contains reports whether alt lies within s.
func (s Set) Contains(alt int) bool {
	for _, iv := range s.ivs {
		if alt >= iv.Lo && alt < iv.Hi {
			return true
		}
		if alt < iv.Lo {
			break
		}
	}
	return false
}

// Union returns the union of a and b.
func Union(a, b Set) Set {
	return Of(append(append([]Interval{}, a.ivs...), b.ivs...)...)
}

// Intersect returns the set of altitudes present in both a and b.
func Intersect(a, b Set) Set {
	var out []Interval
	i, j := 0, 0
	for i < len(a.ivs) && j < len(b.ivs) {
		lo := max(a.ivs[i].Lo, b.ivs[j].Lo)
		hi := min(a.ivs[i].Hi, b.ivs[j].Hi)
		if lo < hi {
			out = append(out, Interval{Lo: lo, Hi: hi})
		}
		if a.ivs[i].Hi < b.ivs[j].Hi {
			i++
		} else {
			j++
		}
	}
	return Of(out...)
}

// Subtract returns the altitudes present in a but not in b.
func Subtract(a, b Set) Set {
	if b.Empty() {
		return a
	}
	var out []Interval
	for _, iv := range a.ivs {
		lo := iv.Lo
		for _, biv := range b.ivs {
			if biv.Hi <= lo || biv.Lo >= iv.Hi {
				continue
			}
			if biv.Lo > lo {
				out = append(out, Interval{Lo: lo, Hi: biv.Lo})
			}
			if biv.Hi > lo {
				lo = biv.Hi
			}
		}
		if lo < iv.Hi {
			out = append(out, Interval{Lo: lo, Hi: iv.Hi})
		}
	}
	return Of(out...)
}

// Clip restricts s to the range [lo,hi).
func (s Set) Clip(lo, hi int) Set {
	return Intersect(s, Of(Interval{Lo: lo, Hi: hi}))
}
