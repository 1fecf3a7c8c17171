// pkg/perf/performance.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package perf declares the aircraft-performance collaborator
// (spec §6): a discrete ladder of cruise levels together with the
// metrics the search needs at and between them. It is deliberately a
// thin interface — the performance model proper (BADA-style tables,
// wind-grid lookups) is out of the core's scope per spec §1.
package perf

import (
	gomath "math"

	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
)

// Level is one rung of the cruise-level ladder.
type Level struct {
	AltitudeFt   int
	TAS          float32 // knots
	MetricPerNM  float32 // scales nm-based cruise_metric to the chosen cost units
}

// Model is the aircraft performance collaborator injected into the
// builder and search.
type Model interface {
	// NumLevels returns the ladder length L.
	NumLevels() int
	// LevelAt returns the Level at index pi, 0 <= pi < NumLevels().
	LevelAt(pi int) Level
	// WindAt returns the wind (direction true, speed kts) at the given
	// coordinate and level index.
	WindAt(p geo.Point, pi int) (dirTrue, speedKts float32)
	// LevelChange returns the metric cost and the minimum track-nm
	// required to change from level piFrom to piTo (piFrom==piTo is
	// always (0,0)).
	LevelChange(piFrom, piTo int) (metric float32, minTrackNM float32)
}

// GroundSpeed returns the ground speed (knots) flying courseTrue at
// the given TAS through a wind from windDirTrue at windSpeedKts, as TAS
// plus the along-course wind component; the crosswind component is
// ignored.
func GroundSpeed(tas, courseTrue, windDirTrue, windSpeedKts float32) float32 {
	// Wind direction is "from"; the wind vector component along the
	// course is the headwind/tailwind component.
	rad := func(d float32) float64 { return float64(d) * gomath.Pi / 180 }
	angle := rad(windDirTrue - courseTrue + 180)
	// Effective tailwind component (positive = tailwind).
	tail := windSpeedKts * float32(gomath.Cos(angle))
	gs := tas + tail
	if gs < 1 {
		gs = 1 // avoid division by zero/negative ground speed downstream
	}
	return gs
}
