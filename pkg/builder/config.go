// pkg/builder/config.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package builder assembles a per-flight lgraph.Graph from a
// navdb.Database, terrain model, TFR engine and performance model
// (component D). Its Config mirrors the teacher's convention of a
// flat options struct consumed by a single top-level Build call (see
// e.g. the teacher's sim package's SimConfiguration), rather than a
// pile of functional options, since every field here is a required
// search parameter rather than an optional tweak.
package builder

import "github.com/tsailer/vfrnav-public-sub016/pkg/geo"

// ExcludeRegion is one user-configured region to penalize or close
// off, spec §4.D.3.
type ExcludeRegion struct {
	// Exactly one of BBox or (AirspaceIdent set) should be populated.
	BBox                   geo.Extent
	AirspaceIdent          string
	AirspaceClass          string
	AirspaceTypecode       string
	LevelBandLoFt, LevelBandHiFt int
	DCTLimit, AwyLimit     float32
	DCTScale, DCTOffset    float32
}

// SIDSTARFix is an explicit SID or STAR fix supplied by the caller in
// place of the radius-based connector set, spec §4.D.5.
type SIDSTARFix struct {
	Ident        string
	ToleranceNM  float32
}

// Config bundles every search parameter the builder's passes consume.
type Config struct {
	SearchBBox geo.Extent

	HonourAirwayLevels bool

	DCTLimitNM       float32
	DCTPenaltyScale  float32
	DCTPenaltyOffset float32

	ExcludeRegions []ExcludeRegion

	DepartureICAO, DestinationICAO string
	SIDRadiusNM, STARRadiusNM      float32
	SIDFix, STARFix                *SIDSTARFix
	AirportConnectionOffsetNM      float32
	SIDPenalty, STARPenalty        float32

	WindsEnabled bool
}
