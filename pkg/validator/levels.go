// pkg/validator/levels.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package validator

import "github.com/tsailer/vfrnav-public-sub016/pkg/perf"

// PerfLevels adapts a perf.Model to the LevelIndexer the mutation
// recipes need to translate a validator-cited FL band into the
// graph's level-index range.
type PerfLevels struct {
	Perf perf.Model
}

// NumLevels forwards to the underlying model.
func (p PerfLevels) NumLevels() int { return p.Perf.NumLevels() }

// LevelIndexRange returns the smallest contiguous index range whose
// altitudes fall within [loFL*100, hiFL*100] feet. If nothing falls
// inside the band it returns an empty (lo > hi) range.
func (p PerfLevels) LevelIndexRange(loFL, hiFL int) (lo, hi int) {
	loFt, hiFt := loFL*100, hiFL*100
	lo, hi = p.Perf.NumLevels(), -1
	for pi := 0; pi < p.Perf.NumLevels(); pi++ {
		alt := p.Perf.LevelAt(pi).AltitudeFt
		if alt < loFt || alt > hiFt {
			continue
		}
		if pi < lo {
			lo = pi
		}
		if pi > hi {
			hi = pi
		}
	}
	return lo, hi
}
