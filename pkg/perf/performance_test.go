// pkg/perf/performance_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package perf

import "testing"

func TestGroundSpeedTailwind(t *testing.T) {
	// Flying course 090 with a wind from 270 (i.e. a tailwind) should
	// increase ground speed above TAS.
	gs := GroundSpeed(400, 90, 270, 50)
	if gs <= 400 {
		t.Errorf("expected tailwind to increase ground speed above TAS, got %f", gs)
	}
}

func TestGroundSpeedHeadwind(t *testing.T) {
	// Wind from 090 while flying course 090 is a headwind.
	gs := GroundSpeed(400, 90, 90, 50)
	if gs >= 400 {
		t.Errorf("expected headwind to decrease ground speed below TAS, got %f", gs)
	}
}

func TestGroundSpeedFloor(t *testing.T) {
	gs := GroundSpeed(40, 90, 90, 200)
	if gs < 1 {
		t.Errorf("ground speed should never go below the 1kt floor, got %f", gs)
	}
}
