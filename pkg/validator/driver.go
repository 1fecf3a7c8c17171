// pkg/validator/driver.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package validator

import (
	"context"
	"strings"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/log"
)

// StopReason is the bitmask the search loop returns on exit (spec §7).
type StopReason uint

const (
	StopNone StopReason = 0
	StopSID  StopReason = 1 << iota
	StopSTAR
	StopEnroute
	StopIteration
	StopValidatorTimeout
	StopInternalError
)

// Conn is the line-oriented validator collaborator: a child process
// or socket the driver writes an ICAO flight plan to and reads
// response lines from, one suspension point per spec §5.
type Conn interface {
	Send(ctx context.Context, planText string) error
	ReadLine(ctx context.Context) (line string, terminator bool, err error)
	Restart(ctx context.Context) error
}

// benignPatterns are response prefixes the driver treats like "no
// errors": they still trigger the ground-clearance finalizer pass,
// but never a mutation.
var benignPatterns = []string{"NO ERRORS", "OK"}

// Driver runs the validator submit/parse/repair loop (component I).
type Driver struct {
	Conn        Conn
	Mutator     *Mutator
	Finalizer   *Finalizer
	Logger      *log.Logger
	MaxRestarts int

	restarts  int
	pathProbe int
}

// NewDriver returns a Driver with the path-probe cursor inactive.
func NewDriver(conn Conn, mu *Mutator, fin *Finalizer, lg *log.Logger, maxRestarts int) *Driver {
	return &Driver{Conn: conn, Mutator: mu, Finalizer: fin, Logger: lg, MaxRestarts: maxRestarts, pathProbe: -1}
}

// Round runs a single submit/collect/react cycle. accepted is true
// once a clean response survives the ground-clearance finalizer with
// no further change; mutated reports whether the graph changed (the
// caller should regenerate the route and call Round again); stop is
// non-zero when the loop cannot continue.
func (d *Driver) Round(ctx context.Context, planText string, ifrWaypoints []string) (accepted, mutated bool, stop StopReason) {
	if err := d.Conn.Send(ctx, planText); err != nil {
		return false, false, d.watchdog(ctx)
	}

	var lines []string
	for {
		line, term, err := d.Conn.ReadLine(ctx)
		if err != nil {
			return false, false, d.watchdog(ctx)
		}
		if term {
			break
		}
		lines = append(lines, line)
	}

	if isBenign(lines) {
		changed := d.Finalizer.Run()
		if !changed {
			d.pathProbe = -1
			return true, false, StopNone
		}
		return false, true, StopNone
	}

	anyMutated := false
	for _, line := range lines {
		m, ok := Parse(line)
		if !ok {
			continue
		}
		if m.Code == CodeFAIL {
			d.Logger.Errorf("validator FAIL: %s", m.Groups[0])
			return false, false, StopInternalError
		}
		if m.Code == CodeEFPM228 {
			v := strings.ToUpper(m.Groups[0])
			if v == "ADEP" {
				return false, false, StopSID
			}
			if v == "ADES" {
				return false, false, StopSTAR
			}
			continue
		}
		if d.Mutator.Apply(m) {
			anyMutated = true
		}
	}
	if anyMutated {
		d.pathProbe = -1
		return false, true, StopNone
	}

	return d.probe(ifrWaypoints)
}

// probe advances the weaker path-probe cursor (spec §4.I): force the
// airway segment leaving waypoint pathProbe to DCT, one waypoint at a
// time, until something changes or the cursor runs off the route.
func (d *Driver) probe(ifrWaypoints []string) (accepted, mutated bool, stop StopReason) {
	if d.pathProbe < 0 {
		d.pathProbe = 0
	}
	for d.pathProbe < len(ifrWaypoints)-1 {
		from, to := ifrWaypoints[d.pathProbe], ifrWaypoints[d.pathProbe+1]
		d.pathProbe++
		if aw, ok := d.findSegmentAirway(from, to); ok && aw.IsNamed() && d.Mutator.renameEdge(from, to, aw, airway.DCT) {
			return false, true, StopNone
		}
	}
	d.Logger.Infof("no progress made; stopping")
	return false, false, StopEnroute
}

func (d *Driver) findSegmentAirway(from, to string) (airway.Index, bool) {
	for _, u := range d.Mutator.G.VerticesNamed(from) {
		for _, v := range d.Mutator.G.VerticesNamed(to) {
			for _, out := range d.Mutator.G.OutEdges(u) {
				if out.To == v && out.Edge.SolutionLevel >= 0 {
					return out.Edge.Airway, true
				}
			}
		}
	}
	return airway.MatchNone, false
}

// watchdog restarts the child process up to MaxRestarts times before
// giving up with StopValidatorTimeout.
func (d *Driver) watchdog(ctx context.Context) StopReason {
	if d.restarts >= d.MaxRestarts {
		return StopValidatorTimeout
	}
	d.restarts++
	if err := d.Conn.Restart(ctx); err != nil {
		return StopValidatorTimeout
	}
	return StopNone
}

func isBenign(lines []string) bool {
	if len(lines) == 0 {
		return true
	}
	for _, l := range lines {
		for _, p := range benignPatterns {
			if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(l)), p) {
				return true
			}
		}
	}
	return false
}
