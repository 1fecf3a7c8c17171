// pkg/validator/codes.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package validator drives the line-oriented flight-plan validator
// child process (component I): it submits a proposed route, parses
// the validator's response lines against a fixed regex table, applies
// a graph-mutation recipe for whichever code matched, and signals the
// search loop whether to resubmit, accept, or give up.
package validator

import "regexp"

// Code identifies one of the validator's diagnostic message formats.
type Code string

const (
	CodeROUTE49  Code = "ROUTE49"
	CodeROUTE52  Code = "ROUTE52"
	CodeROUTE130 Code = "ROUTE130"
	CodeROUTE134 Code = "ROUTE134"
	CodeROUTE135 Code = "ROUTE135"
	CodeROUTE139 Code = "ROUTE139"
	CodeROUTE140 Code = "ROUTE140"
	CodeROUTE165 Code = "ROUTE165"
	CodeROUTE168 Code = "ROUTE168"
	CodeROUTE171 Code = "ROUTE171"
	CodeROUTE172 Code = "ROUTE172"
	CodeROUTE179 Code = "ROUTE179"
	CodePROF50   Code = "PROF50"
	CodePROF193  Code = "PROF193"
	CodePROF194  Code = "PROF194"
	CodePROF195  Code = "PROF195"
	CodePROF197  Code = "PROF197"
	CodePROF198  Code = "PROF198"
	CodePROF199  Code = "PROF199"
	CodePROF201  Code = "PROF201"
	CodePROF204  Code = "PROF204"
	CodePROF205  Code = "PROF205"
	CodePROF206  Code = "PROF206"
	CodeEFPM228  Code = "EFPM228"
	CodeFAIL     Code = "FAIL"
)

// rule pairs a Code with the regex that recognises it. Parse returns
// the first rule that matches. Some rules cover a family with one
// pattern: PROF195, PROF198 and PROF199 lines all map to CodePROF195, and
// PROF204/205 lines (with or without an FL band) both map to
// CodePROF204.
type rule struct {
	code Code
	re   *regexp.Regexp
}

var table = []rule{
	{CodeROUTE49, regexp.MustCompile(`^ROUTE49: THE POINT (\w+) IS UNKNOWN IN THE CONTEXT OF THE ROUTE`)},
	{CodeROUTE52, regexp.MustCompile(`^ROUTE52: THE DCT SEGMENT (\w+)\.\.(\w+) IS FORBIDDEN`)},
	{CodeROUTE130, regexp.MustCompile(`^ROUTE130: UNKNOWN DESIGNATOR (\w+)`)},
	{CodeROUTE134, regexp.MustCompile(`^ROUTE134: THE STAR LIMIT IS EXCEEDED FOR AERODROME .*? CONNECTING TO (\w+)`)},
	{CodeROUTE135, regexp.MustCompile(`^ROUTE135: THE SID LIMIT IS EXCEEDED FOR AERODROME .*? CONNECTING TO (\w+)`)},
	{CodeROUTE139, regexp.MustCompile(`^ROUTE139: (\w+) IS PRECEDED BY (\w+) WHICH IS NOT ONE OF ITS POINTS`)},
	{CodeROUTE140, regexp.MustCompile(`^ROUTE140: (\w+) IS FOLLOWED BY (\w+) WHICH IS NOT ONE OF ITS POINTS`)},
	{CodeROUTE165, regexp.MustCompile(`^ROUTE165: THE DCT SEGMENT (\w+)\.\.(\w+)`)},
	{CodeROUTE168, regexp.MustCompile(`^ROUTE168: INVALID DCT (\w+)\.\.(\w+)`)},
	{CodeROUTE171, regexp.MustCompile(`^ROUTE171: CANNOT EXPAND THE ROUTE (\w+)`)},
	{CodeROUTE172, regexp.MustCompile(`^ROUTE172: MULTIPLE ROUTES BETWEEN (\w+) AND (\w+)\. (\w+) IS SUGGESTED`)},
	{CodeROUTE179, regexp.MustCompile(`^ROUTE179: CRUISING FLIGHT LEVEL INVALID OR INCOMPATIBLE WITH AIRCRAFT PERFORMANCE`)},
	{CodePROF50, regexp.MustCompile(`^PROF50: CLIMBING/DESCENDING OUTSIDE THE VERTICAL LIMITS OF SEGMENT (\w+) (\w+) (\w+)`)},
	{CodePROF193, regexp.MustCompile(`^PROF193: IFR OPERATIONS AT AERODROME (\w+) ARE NOT PERMITTED`)},
	{CodePROF194, regexp.MustCompile(`^PROF194: (\w+) (\w+) (\w+) IS NOT AVAILABLE IN FL RANGE F(\d+)\.\.F(\d+)`)},
	{CodePROF195, regexp.MustCompile(`^PROF19[589]: (\w+) (\w+) (\w+) (?:DOES NOT EXIST|IS A (?:CDR 3|CLOSED CDR 2)) IN FL RANGE F(\d+)\.\.F(\d+)`)},
	{CodePROF197, regexp.MustCompile(`^PROF197: RS: (\w+) (\w+) (\w+):F(\d+)\.\.F(\d+) IS CLOSED FOR CRUISING`)},
	{CodePROF201, regexp.MustCompile(`^PROF201: CANNOT CLIMB OR DESCEND ON (\w+) (\w+) (\w+) IN FL RANGE (?:CLOSED|F(\d+)\.\.F(\d+))`)},
	{CodePROF204, regexp.MustCompile(`^PROF20[45]: RS: TRAFFIC VIA ((?:\w+)(?: \w+)*?)(?::F(\d+)\.\.F(\d+))? IS (?:ON FORBIDDEN|OFF MANDATORY) ROUTE`)},
	{CodePROF206, regexp.MustCompile(`^PROF206: THE DCT SEGMENT (\w+) ?\.\. ?(\w+) IS NOT AVAILABLE IN FL RANGE F(\d+)\.\.F(\d+)`)},
	{CodeEFPM228, regexp.MustCompile(`^EFPM228: INVALID VALUE \((\w+)\)`)},
	{CodeFAIL, regexp.MustCompile(`^FAIL: (.*)`)},
}

// ignoredPrefixes are response lines that never drive a mutation and
// should not even be logged as unrecognised (8.33 channel-spacing
// carriage notices).
var ignoredPrefixes = []string{"PROF188:", "PROF189:", "PROF190:"}

// Match is one parsed response line.
type Match struct {
	Code   Code
	Groups []string
	Raw    string
}

// Parse matches line against the regex table in order, returning the
// first hit. Lines matching an ignored prefix report ok=false without
// being treated as unrecognised.
func Parse(line string) (Match, bool) {
	for _, p := range ignoredPrefixes {
		if len(line) >= len(p) && line[:len(p)] == p {
			return Match{}, false
		}
	}
	for _, r := range table {
		if g := r.re.FindStringSubmatch(line); g != nil {
			return Match{Code: r.code, Groups: g[1:], Raw: line}, true
		}
	}
	return Match{}, false
}
