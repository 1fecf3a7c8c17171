// pkg/airway/index.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package airway interns airway identifiers as small integers so that
// edges and per-level metric arrays can key off a comparable int
// rather than a string, following the teacher's general pattern of
// replacing repeated string identifiers with an interned handle (see
// pkg/aviation's Squawk/Frequency small-int wrapper types) adapted
// here to a growable name<->index table with reserved sentinels.
package airway

import "strings"

// Index is a non-negative integer identifying an airway. Values below
// DCT denote named airways; values at or above DCT are reserved
// sentinels.
type Index int

// Reserved sentinels, ordered so that Index < DCT always means "this
// is a named airway".
const (
	firstSentinel Index = 1 << 30
)

const (
	DCT Index = firstSentinel + iota
	SID
	STAR
	MatchAll
	MatchNone
	MatchAwy
	MatchDCTAwy
	MatchDCTAwySIDSTAR
	MatchAwySIDSTAR
	MatchSIDSTAR
)

// Table is a bidirectional map between airway identifiers and their
// interned Index. The zero value is ready to use.
type Table struct {
	names   []string
	byName  map[string]Index
}

// NewTable returns an empty, ready-to-use Table.
func NewTable() *Table {
	return &Table{byName: make(map[string]Index)}
}

// Lookup returns the Index for name, interning it if create is true
// and it is not already present. An empty name always resolves to
// DCT. An unknown name resolves to MatchNone when create is false.
func (t *Table) Lookup(name string, create bool) Index {
	if name == "" {
		return DCT
	}
	name = strings.ToUpper(name)

	if t.byName == nil {
		t.byName = make(map[string]Index)
	}
	if idx, ok := t.byName[name]; ok {
		return idx
	}
	if !create {
		return MatchNone
	}

	idx := Index(len(t.names))
	t.names = append(t.names, name)
	t.byName[name] = idx
	return idx
}

// Name renders idx back to a display string: the interned airway
// name, or one of the reserved literal strings for a sentinel.
func (t *Table) Name(idx Index) string {
	switch idx {
	case DCT:
		return "DCT"
	case SID:
		return "SID"
	case STAR:
		return "STAR"
	case MatchNone:
		return ""
	case MatchAll, MatchAwy, MatchDCTAwy, MatchDCTAwySIDSTAR, MatchAwySIDSTAR, MatchSIDSTAR:
		return "[MATCH…]"
	}
	if idx >= 0 && int(idx) < len(t.names) {
		return t.names[idx]
	}
	return ""
}

// IsNamed reports whether idx refers to an interned airway (as
// opposed to DCT, SID, STAR, or a wildcard matcher).
func (idx Index) IsNamed() bool {
	return idx >= 0 && idx < firstSentinel
}

// matches reports whether the edge index idx is accepted by wildcard:
// each match sentinel accepts its own categories of index, and any
// other wildcard accepts only an equal index.
func (idx Index) matches(wildcard Index) bool {
	if !wildcard.IsNamed() {
		switch wildcard {
		case MatchAll:
			return true
		case MatchNone:
			return false
		case MatchAwy:
			return idx.IsNamed()
		case MatchDCTAwy:
			return idx.IsNamed() || idx == DCT
		case MatchDCTAwySIDSTAR:
			return idx.IsNamed() || idx == DCT || idx == SID || idx == STAR
		case MatchAwySIDSTAR:
			return idx.IsNamed() || idx == SID || idx == STAR
		case MatchSIDSTAR:
			return idx == SID || idx == STAR
		}
	}
	// A specific index (named airway, DCT, SID, or STAR) matches only
	// by equality.
	return idx == wildcard
}

// Matches reports whether an edge carrying airway index idx satisfies
// the wildcard matcher m (which may itself be a specific index, in
// which case this is plain equality).
func Matches(idx, m Index) bool {
	return idx.matches(m)
}
