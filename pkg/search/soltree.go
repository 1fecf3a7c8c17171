// pkg/search/soltree.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package search

import (
	"fmt"
	"strings"

	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

// solutionTree records, per distinct prefix of nodes previously
// inserted, which next-hop branches have already been explored — the
// trie spec §4.G calls "the solution tree".
type solutionTree struct {
	branchesByPrefix map[string]map[lgraph.VertexIndex]bool
}

func newSolutionTree() *solutionTree {
	return &solutionTree{branchesByPrefix: make(map[string]map[lgraph.VertexIndex]bool)}
}

func prefixKey(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		fmt.Fprintf(&b, "%d/%d|", n.Vertex, n.Level)
	}
	return b.String()
}

// insert records every prefix of route as present in the tree (a
// no-op on the branch set itself; branches are added explicitly by
// recordBranch as they are explored).
func (t *solutionTree) insert(route Route) {
	for i := range route.Nodes {
		k := prefixKey(route.Nodes[:i+1])
		if t.branchesByPrefix[k] == nil {
			t.branchesByPrefix[k] = make(map[lgraph.VertexIndex]bool)
		}
	}
}

// branches returns the (mutable) branch-exclusion set recorded at
// prefix, creating it if absent.
func (t *solutionTree) branches(prefix []Node) map[lgraph.VertexIndex]bool {
	k := prefixKey(prefix)
	m := t.branchesByPrefix[k]
	if m == nil {
		m = make(map[lgraph.VertexIndex]bool)
		t.branchesByPrefix[k] = m
	}
	out := make(map[lgraph.VertexIndex]bool, len(m))
	for v := range m {
		out[v] = true
	}
	return out
}

// recordBranch marks next as explored at prefix, so a later iteration
// sharing the same prefix excludes it too.
func (t *solutionTree) recordBranch(prefix []Node, next lgraph.VertexIndex) {
	k := prefixKey(prefix)
	if t.branchesByPrefix[k] == nil {
		t.branchesByPrefix[k] = make(map[lgraph.VertexIndex]bool)
	}
	t.branchesByPrefix[k][next] = true
}
