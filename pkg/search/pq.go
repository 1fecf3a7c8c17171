// pkg/search/pq.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package search

// pqItem is one entry in the priority queue, ordered (distance,
// vertex, level) per spec §4.E so that ties break deterministically.
type pqItem struct {
	node Node
	dist float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	if pq[i].node.Vertex != pq[j].node.Vertex {
		return pq[i].node.Vertex < pq[j].node.Vertex
	}
	return pq[i].node.Level < pq[j].node.Level
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(*pqItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
