// Package algo implements path planning on the rescue grid.
package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/rescueroute/internal/core"
)

// astarNode for priority queue.
type astarNode struct {
	cell   core.Cell
	g      int // Cost so far
	f      int // g + h
	parent *astarNode
	seq    int // Insertion order, breaks f ties deterministically
	index  int // heap index
}

// astarHeap implements heap.Interface.
type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

var directions = [4]core.Cell{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// FindPath runs A* on a four-connected grid with unit step cost and a
// Manhattan heuristic. It returns the full path from start through goal
// inclusive, a single-cell path when start == goal, and nil when the goal is
// blocked or unreachable. Callers consume the tail only.
func FindPath(start, goal core.Cell, width, height int, blocked core.CellSet) []core.Cell {
	if start == goal {
		return []core.Cell{start}
	}
	if blocked.Has(goal) {
		return nil
	}

	open := &astarHeap{}
	heap.Init(open)

	seq := 0
	startNode := &astarNode{cell: start, g: 0, f: start.Manhattan(goal)}
	heap.Push(open, startNode)

	gScore := map[core.Cell]int{start: 0}
	visited := make(core.CellSet)

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)
		if visited.Has(current.cell) {
			continue
		}
		visited.Add(current.cell)

		if current.cell == goal {
			return reconstructPath(current)
		}

		for _, d := range directions {
			neighbor := core.Cell{X: current.cell.X + d.X, Y: current.cell.Y + d.Y}
			if neighbor.X < 0 || neighbor.X >= width || neighbor.Y < 0 || neighbor.Y >= height {
				continue
			}
			if blocked.Has(neighbor) {
				continue
			}

			tentative := current.g + 1
			if known, ok := gScore[neighbor]; ok && tentative >= known {
				continue
			}
			gScore[neighbor] = tentative

			seq++
			heap.Push(open, &astarNode{
				cell:   neighbor,
				g:      tentative,
				f:      tentative + neighbor.Manhattan(goal),
				parent: current,
				seq:    seq,
			})
		}
	}

	return nil // No path found
}

func reconstructPath(node *astarNode) []core.Cell {
	var path []core.Cell
	for n := node; n != nil; n = n.parent {
		path = append(path, n.cell)
	}
	// Reverse in place: built goal-to-start.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
