// Package tree implements the adaptive binary partitioning tree: recursive
// construction driven by entropy minimization, rendering, and a
// similarity-based pruning pass.
package tree

import (
	"github.com/KaiTaiTong/content-aware-image-compression/internal/grid"
	"github.com/KaiTaiTong/content-aware-image-compression/internal/hsla"
	"github.com/KaiTaiTong/content-aware-image-compression/internal/stats"
)

// entropyLeafThreshold is the early-termination bound: a region with
// entropy below this is treated as near-uniform and returned as a leaf
// without searching for a split.
const entropyLeafThreshold = 0.1

// orientation identifies which axis a node was split along.
type orientation int

const (
	horizontal orientation = iota
	vertical
)

// Node is a tree node: a rectangle, its representative (mean) color, and an
// ordered pair of children (nil for a leaf). Nodes own their children
// exclusively; the tree has no sharing and no cycles.
type Node struct {
	Rect        grid.Rectangle
	Color       hsla.HSLA
	Left, Right *Node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Build recursively partitions rect, using st for O(1) mean-color and
// entropy queries. The root's rectangle must equal the full image.
func Build(st *stats.Tables, rect grid.Rectangle) *Node {
	n := &Node{Rect: rect, Color: st.MeanColor(rect)}

	if rect.Width() == 1 && rect.Height() == 1 {
		return n
	}

	if st.Entropy(rect) < entropyLeafThreshold {
		return n
	}

	orient, cut, ok := findOptimalSplit(st, rect)
	if !ok {
		// No legal cut exists (should not happen once the 1x1 case is
		// filtered above), fall back to a leaf.
		return n
	}

	left, right := splitRect(rect, orient, cut)
	n.Left = Build(st, left)
	n.Right = Build(st, right)
	return n
}

// splitRect divides rect into two rectangles along the given orientation
// and cut coordinate. For horizontal, cut is the last row of the top
// child; for vertical, cut is the last column of the left child.
func splitRect(rect grid.Rectangle, orient orientation, cut int) (grid.Rectangle, grid.Rectangle) {
	if orient == horizontal {
		top := grid.Rectangle{ULX: rect.ULX, ULY: rect.ULY, LRX: rect.LRX, LRY: cut}
		bottom := grid.Rectangle{ULX: rect.ULX, ULY: cut + 1, LRX: rect.LRX, LRY: rect.LRY}
		return top, bottom
	}
	left := grid.Rectangle{ULX: rect.ULX, ULY: rect.ULY, LRX: cut, LRY: rect.LRY}
	right := grid.Rectangle{ULX: cut + 1, ULY: rect.ULY, LRX: rect.LRX, LRY: rect.LRY}
	return left, right
}

// findOptimalSplit scans every horizontal cut (if the region's height > 1)
// followed by every vertical cut (if the region's width > 1), and returns
// the one minimizing weighted child entropy. Ties keep the first cut
// encountered, so horizontal cuts win over vertical and lower coordinates
// win within an orientation.
func findOptimalSplit(st *stats.Tables, rect grid.Rectangle) (orientation, int, bool) {
	total := float64(rect.Area())
	best := orientation(horizontal)
	bestCut := 0
	bestScore := 0.0
	found := false

	considerHorizontal := rect.Height() != 1
	considerVertical := rect.Width() != 1

	if considerHorizontal {
		for y := rect.ULY; y < rect.LRY; y++ {
			top, bottom := splitRect(rect, horizontal, y)
			score := weightedEntropy(st, top, bottom, total)
			if !found || score < bestScore {
				found = true
				bestScore = score
				best = horizontal
				bestCut = y
			}
		}
	}

	if considerVertical {
		for x := rect.ULX; x < rect.LRX; x++ {
			left, right := splitRect(rect, vertical, x)
			score := weightedEntropy(st, left, right, total)
			if !found || score < bestScore {
				found = true
				bestScore = score
				best = vertical
				bestCut = x
			}
		}
	}

	return best, bestCut, found
}

func weightedEntropy(st *stats.Tables, a, b grid.Rectangle, total float64) float64 {
	e1 := st.Entropy(a)
	e2 := st.Entropy(b)
	a1 := float64(a.Area())
	a2 := float64(b.Area())
	return (e1*a1 + e2*a2) / total
}

// Render paints every leaf's rectangle with its representative color into
// g. Every pixel is written exactly once, since leaf rectangles are
// disjoint.
func Render(n *Node, g *grid.Grid) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		for y := n.Rect.ULY; y <= n.Rect.LRY; y++ {
			for x := n.Rect.ULX; x <= n.Rect.LRX; x++ {
				g.Set(x, y, n.Color)
			}
		}
		return
	}
	Render(n.Left, g)
	Render(n.Right, g)
}

// CountLeaves returns the number of leaves in the tree rooted at n.
func CountLeaves(n *Node) int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	return CountLeaves(n.Left) + CountLeaves(n.Right)
}
