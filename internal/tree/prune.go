package tree

import "github.com/KaiTaiTong/content-aware-image-compression/internal/hsla"

// PruneConfig is the pair of scalars that drive pruning aggressiveness.
type PruneConfig struct {
	// MinimumSimilarityPercentage is the fraction, in [0, 1], of a subtree's
	// pixel area that must lie within ColorToleranceThreshold of the
	// subtree root's representative color for the subtree to be collapsed.
	MinimumSimilarityPercentage float64
	// ColorToleranceThreshold is the pruneColorDistance bound (> 0) used to
	// decide whether a leaf's color counts as "close enough" to its
	// ancestor's representative color.
	ColorToleranceThreshold float64
}

// Prune walks the tree post-order, collapsing any internal node whose
// subtree would reconstruct as visually indistinguishable from the node's
// own representative color into a leaf. A node's representative color is
// fixed at construction and is never recomputed by pruning. Leaves never
// resurrect: once a node becomes a leaf it stays one.
func Prune(n *Node, cfg PruneConfig) {
	if n == nil || n.IsLeaf() {
		return
	}

	Prune(n.Left, cfg)
	Prune(n.Right, cfg)

	if shouldPrune(n, cfg) {
		n.Left = nil
		n.Right = nil
	}
}

// shouldPrune evaluates the subtree rooted at n against n's own
// representative color, as fixed at construction time.
func shouldPrune(n *Node, cfg PruneConfig) bool {
	total, similar := subtreeSimilarity(n, n.Color, cfg.ColorToleranceThreshold)
	if total <= 0 {
		return false
	}
	return float64(similar)/float64(total) >= cfg.MinimumSimilarityPercentage
}

// subtreeSimilarity returns, over every leaf in n's subtree, the total
// pixel area and the area of leaves whose color is within tolerance of
// target.
func subtreeSimilarity(n *Node, target hsla.HSLA, tolerance float64) (total, similar int) {
	if n.IsLeaf() {
		area := n.Rect.Area()
		total = area
		if hsla.PruneColorDistance(n.Color, target) <= tolerance {
			similar = area
		}
		return
	}

	lt, ls := subtreeSimilarity(n.Left, target, tolerance)
	rt, rs := subtreeSimilarity(n.Right, target, tolerance)
	return lt + rt, ls + rs
}
