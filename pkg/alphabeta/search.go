package alphabeta

import (
	"context"
	"math"
)

// Evaluate runs alpha-beta over the tree below n to the given depth and
// stores the result on n.
//
// A cancelled ctx makes every call return 0 straight away; scores computed
// after cancellation are meaningless and the caller must drop them.
// A node whose side to move has no legal moves is treated as a leaf.
func Evaluate(ctx context.Context, n *Node, depth int, alpha, beta float64, maximizing bool) float64 {
	if ctx.Err() != nil {
		return 0
	}

	if depth == 0 {
		return n.eval()
	}

	n.Expand()
	if len(n.Children) == 0 {
		return n.eval()
	}

	if maximizing {
		value := math.Inf(-1)
		for _, child := range n.Children {
			value = max(value, Evaluate(ctx, child, depth-1, alpha, beta, false))
			if value > beta {
				break
			}
			alpha = max(alpha, value)
		}
		n.Score = value
	} else {
		value := math.Inf(1)
		for _, child := range n.Children {
			value = min(value, Evaluate(ctx, child, depth-1, alpha, beta, true))
			if value < alpha {
				break
			}
			beta = min(beta, value)
		}
		n.Score = value
	}

	return n.Score
}
