package alphabeta

import "github.com/Zarux/othello/pkg/othello"

const MinDepth = 2

type DepthStep struct {
	MaxDiscs int `json:"max_discs"`
	Depth    int `json:"depth"`
}

// DepthSchedule caps the search depth by the number of discs on the board.
// Steps are checked in order; the first step with MaxDiscs >= discs wins and
// the last step applies past every threshold.
type DepthSchedule []DepthStep

// DefaultSchedule searches shallower in the opening, where the tree is wide
// and the position matters less.
func DefaultSchedule() DepthSchedule {
	return DepthSchedule{
		{MaxDiscs: 18, Depth: 6},
		{MaxDiscs: 24, Depth: 8},
		{MaxDiscs: 64, Depth: 10},
	}
}

func (s DepthSchedule) MaxDepth(discs int) int {
	depth := MinDepth
	for _, step := range s {
		depth = step.Depth
		if discs <= step.MaxDiscs {
			break
		}
	}

	// No point looking past the last empty cell.
	if empties := othello.Cells - discs; depth > empties {
		depth = empties
	}

	return max(depth, MinDepth)
}
