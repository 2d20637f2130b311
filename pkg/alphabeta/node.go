package alphabeta

import (
	"github.com/Zarux/othello/pkg/othello"
)

// Node is a lazily expanded game tree node. A parent owns its children.
type Node struct {
	Board *othello.Board
	// Move that produced this node.
	Move othello.Coord
	// ToMove is the team whose turn it is on Board.
	ToMove othello.Team
	// Perspective is the team the scores are computed for.
	Perspective othello.Team

	Score float64

	Children []*Node
	expanded bool
}

func NewRoot(board *othello.Board, move othello.Coord, toMove, perspective othello.Team) *Node {
	return &Node{
		Board:       board,
		Move:        move,
		ToMove:      toMove,
		Perspective: perspective,
	}
}

func (n *Node) Expanded() bool {
	return n.expanded
}

// Expand creates one child per legal move of ToMove. Calling it again is a
// no-op.
func (n *Node) Expand() {
	if n.expanded {
		return
	}
	n.expanded = true

	moves := n.Board.ValidMoves(n.ToMove).Coords()
	n.Children = make([]*Node, 0, len(moves))
	for _, m := range moves {
		n.Children = append(n.Children, &Node{
			Board:       n.Board.Copy().MakeMove(n.ToMove, m),
			Move:        m,
			ToMove:      n.ToMove.Opponent(),
			Perspective: n.Perspective,
		})
	}
}

// eval scores the board for Perspective whichever team is to move.
func (n *Node) eval() float64 {
	n.Score = n.Board.Eval(n.Perspective)
	return n.Score
}
