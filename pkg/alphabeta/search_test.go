package alphabeta

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/Zarux/othello/pkg/othello"
)

// randomPosition plays plies random moves from the start, passing when a
// side is stuck, and returns the board and the side to move.
func randomPosition(seed uint64, plies int) (*othello.Board, othello.Team) {
	r := rand.New(rand.NewPCG(seed, 99))
	b := othello.NewBoard()
	toMove := othello.Black

	for range plies {
		if b.GameOver() {
			break
		}

		moves := b.ValidMoves(toMove).Coords()
		if len(moves) == 0 {
			toMove = toMove.Opponent()
			continue
		}

		b = b.Copy().MakeMove(toMove, moves[r.IntN(len(moves))])
		toMove = toMove.Opponent()
	}

	return b, toMove
}

func minimax(b *othello.Board, toMove, perspective othello.Team, depth int) float64 {
	if depth == 0 {
		return b.Eval(perspective)
	}

	moves := b.Copy().ValidMoves(toMove).Coords()
	if len(moves) == 0 {
		return b.Eval(perspective)
	}

	maximizing := toMove == perspective
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}

	for _, m := range moves {
		v := minimax(b.Copy().MakeMove(toMove, m), toMove.Opponent(), perspective, depth-1)
		if maximizing {
			best = max(best, v)
		} else {
			best = min(best, v)
		}
	}

	return best
}

func TestEvaluateMatchesMinimax(t *testing.T) {
	ctx := context.Background()

	for seed := range uint64(6) {
		b, toMove := randomPosition(seed, 6+int(seed)*7)
		for depth := range 5 {
			want := minimax(b, toMove, toMove, depth)

			root := NewRoot(b.Copy(), othello.Coord{}, toMove, toMove)
			got := Evaluate(ctx, root, depth, math.Inf(-1), math.Inf(1), true)
			if got != want {
				t.Fatalf("seed %d depth %d: expected %f, got %f", seed, depth, want, got)
			}

			if root.Score != got {
				t.Fatalf("seed %d depth %d: expected score stored on node", seed, depth)
			}
		}
	}
}

func TestEvaluateMinimizingRoot(t *testing.T) {
	b, toMove := randomPosition(42, 10)
	perspective := toMove.Opponent()

	want := minimax(b, toMove, perspective, 3)
	root := NewRoot(b.Copy(), othello.Coord{}, toMove, perspective)
	if got := Evaluate(context.Background(), root, 3, math.Inf(-1), math.Inf(1), false); got != want {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestEvaluateReusesExpandedTree(t *testing.T) {
	b, toMove := randomPosition(3, 12)
	root := NewRoot(b, othello.Coord{}, toMove, toMove)

	for depth := 1; depth <= 4; depth++ {
		want := minimax(b, toMove, toMove, depth)
		if got := Evaluate(context.Background(), root, depth, math.Inf(-1), math.Inf(1), true); got != want {
			t.Fatalf("depth %d: expected %f, got %f", depth, want, got)
		}
	}
}

func TestEvaluateAbortedReturnsZero(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := NewRoot(othello.NewBoard(), othello.Coord{}, othello.White, othello.White)
	if got := Evaluate(ctx, root, 4, math.Inf(-1), math.Inf(1), true); got != 0 {
		t.Fatalf("expected 0, got %f", got)
	}

	if root.Expanded() || len(root.Children) != 0 {
		t.Fatalf("expected no expansion after abort")
	}
}

func TestEvaluateLeafWithoutMoves(t *testing.T) {
	var cells [othello.Cells]othello.Team
	cells[0] = othello.White
	cells[63] = othello.Black
	b := othello.FromCells(cells)

	root := NewRoot(b, othello.Coord{}, othello.White, othello.White)
	got := Evaluate(context.Background(), root, 3, math.Inf(-1), math.Inf(1), true)
	if want := b.Eval(othello.White); got != want {
		t.Fatalf("expected static eval %f, got %f", want, got)
	}

	if !root.Expanded() || len(root.Children) != 0 {
		t.Fatalf("expected an expanded leaf")
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	root := NewRoot(othello.NewBoard(), othello.Coord{}, othello.White, othello.White)
	root.Expand()
	first := root.Children

	root.Expand()
	if len(root.Children) != 4 || &first[0] != &root.Children[0] {
		t.Fatalf("expected the same 4 children after a second Expand")
	}

	for _, child := range root.Children {
		if child.ToMove != othello.Black || child.Perspective != othello.White {
			t.Fatalf("unexpected child teams %s/%s", child.ToMove, child.Perspective)
		}
		if child.Board.Discs() != 5 {
			t.Fatalf("expected 5 discs after an opening move, got %d", child.Board.Discs())
		}
	}

	if root.Board.Discs() != 4 {
		t.Fatalf("expansion changed the parent board")
	}
}

// searchablePosition finds a random position where the side to move has a
// real choice, so the driver cannot short cut a forced move.
func searchablePosition(t *testing.T, plies int) (*othello.Board, othello.Team) {
	t.Helper()

	for seed := range uint64(100) {
		b, toMove := randomPosition(seed, plies)
		if b.Copy().ValidMoves(toMove).Len() >= 2 {
			return b, toMove
		}
	}

	t.Fatalf("no position with a choice after %d plies", plies)
	return nil, othello.Empty
}
