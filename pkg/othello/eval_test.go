package othello

import (
	"math"
	"testing"
)

func TestEvalStartingBoardIsBalanced(t *testing.T) {
	b := NewBoard()
	for _, team := range []Team{White, Black} {
		if got := b.Eval(team); got != 0 {
			t.Fatalf("expected 0 for %s, got %f", team, got)
		}
	}
}

func TestEvalCornerAndStability(t *testing.T) {
	var cells [Cells]Team
	cells[Coord{0, 0}.Index()] = White
	cells[Coord{0, 1}.Index()] = White
	cells[Coord{1, 1}.Index()] = Black
	b := FromCells(cells)

	// corner 8*(1+4) + owned-corner flank (0+6)*(1+4) for White,
	// lost-corner flank (0-4)*(1+0) for Black
	if got := b.discValue(Coord{0, 0}.Index()); got != 40 {
		t.Fatalf("expected corner value 40, got %d", got)
	}
	if got := b.discValue(Coord{0, 1}.Index()); got != 30 {
		t.Fatalf("expected flank value 30, got %d", got)
	}
	if got := b.discValue(Coord{1, 1}.Index()); got != -4 {
		t.Fatalf("expected flank value -4, got %d", got)
	}

	if got := b.ValidMoves(White); got != SetOf(Coord{2, 1}, Coord{2, 2}) {
		t.Fatalf("unexpected White moves %s", got)
	}

	want := 74 + 2*math.Sqrt(2)
	if got := b.Eval(White); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
	if got := b.Eval(Black); math.Abs(got+want) > 1e-9 {
		t.Fatalf("expected %f, got %f", -want, got)
	}
}

func TestStableAxesRange(t *testing.T) {
	var cells [Cells]Team
	for i := range cells {
		cells[i] = White
	}
	b := FromCells(cells)

	for i := range Cells {
		if got := b.stableAxes(i); got != axes {
			t.Fatalf("expected %d stable axes on a full board at %s, got %d", axes, CoordOf(i), got)
		}
	}

	b = NewBoard()
	if got := b.stableAxes(Coord{3, 3}.Index()); got != 0 {
		t.Fatalf("expected centre disc to be unstable, got %d", got)
	}
}

func TestEvalDoesNotTouchMoveCache(t *testing.T) {
	b := NewBoard()
	cached := b.ValidMoves(White)
	b.Eval(Black)

	if b.movesTeam != White || b.moves != cached {
		t.Fatalf("Eval changed the move cache")
	}
}

func TestParallelEvaluatorMatchesSerial(t *testing.T) {
	for seed := range uint64(8) {
		randomGame(t, seed, func(b *Board, toMove Team) {
			serial := Evaluator{Workers: 1}
			for _, workers := range []int{2, 3, 8, 64} {
				e := Evaluator{Workers: workers}
				for _, team := range []Team{White, Black} {
					if got, want := e.Eval(b, team), serial.Eval(b, team); got != want {
						t.Fatalf("workers=%d: expected eval %f, got %f", workers, want, got)
					}
					if got, want := e.ValidMoves(b, team), serial.ValidMoves(b, team); got != want {
						t.Fatalf("workers=%d: expected moves %s, got %s", workers, want, got)
					}
				}
			}
		})
	}
}

func TestEvalConcurrentReaders(t *testing.T) {
	b := NewBoard().MakeMove(White, Coord{2, 3}).MakeMove(Black, Coord{2, 2})
	want := b.Eval(White)

	done := make(chan float64)
	for range 8 {
		go func() {
			done <- Evaluator{Workers: 4}.Eval(b, White)
		}()
	}

	for range 8 {
		if got := <-done; got != want {
			t.Fatalf("expected %f, got %f", want, got)
		}
	}
}
