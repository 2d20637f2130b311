package othello

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Eval scores the board for perspective: positional disc value weighted by
// stability, plus mobility. It reads the board only and does not use the
// move cache.
func (b *Board) Eval(perspective Team) float64 {
	return Evaluator{Workers: 1}.Eval(b, perspective)
}

// discValue is the positional worth of the disc at idx, 0 for an empty cell.
func (b *Board) discValue(idx int) int {
	t := b.cells[idx]
	if t == Empty {
		return 0
	}

	v := positionWeights[idx]
	if corner := cornerOf[idx]; corner >= 0 {
		if b.cells[corner] == t {
			v += cornerOwnedBonus
		} else {
			v += cornerLostPenalty
		}
	}

	return v * (1 + b.stableAxes(idx))
}

// stableAxes counts the axes along which the disc at idx runs through its
// own colour to the edge on at least one side.
func (b *Board) stableAxes(idx int) int {
	t := b.cells[idx]
	n := 0
	for a := range axes {
		if b.runsToEdge(t, idx, a) || b.runsToEdge(t, idx, a+axes) {
			n++
		}
	}

	return n
}

func (b *Board) runsToEdge(t Team, idx, d int) bool {
	for _, n := range rays[idx][d] {
		if b.cells[n] != t {
			return false
		}
	}

	return true
}

func mobility(moves Set) float64 {
	return mobilityMultiplier * math.Sqrt(float64(moves.Len()))
}

// Evaluator runs Eval and move generation over a board, fanning the cells
// out over Workers goroutines. Each worker keeps its own partial result, so
// the outcome does not depend on the worker count.
type Evaluator struct {
	Workers int
}

type discTotals struct {
	white, black int
}

func (e Evaluator) Eval(b *Board, perspective Team) float64 {
	if perspective == Empty {
		return 0
	}

	totals := fanOut(e.Workers, b.played, func(part Set) discTotals {
		var d discTotals
		part.indices(func(idx int) {
			switch b.cells[idx] {
			case White:
				d.white += b.discValue(idx)
			case Black:
				d.black += b.discValue(idx)
			}
		})
		return d
	})

	var sum discTotals
	for _, d := range totals {
		sum.white += d.white
		sum.black += d.black
	}

	score := float64(sum.white - sum.black)
	if perspective == Black {
		score = -score
	}

	own := e.ValidMoves(b, perspective)
	opp := e.ValidMoves(b, perspective.Opponent())

	return score + mobility(own) - mobility(opp)
}

// ValidMoves is the uncached, concurrency safe form of Board.ValidMoves.
func (e Evaluator) ValidMoves(b *Board, t Team) Set {
	if t == Empty {
		return 0
	}

	parts := fanOut(e.Workers, b.frontier, func(part Set) Set {
		return b.scanMoves(t, part)
	})

	var moves Set
	for _, p := range parts {
		moves = moves.Union(p)
	}

	return moves
}

// fanOut splits s into up to workers disjoint parts and runs fn on each.
func fanOut[T any](workers int, s Set, fn func(Set) T) []T {
	if workers <= 1 || s.Len() < 2 {
		return []T{fn(s)}
	}

	parts := split(s, workers)
	results := make([]T, len(parts))

	g := errgroup.Group{}
	for i, part := range parts {
		g.Go(func() error {
			results[i] = fn(part)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func split(s Set, n int) []Set {
	if n > s.Len() {
		n = s.Len()
	}

	parts := make([]Set, n)
	i := 0
	s.indices(func(idx int) {
		parts[i%n] |= 1 << idx
		i++
	})

	return parts
}
