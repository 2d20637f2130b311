package othello

import (
	"fmt"
	"strings"

	"github.com/Zarux/othello/pkg/zobrist"
)

var zobristKeys = zobrist.New(Cells)

// Board is an 8x8 Othello position. Copy before mutating a board that
// anyone else still holds.
//
// ValidMoves and MakeMove write to the board and must not run concurrently
// with anything else on the same board. The read-only methods (At, Eval,
// IsLegal, ...) are safe to call concurrently while nobody mutates it.
type Board struct {
	cells [Cells]Team

	// Empty cells next to at least one disc.
	frontier Set
	// Every cell that has held a disc.
	played Set
	hash   uint64

	moves     Set
	movesTeam Team
}

func NewBoard() *Board {
	b := &Board{}
	b.place(Coord{3, 3}.Index(), Black)
	b.place(Coord{3, 4}.Index(), White)
	b.place(Coord{4, 3}.Index(), White)
	b.place(Coord{4, 4}.Index(), Black)

	return b
}

// FromCells builds a board from a row-major layout, row 0 first. Used for
// setting up positions in tests and when restoring a game.
func FromCells(cells [Cells]Team) *Board {
	b := &Board{}
	for i, t := range cells {
		if t != Empty {
			b.place(i, t)
		}
	}

	return b
}

func (b *Board) place(idx int, t Team) {
	b.cells[idx] = t
	b.hash ^= zobristKeys[idx][t.Idx()]
	b.played |= 1 << idx
	b.frontier = (b.frontier | neighbours[idx]) &^ b.played
	b.moves, b.movesTeam = 0, Empty
}

func (b *Board) At(c Coord) Team {
	if !c.Valid() {
		return Empty
	}

	return b.cells[c.Index()]
}

func (b *Board) Cells() [Cells]Team {
	return b.cells
}

func (b *Board) Hash() uint64 {
	return b.hash
}

func (b *Board) Frontier() Set {
	return b.frontier
}

func (b *Board) Count(t Team) int {
	n := 0
	b.played.indices(func(idx int) {
		if b.cells[idx] == t {
			n++
		}
	})

	return n
}

// Discs is the number of discs on the board.
func (b *Board) Discs() int {
	return b.played.Len()
}

func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// flankLength is the number of opponent discs captured from idx in
// direction d, 0 when the direction does not capture.
func (b *Board) flankLength(t Team, idx, d int) int {
	opp := t.Opponent()
	for i, n := range rays[idx][d] {
		switch b.cells[n] {
		case opp:
			continue
		case t:
			return i
		}

		return 0
	}

	return 0
}

// IsLegal scans all directions from c without touching the move cache.
func (b *Board) IsLegal(t Team, c Coord) bool {
	if t == Empty || !c.Valid() {
		return false
	}

	idx := c.Index()
	if b.cells[idx] != Empty {
		return false
	}

	for d := range directions {
		if b.flankLength(t, idx, d) > 0 {
			return true
		}
	}

	return false
}

func (b *Board) scanMoves(t Team, candidates Set) Set {
	var moves Set
	candidates.indices(func(idx int) {
		if b.IsLegal(t, CoordOf(idx)) {
			moves |= 1 << idx
		}
	})

	return moves
}

// ValidMoves returns the legal moves for t. The result is cached until the
// next mutation or a call for the other team.
func (b *Board) ValidMoves(t Team) Set {
	if t == Empty {
		return 0
	}

	if b.movesTeam == t {
		return b.moves
	}

	b.moves = b.scanMoves(t, b.frontier)
	b.movesTeam = t

	return b.moves
}

func (b *Board) HasMoves(t Team) bool {
	if b.movesTeam == t && t != Empty {
		return b.moves != 0
	}

	return b.scanMoves(t, b.frontier) != 0
}

// GameOver reports that neither side can move.
func (b *Board) GameOver() bool {
	return !b.HasMoves(White) && !b.HasMoves(Black)
}

// Winner is the team with more discs, Empty on a draw.
func (b *Board) Winner() Team {
	w, bl := b.Count(White), b.Count(Black)
	switch {
	case w > bl:
		return White
	case bl > w:
		return Black
	}

	return Empty
}

// MakeMove plays a move that the caller already knows is legal and returns
// the receiver. Playing an illegal move is a bug and panics; use Play for
// untrusted input.
func (b *Board) MakeMove(t Team, c Coord) *Board {
	if t == Empty || !c.Valid() || b.cells[c.Index()] != Empty {
		panic(fmt.Sprintf("othello: %s plays occupied or invalid cell %s", t, c))
	}

	idx := c.Index()
	flipped := 0
	for d := range directions {
		n := b.flankLength(t, idx, d)
		for _, f := range rays[idx][d][:n] {
			b.cells[f] = t
			b.hash ^= zobristKeys[f][0] ^ zobristKeys[f][1]
		}
		flipped += n
	}

	if flipped == 0 {
		panic(fmt.Sprintf("othello: %s at %s captures nothing", t, c))
	}

	b.place(idx, t)

	return b
}

// Play validates the move before making it.
func (b *Board) Play(t Team, c Coord) (*Board, error) {
	if !c.Valid() {
		return b, fmt.Errorf("%w: %s", ErrOutOfRange, c)
	}

	if !b.IsLegal(t, c) {
		return b, fmt.Errorf("%w: %s at %s", ErrIllegalMove, t, c)
	}

	return b.MakeMove(t, c), nil
}

// String renders the board with row 7 on top; legal moves of the cached
// team are shown as '*'.
func (b *Board) String() string {
	var legal Set
	if b.movesTeam != Empty {
		legal = b.moves
	}

	s := strings.Builder{}
	s.WriteString("   ")
	for col := range Size {
		fmt.Fprintf(&s, "(%d)", col)
	}
	s.WriteString("\n")

	for row := Size - 1; row >= 0; row-- {
		fmt.Fprintf(&s, "(%d)", row)
		for col := range Size {
			c := Coord{row, col}
			mark := b.At(c).Mark()
			if legal.Has(c) {
				mark = "*"
			}
			fmt.Fprintf(&s, " %s ", mark)
		}
		s.WriteString("\n")
	}

	return s.String()
}
