package othello

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrMalformedMove = errors.New("malformed move")
	ErrOutOfRange    = errors.New("coordinate out of range")
	ErrUnknownTeam   = errors.New("unknown team")
)

type Team int8

const (
	Empty Team = 0
	White Team = 1
	Black Team = -1
)

// Opponent swaps White and Black. Empty stays Empty.
func (t Team) Opponent() Team {
	return -t
}

func (t Team) Mark() string {
	switch t {
	case White:
		return "W"
	case Black:
		return "B"
	}

	return "."
}

func (t Team) String() string {
	switch t {
	case White:
		return "White"
	case Black:
		return "Black"
	}

	return "None"
}

// Idx is the zobrist column of the team, -1 for Empty.
func (t Team) Idx() int {
	switch t {
	case White:
		return 0
	case Black:
		return 1
	}

	return -1
}

func ParseTeam(s string) (Team, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "W", "WHITE":
		return White, nil
	case "B", "BLACK":
		return Black, nil
	}

	return Empty, fmt.Errorf("%w: %q", ErrUnknownTeam, s)
}

type Coord struct {
	Row int
	Col int
}

func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

func (c Coord) Index() int {
	return c.Row*Size + c.Col
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func CoordOf(idx int) Coord {
	return Coord{Row: idx / Size, Col: idx % Size}
}

// ParseCoord reads "row,col", optionally wrapped in parentheses.
func ParseCoord(s string) (Coord, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coord{}, fmt.Errorf("%w: %q, want row,col", ErrMalformedMove, s)
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: row %q", ErrMalformedMove, parts[0])
	}

	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: col %q", ErrMalformedMove, parts[1])
	}

	c := Coord{Row: row, Col: col}
	if !c.Valid() {
		return Coord{}, fmt.Errorf("%w: %s", ErrOutOfRange, c)
	}

	return c, nil
}

// Set is a set of board cells, one bit per cell index.
type Set uint64

func SetOf(coords ...Coord) Set {
	var s Set
	for _, c := range coords {
		s = s.Add(c)
	}

	return s
}

func (s Set) Has(c Coord) bool {
	return c.Valid() && s.has(c.Index())
}

func (s Set) has(idx int) bool {
	return s&(1<<idx) != 0
}

func (s Set) Add(c Coord) Set {
	return s | 1<<c.Index()
}

func (s Set) Len() int {
	return bits.OnesCount64(uint64(s))
}

func (s Set) Union(o Set) Set {
	return s | o
}

// Coords lists the members by ascending cell index.
func (s Set) Coords() []Coord {
	coords := make([]Coord, 0, s.Len())
	for rest := s; rest != 0; rest &= rest - 1 {
		coords = append(coords, CoordOf(bits.TrailingZeros64(uint64(rest))))
	}

	return coords
}

func (s Set) String() string {
	coords := s.Coords()
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = c.String()
	}

	return "{" + strings.Join(parts, " ") + "}"
}

// indices calls fn for every cell index in s, lowest first.
func (s Set) indices(fn func(idx int)) {
	for rest := s; rest != 0; rest &= rest - 1 {
		fn(bits.TrailingZeros64(uint64(rest)))
	}
}
