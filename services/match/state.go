package match

import (
	"github.com/samber/lo"

	"github.com/Zarux/othello/pkg/othello"
)

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func toMove(c othello.Coord) Move {
	return Move{Row: c.Row, Col: c.Col}
}

func (m Move) Coord() othello.Coord {
	return othello.Coord{Row: m.Row, Col: m.Col}
}

// State is the public view of a game. Cells are row-major starting at row 0.
type State struct {
	ID          string   `json:"id"`
	Cells       []string `json:"cells"`
	Hash        uint64   `json:"hash,string"`
	Human       string   `json:"human"`
	ToMove      string   `json:"toMove"`
	LegalMoves  []Move   `json:"legalMoves"`
	LastBotMove *Move    `json:"lastBotMove,omitempty"`
	Score       float64  `json:"score"`
	Depth       int      `json:"depth"`
	GameOver    bool     `json:"gameOver"`
	Winner      string   `json:"winner,omitempty"`
	White       int      `json:"white"`
	Black       int      `json:"black"`
	CanUndo     bool     `json:"canUndo"`
}

func (s *Service) state(g *game) State {
	cells := g.board.Cells()

	st := State{
		ID:    g.id,
		Cells: lo.Map(cells[:], func(t othello.Team, _ int) string { return t.Mark() }),
		Hash:  g.board.Hash(),
		Human: g.human.Mark(),
		Score: g.score,
		Depth: g.depth,
		White: g.board.Count(othello.White),
		Black: g.board.Count(othello.Black),

		CanUndo:  len(g.history) > 0,
		GameOver: g.board.GameOver(),
	}

	if g.lastBotMove != nil {
		m := toMove(*g.lastBotMove)
		st.LastBotMove = &m
	}

	if st.GameOver {
		st.Winner = g.board.Winner().Mark()
		st.LegalMoves = []Move{}
		return st
	}

	st.ToMove = g.toMove.Mark()
	st.LegalMoves = lo.Map(s.eval.ValidMoves(g.board, g.toMove).Coords(), func(c othello.Coord, _ int) Move {
		return toMove(c)
	})

	return st
}
