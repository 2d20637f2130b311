package match

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"lukechampine.com/frand"

	"github.com/Zarux/othello/internal/logger"
	"github.com/Zarux/othello/pkg/alphabeta"
	"github.com/Zarux/othello/pkg/othello"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrNotYourTurn   = errors.New("not the human's turn")
	ErrStaleBoard    = errors.New("board hash does not match")
	ErrGameOver      = errors.New("game is over")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// MaxThinkTime caps the per-game think time a client can ask for.
const MaxThinkTime = time.Minute

type botPlayer interface {
	GetNextMove(context.Context, *othello.Board, othello.Team) (alphabeta.Result, bool)
}

// NewBot builds the bot for one game.
type NewBot func(thinkTime time.Duration) botPlayer

type turn struct {
	board  *othello.Board
	toMove othello.Team
}

type game struct {
	mu sync.Mutex

	id     string
	human  othello.Team
	bot    othello.Team
	player botPlayer

	board  *othello.Board
	toMove othello.Team
	// Positions at the human's earlier turns, newest last.
	history []turn

	lastBotMove *othello.Coord
	score       float64
	depth       int
}

type Service struct {
	newBot    NewBot
	eval      othello.Evaluator
	thinkTime time.Duration

	mu    sync.RWMutex
	games map[string]*game
}

func New(newBot NewBot, eval othello.Evaluator, thinkTime time.Duration) *Service {
	return &Service{
		newBot:    newBot,
		eval:      eval,
		thinkTime: thinkTime,
		games:     make(map[string]*game),
	}
}

// AlphaBetaBots hands every game its own search client. An empty schedule
// keeps the client's default.
func AlphaBetaBots(workers int, schedule alphabeta.DepthSchedule) NewBot {
	return func(thinkTime time.Duration) botPlayer {
		c := alphabeta.New(workers, thinkTime)
		if len(schedule) > 0 {
			c.UpdateSchedule(schedule)
		}
		return c
	}
}

// NewGame starts a game with the human on the given side. Black moves
// first, so a White human gets the bot's opening move in the response.
func (s *Service) NewGame(ctx context.Context, human othello.Team, thinkTime time.Duration) (State, error) {
	if human != othello.White && human != othello.Black {
		return State{}, fmt.Errorf("%w: %d", othello.ErrUnknownTeam, human)
	}

	if thinkTime <= 0 {
		thinkTime = s.thinkTime
	}
	thinkTime = min(thinkTime, MaxThinkTime)

	g := &game{
		id:     hex.EncodeToString(frand.Bytes(8)),
		human:  human,
		bot:    human.Opponent(),
		player: s.newBot(thinkTime),
		board:  othello.NewBoard(),
		toMove: othello.Black,
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	s.mu.Lock()
	s.games[g.id] = g
	s.mu.Unlock()

	logger.FromContext(ctx).Info("new game", "game", g.id, "human", human.String(), "think_time", thinkTime)

	s.advance(ctx, g)
	return s.state(g), nil
}

func (s *Service) get(id string) (*game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	return g, nil
}

func (s *Service) Game(ctx context.Context, id string) (State, error) {
	g, err := s.get(id)
	if err != nil {
		return State{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return s.state(g), nil
}

// NewMove plays the human's move and lets the bot answer. A non-nil hash
// must match the current board.
func (s *Service) NewMove(ctx context.Context, id string, move othello.Coord, hash *uint64) (State, error) {
	g, err := s.get(id)
	if err != nil {
		return State{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.board.GameOver() {
		return State{}, ErrGameOver
	}

	if g.toMove != g.human {
		return State{}, ErrNotYourTurn
	}

	if hash != nil && *hash != g.board.Hash() {
		return State{}, ErrStaleBoard
	}

	next, err := g.board.Copy().Play(g.human, move)
	if err != nil {
		return State{}, err
	}

	g.history = append(g.history, turn{board: g.board, toMove: g.toMove})
	g.board = next
	g.toMove = g.bot

	s.advance(ctx, g)
	return s.state(g), nil
}

// Undo goes back to the human's previous turn.
func (s *Service) Undo(ctx context.Context, id string) (State, error) {
	g, err := s.get(id)
	if err != nil {
		return State{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.history) == 0 {
		return State{}, ErrNothingToUndo
	}

	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board, g.toMove = last.board, last.toMove
	g.lastBotMove = nil
	g.score, g.depth = 0, 0

	logger.FromContext(ctx).Info("undo", "game", g.id, "history", len(g.history))

	return s.state(g), nil
}

// advance plays bot moves and passes until the human can move or the game
// ends.
func (s *Service) advance(ctx context.Context, g *game) {
	log := logger.FromContext(ctx).With("game", g.id)

	for !g.board.GameOver() {
		if !g.board.HasMoves(g.toMove) {
			log.Info("pass", "team", g.toMove.String())
			g.toMove = g.toMove.Opponent()
			continue
		}

		if g.toMove == g.human {
			return
		}

		// A client hanging up must not cut the search short, or the game
		// would keep an unsearched move.
		res, ok := g.player.GetNextMove(context.WithoutCancel(ctx), g.board, g.bot)
		if !ok {
			// HasMoves said otherwise; treat it as a pass rather than loop.
			g.toMove = g.human
			continue
		}

		move := res.Move
		g.board = res.Board
		g.lastBotMove = &move
		g.score = s.eval.Eval(g.board, g.bot)
		g.depth = res.Depth
		g.toMove = g.human

		log.Info("bot move", "move", move.String(), "depth", res.Depth, "score", g.score)
	}

	log.Info("game over", "winner", g.board.Winner().String(), "white", g.board.Count(othello.White), "black", g.board.Count(othello.Black))
}
