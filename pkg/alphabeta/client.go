package alphabeta

import (
	"cmp"
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/Zarux/othello/internal/logger"
	"github.com/Zarux/othello/pkg/othello"
)

const defaultPollInterval = 50 * time.Millisecond

type LastMoveStats struct {
	ThinkTime  time.Duration
	Depth      int
	MaxDepth   int
	Aborted    bool
	Candidates int
	BestMove   othello.Coord
	Score      float64
}

// Progress is reported while a depth is being searched.
type Progress struct {
	Depth   int
	Elapsed time.Duration
}

type Result struct {
	Move  othello.Coord
	Board *othello.Board
	Score float64
	// Depth is the last fully searched depth, 0 when no depth completed.
	Depth int
}

type Client struct {
	mu sync.Mutex

	workers   int
	thinkTime time.Duration
	schedule  DepthSchedule
	progress  func(Progress)

	lastMoveStats *LastMoveStats
}

func New(workers int, thinkTime time.Duration) *Client {
	return &Client{
		workers:   max(workers, 1),
		thinkTime: thinkTime,
		schedule:  DefaultSchedule(),
	}
}

func (c *Client) UpdateThinkTime(t time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.thinkTime = t
}

func (c *Client) UpdateWorkers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.workers = max(n, 1)
}

func (c *Client) UpdateSchedule(s DepthSchedule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schedule = s
}

// OnProgress registers fn to be called on every watchdog tick.
func (c *Client) OnProgress(fn func(Progress)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress = fn
}

func (c *Client) Stats() *LastMoveStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastMoveStats
}

type searchParams struct {
	workers   int
	thinkTime time.Duration
	schedule  DepthSchedule
	progress  func(Progress)
}

func (c *Client) params() searchParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return searchParams{
		workers:   c.workers,
		thinkTime: c.thinkTime,
		schedule:  c.schedule,
		progress:  c.progress,
	}
}

// GetNextMove picks a move for team by iterative deepening within the think
// time. It returns false when team has no legal move.
//
// Only depths that finish inside the budget are trusted. MinDepth is always
// searched to completion unless ctx is cancelled, in which case the first
// legal move is returned with Depth 0.
func (c *Client) GetNextMove(ctx context.Context, board *othello.Board, team othello.Team) (Result, bool) {
	log := logger.FromContext(ctx)
	p := c.params()
	start := time.Now()

	c.mu.Lock()
	c.lastMoveStats = nil
	c.mu.Unlock()

	root := board.Copy()
	moves := root.ValidMoves(team).Coords()
	if len(moves) == 0 {
		return Result{}, false
	}

	roots := lo.Map(moves, func(m othello.Coord, _ int) *Node {
		return NewRoot(root.Copy().MakeMove(team, m), m, team.Opponent(), team)
	})

	best := Result{
		Move:  roots[0].Move,
		Board: roots[0].Board.Copy(),
		Score: roots[0].Board.Eval(team),
	}

	stats := &LastMoveStats{Candidates: len(roots)}
	defer func() {
		stats.ThinkTime = time.Since(start)
		stats.Depth = best.Depth
		stats.BestMove = best.Move
		stats.Score = best.Score

		c.mu.Lock()
		c.lastMoveStats = stats
		c.mu.Unlock()
	}()

	if len(roots) == 1 {
		return best, true
	}

	maxDepth := p.schedule.MaxDepth(board.Discs())
	stats.MaxDepth = maxDepth

	for depth := MinDepth; depth <= maxDepth; depth++ {
		if depth > MinDepth && time.Since(start) > p.thinkTime {
			break
		}

		if !searchDepth(ctx, p, roots, depth, start) {
			stats.Aborted = true
			log.Debug("search aborted", "depth", depth, "elapsed", time.Since(start))
			break
		}

		slices.SortStableFunc(roots, func(a, b *Node) int {
			return cmp.Compare(a.Score, b.Score)
		})

		top := roots[len(roots)-1]
		best = Result{
			Move:  top.Move,
			Board: top.Board.Copy(),
			Score: top.Score,
			Depth: depth,
		}

		log.Debug("depth complete", "depth", depth, "move", top.Move.String(), "score", top.Score, "elapsed", time.Since(start))
	}

	return best, true
}

// searchDepth evaluates every root to depth in parallel and reports whether
// the whole batch finished without being cancelled.
func searchDepth(ctx context.Context, p searchParams, roots []*Node, depth int, start time.Time) bool {
	depthCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)

		g := errgroup.Group{}
		g.SetLimit(p.workers)
		for _, root := range roots {
			g.Go(func() error {
				Evaluate(depthCtx, root, depth, math.Inf(-1), math.Inf(1), root.ToMove == root.Perspective)
				return nil
			})
		}
		_ = g.Wait()
	}()

	poll := min(defaultPollInterval, max(p.thinkTime/10, time.Millisecond))
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return depthCtx.Err() == nil

		case <-ticker.C:
			elapsed := time.Since(start)
			if p.progress != nil {
				p.progress(Progress{Depth: depth, Elapsed: elapsed})
			}

			if depth > MinDepth && elapsed > p.thinkTime {
				cancel()
			}
		}
	}
}
