package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zarux/othello/internal/logger"
	"github.com/Zarux/othello/pkg/alphabeta"
	"github.com/Zarux/othello/pkg/othello"
)

type botPlayer interface {
	GetNextMove(context.Context, *othello.Board, othello.Team) (alphabeta.Result, bool)
	OnProgress(func(alphabeta.Progress))
}

type turn struct {
	board  *othello.Board
	toMove othello.Team
}

type botReport struct {
	move      othello.Coord
	depth     int
	score     float64
	thinkTime time.Duration
}

type model struct {
	board   *othello.Board
	toMove  othello.Team
	human   othello.Team
	botTeam othello.Team
	bot     botPlayer
	eval    othello.Evaluator
	log     *logger.Logger

	// Positions at the human's earlier turns, newest last.
	history []turn

	input    textinput.Model
	spinner  spinner.Model
	header   string
	errMsg   string
	notice   string
	progress alphabeta.Progress
	lastBot  *botReport
	// Score of the position after the human's last move, from their side.
	humanScore *float64
	cancelBot  context.CancelFunc

	gameOver bool
	Replay   bool
}

var (
	whiteStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000ff", Dark: "#ffffffff"}).Render
	blackStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#bb0000ff", Dark: "#df1010ff"}).Render
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8f8f8fff", Dark: "#414141ff"}).Render
	legalStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007e50ff", Dark: "#6afd76ff"}).Render
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#414141ff", Dark: "#8f8f8fff"}).Render
	lastMoveFmt  = lipgloss.NewStyle().Underline(true).Render
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#960000ff", Dark: "#fc7e7eff"}).Render
	statStyle1   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8a880fff", Dark: "#ddda1dff"}).Render
	statStyle2   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#138a0fff", Dark: "#1ddd37ff"}).Render
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0003adff", Dark: "#5f61fcff"}).Render
	winnerStyles = map[othello.Team]func(...string) string{
		othello.White: whiteStyle,
		othello.Black: blackStyle,
	}
)

const (
	emptyGlyph = "◯"
	discGlyph  = "⬤"
)

func InitialModel(header string, b *othello.Board, bot botPlayer, human othello.Team, eval othello.Evaluator, log *logger.Logger) *model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	in := textinput.New()
	in.Placeholder = "row,col or back"
	in.CharLimit = 16
	in.Width = 20

	return &model{
		board:   b,
		toMove:  othello.Black,
		human:   human,
		botTeam: human.Opponent(),
		bot:     bot,
		eval:    eval,
		log:     log,
		input:   in,
		spinner: s,
		header:  header,
	}
}

func (m *model) Init() tea.Cmd {
	return m.startTurn(othello.Black)
}

type botDoneMsg struct {
	result    alphabeta.Result
	ok        bool
	thinkTime time.Duration
}

type progressMsg struct {
	progress alphabeta.Progress
	ch       chan alphabeta.Progress
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case botDoneMsg:
		return m, m.applyBot(msg)

	case progressMsg:
		m.progress = msg.progress
		return m, listenProgress(msg.ch)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.stopBot()
			return m, tea.Quit

		case tea.KeyEnter:
			if m.gameOver {
				m.Replay = true
				return m, tea.Quit
			}

			if m.toMove != m.human {
				return m, nil
			}

			text := m.input.Value()
			m.input.Reset()
			return m, m.submit(text)
		}

		if m.gameOver && msg.String() == "q" {
			return m, tea.Quit
		}

		if m.toMove == m.human && !m.gameOver {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		if m.toMove != m.botTeam || m.gameOver {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// submit handles one line of human input.
func (m *model) submit(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	m.errMsg = ""

	if strings.EqualFold(text, "back") {
		if len(m.history) == 0 {
			m.errMsg = "Nothing to take back"
			return nil
		}

		last := m.history[len(m.history)-1]
		m.history = m.history[:len(m.history)-1]
		m.board, m.toMove = last.board, last.toMove
		m.lastBot, m.humanScore, m.notice = nil, nil, ""
		m.log.Info("take back", "history", len(m.history))
		return nil
	}

	c, err := othello.ParseCoord(text)
	if err == nil && !m.board.IsLegal(m.human, c) {
		err = fmt.Errorf("%w: %s", othello.ErrIllegalMove, c)
	}

	if err != nil {
		m.errMsg = "Invalid move"
		if errors.Is(err, othello.ErrMalformedMove) {
			m.errMsg += ", use row,col"
		}
		m.log.Debug("rejected input", "input", text, "error", err)
		return nil
	}

	m.history = append(m.history, turn{board: m.board, toMove: m.toMove})
	m.board = m.board.Copy().MakeMove(m.human, c)
	score := m.eval.Eval(m.board, m.human)
	m.humanScore = &score
	m.lastBot, m.notice = nil, ""

	m.log.Info("human move", "move", c.String(), "score", score)

	return m.startTurn(m.botTeam)
}

// startTurn hands the turn to team, passing when it has nothing to play,
// and starts the bot when it is its move.
func (m *model) startTurn(team othello.Team) tea.Cmd {
	if m.board.GameOver() {
		m.gameOver = true
		m.toMove = othello.Empty
		m.input.Blur()
		m.log.Info("game over", "winner", m.board.Winner().String())
		return nil
	}

	if !m.board.HasMoves(team) {
		m.notice += fmt.Sprintf("%s has no moves and passes\n", team)
		team = team.Opponent()
	}

	m.toMove = team
	if team == m.human {
		m.input.Focus()
		return textinput.Blink
	}

	m.input.Blur()
	m.progress = alphabeta.Progress{}

	ctx, cancel := context.WithCancel(logger.NewContext(context.Background(), m.log))
	m.cancelBot = cancel

	ch := make(chan alphabeta.Progress, 1)
	m.bot.OnProgress(func(p alphabeta.Progress) {
		select {
		case ch <- p:
		default:
		}
	})

	return tea.Batch(m.spinner.Tick, botMove(ctx, m.bot, m.board, m.botTeam, ch), listenProgress(ch))
}

func (m *model) stopBot() {
	if m.cancelBot != nil {
		m.cancelBot()
		m.cancelBot = nil
	}
}

func botMove(ctx context.Context, bot botPlayer, board *othello.Board, team othello.Team, ch chan alphabeta.Progress) tea.Cmd {
	return func() tea.Msg {
		t := time.Now()
		res, ok := bot.GetNextMove(ctx, board, team)

		// No more progress callbacks once the search returned.
		bot.OnProgress(nil)
		close(ch)

		return botDoneMsg{result: res, ok: ok, thinkTime: time.Since(t)}
	}
}

func listenProgress(ch chan alphabeta.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}

		return progressMsg{progress: p, ch: ch}
	}
}

func (m *model) applyBot(msg botDoneMsg) tea.Cmd {
	m.stopBot()

	if m.toMove != m.botTeam {
		return nil
	}

	if msg.ok {
		m.board = msg.result.Board
		m.lastBot = &botReport{
			move:      msg.result.Move,
			depth:     msg.result.Depth,
			score:     m.eval.Eval(m.board, m.botTeam),
			thinkTime: msg.thinkTime,
		}
		m.log.Info("bot move", "move", msg.result.Move.String(), "depth", msg.result.Depth, "score", m.lastBot.score, "think_time", msg.thinkTime)
	}

	return m.startTurn(m.human)
}

func (m *model) renderBoard() string {
	var legal othello.Set
	if m.toMove == m.human && !m.gameOver {
		legal = m.eval.ValidMoves(m.board, m.human)
	}

	s := strings.Builder{}
	s.WriteString("   ")
	for col := range othello.Size {
		s.WriteString(labelStyle(fmt.Sprintf("(%d)", col)))
	}
	s.WriteString("\n")

	for row := othello.Size - 1; row >= 0; row-- {
		s.WriteString(labelStyle(fmt.Sprintf("(%d)", row)))
		for col := range othello.Size {
			c := othello.Coord{Row: row, Col: col}

			var mark string
			switch {
			case m.board.At(c) == othello.White:
				mark = whiteStyle(discGlyph)
			case m.board.At(c) == othello.Black:
				mark = blackStyle(discGlyph)
			case legal.Has(c):
				mark = legalStyle(emptyGlyph)
			default:
				mark = emptyStyle(emptyGlyph)
			}

			if m.lastBot != nil && m.lastBot.move == c {
				mark = lastMoveFmt(mark)
			}

			s.WriteString(" " + mark + " ")
		}
		s.WriteString("\n")
	}

	return s.String()
}

func (m *model) View() string {
	if m.gameOver && m.Replay {
		return ""
	}

	s := m.header
	s += fmt.Sprintf("You are %s, the bot is %s\n\n", winnerStyles[m.human](m.human.String()), winnerStyles[m.botTeam](m.botTeam.String()))
	s += m.renderBoard()
	s += fmt.Sprintf("\nWhite %d - Black %d\n", m.board.Count(othello.White), m.board.Count(othello.Black))

	if m.lastBot != nil {
		s += fmt.Sprintf(
			"\nBot played: %s\nSearched to depth %s in %s\nScore: %s\n",
			statStyle1(m.lastBot.move.String()),
			statStyle2(fmt.Sprint(m.lastBot.depth)),
			statStyle2(m.lastBot.thinkTime.Round(time.Millisecond).String()),
			statStyle1(fmt.Sprintf("%.2f", m.lastBot.score)),
		)
	} else if m.humanScore != nil {
		s += fmt.Sprintf("\nScore: %s\n", statStyle1(fmt.Sprintf("%.2f", *m.humanScore)))
	}

	if m.notice != "" {
		s += "\n" + noticeStyle(m.notice)
	}

	if m.gameOver {
		s += "\n" + gameOverText
		s += "\nTHE WINNER IS: "
		winner := m.board.Winner()
		if winner == othello.Empty {
			s += errorStyle("NO ONE") + "\n"
		} else {
			s += winnerStyles[winner](winner.String()) + "\n"
		}
		s += "\nenter to play again, q to quit\n"
		return s
	}

	if m.toMove == m.botTeam {
		s += fmt.Sprintf("\nBot is thinking %s ply = %d | %s\n", m.spinner.View(), m.progress.Depth, m.progress.Elapsed.Round(time.Millisecond))
		return s
	}

	moves := m.eval.ValidMoves(m.board, m.human).Coords()
	parts := make([]string, len(moves))
	for i, c := range moves {
		parts[i] = c.String()
	}

	s += "\nValid moves are " + strings.Join(parts, " ") + "\n"
	if m.errMsg != "" {
		s += "\n" + errorStyle(m.errMsg) + "\n"
	}
	s += "Whats your move: " + m.input.View() + "\n"

	return s
}

const gameOverText = `ＧＡＭＥ ＯＶＥＲ`
