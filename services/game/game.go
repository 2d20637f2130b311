package game

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zarux/othello/internal/logger"
	"github.com/Zarux/othello/pkg/alphabeta"
	"github.com/Zarux/othello/pkg/othello"
	"github.com/Zarux/othello/services/game/game"
	"github.com/Zarux/othello/services/game/settings"
)

type botPlayer interface {
	GetNextMove(context.Context, *othello.Board, othello.Team) (alphabeta.Result, bool)
	OnProgress(func(alphabeta.Progress))
	UpdateThinkTime(t time.Duration)
}

type Service struct {
	bot          botPlayer
	eval         othello.Evaluator
	log          *logger.Logger
	defaultThink time.Duration
}

func New(bot botPlayer, eval othello.Evaluator, log *logger.Logger, defaultThink time.Duration) *Service {
	return &Service{
		bot:          bot,
		eval:         eval,
		log:          log,
		defaultThink: defaultThink,
	}
}

// Play asks for the human's side and the bot's think time, then runs games
// until the human stops asking for a replay.
func (s *Service) Play() error {
	settingsModel := settings.InitialModel(header(), s.defaultThink)
	p := tea.NewProgram(settingsModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	if settingsModel.Cancelled {
		return nil
	}

	settings := settingsModel.GetSettings()
	s.bot.UpdateThinkTime(settings.ThinkTime)
	s.log.Info("new session", "human", settings.Team.String(), "think_time", settings.ThinkTime)

	for {
		gameModel := game.InitialModel(header(), othello.NewBoard(), s.bot, settings.Team, s.eval, s.log)

		p = tea.NewProgram(gameModel, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("game: %w", err)
		}

		if !gameModel.Replay {
			return nil
		}
	}
}

var (
	headerStyle1 = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#4204b5ff", Dark: "#4204b5ff"}).Render
	headerStyle2 = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#19b504ff", Dark: "#19b504ff"}).Render
	headerStyle3 = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#b55404ff", Dark: "#b55404ff"}).Render
)

func header() string {
	return fmt.Sprintf(
		"%s %s%s %s\n\n",
		headerStyle2("---"),
		headerStyle1("OTH"),
		headerStyle3("ELLO"),
		headerStyle2("---"),
	)
}
