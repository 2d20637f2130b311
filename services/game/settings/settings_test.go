package settings

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zarux/othello/pkg/othello"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestChooseBlackAndThinkTime(t *testing.T) {
	m := InitialModel("", 5*time.Second)

	if !strings.Contains(m.View(), "Are you W or B") {
		t.Fatalf("expected the side prompt, got %q", m.View())
	}

	m.Update(key("b"))
	if m.GetSettings().Team != othello.Black {
		t.Fatalf("expected Black, got %s", m.GetSettings().Team)
	}

	// cursor starts on the default think time
	m.Update(key("down"))
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatalf("expected the program to quit after the last choice")
	}

	if got := m.GetSettings().ThinkTime; got != 6*time.Second {
		t.Fatalf("expected 6s, got %v", got)
	}

	if m.View() != "" || m.Cancelled {
		t.Fatalf("expected a cleared, completed settings screen")
	}
}

func TestChooseWhiteWithEnter(t *testing.T) {
	m := InitialModel("", 0)

	m.Update(key("enter"))
	if m.GetSettings().Team != othello.White {
		t.Fatalf("expected White, got %s", m.GetSettings().Team)
	}

	m.Update(key("up"))
	m.Update(key("enter"))
	if got := m.GetSettings().ThinkTime; got != 60*time.Second {
		t.Fatalf("expected wrap around to 60s, got %v", got)
	}
}

func TestQuitCancels(t *testing.T) {
	m := InitialModel("", time.Second)
	m.Update(key("q"))

	if !m.Cancelled {
		t.Fatalf("expected the settings to be cancelled")
	}
}

func TestThinkTimeView(t *testing.T) {
	m := InitialModel("", 5*time.Second)
	m.Update(key("w"))

	v := m.View()
	if !strings.Contains(v, "You play White") {
		t.Fatalf("expected the chosen side in the view, got %q", v)
	}

	if !strings.Contains(v, "5s of thinking") || !strings.Contains(v, " (default)") {
		t.Fatalf("expected the default think time to be marked, got %q", v)
	}

	if strings.Contains(v, "60s of thinking") {
		t.Fatalf("expected only the choices around the cursor, got %q", v)
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		cursor, n        int
		wantFrom, wantTo int
	}{
		{0, 2, 0, 2},
		{0, 60, 0, 7},
		{4, 60, 1, 8},
		{59, 60, 53, 60},
	}

	for _, tt := range tests {
		from, to := window(tt.cursor, tt.n)
		if from != tt.wantFrom || to != tt.wantTo {
			t.Fatalf("window(%d, %d): expected [%d,%d), got [%d,%d)", tt.cursor, tt.n, tt.wantFrom, tt.wantTo, from, to)
		}
	}
}
