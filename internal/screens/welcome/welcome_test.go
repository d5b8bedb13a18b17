package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/carpick/carpick/internal/router"
	"github.com/carpick/carpick/internal/screen"
)

type stubHome struct{}

func (s *stubHome) Init() tea.Cmd                           { return nil }
func (s *stubHome) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubHome) View(int, int) string                    { return "home" }
func (s *stubHome) Title() string                           { return "Home" }

// newSplash wires a WelcomeScreen to a counting home factory.
func newSplash() (*WelcomeScreen, *int) {
	built := 0
	w := New(func() screen.Screen {
		built++
		return &stubHome{}
	})
	return w, &built
}

func advance(w *WelcomeScreen, ticks int) {
	for range ticks {
		w.Update(tickMsg(time.Now()))
	}
}

func taglineShown(view string) bool {
	return strings.Contains(view, "Name that car")
}

func TestSplashChoreography(t *testing.T) {
	w, _ := newSplash()

	if taglineShown(w.View(80, 24)) {
		t.Error("tagline visible before the banner phase")
	}

	advance(w, 5)
	if w.elapsed != phase1End {
		t.Errorf("elapsed after 5 ticks = %v, want %v", w.elapsed, phase1End)
	}

	advance(w, 10)
	if w.elapsed != phase2End {
		t.Errorf("elapsed after 15 ticks = %v, want %v", w.elapsed, phase2End)
	}

	advance(w, 10)
	if !taglineShown(w.View(80, 24)) {
		t.Error("tagline missing after the banner phase")
	}
}

func TestKeypressSkipsAnimation(t *testing.T) {
	w, built := newSplash()
	advance(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("mid-animation keypress should hand off")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if *built != 1 {
		t.Errorf("home built %d times, want 1", *built)
	}
}

func TestKeypressAfterAnimationHandsOff(t *testing.T) {
	w, built := newSplash()
	advance(w, 45)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected a command from keypress after animation")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if replace.Screen == nil {
		t.Error("replacement screen is nil")
	}
	if *built != 1 {
		t.Errorf("home built %d times, want 1", *built)
	}
}

func TestNoHandOffWithoutKeypress(t *testing.T) {
	w, built := newSplash()

	advance(w, 45)

	if *built != 0 {
		t.Errorf("home built %d times without a keypress", *built)
	}
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want capped at %v", w.elapsed, totalDur)
	}
}

func TestSecondKeypressDoesNothing(t *testing.T) {
	w, built := newSplash()
	advance(w, 45)

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})

	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *built != 1 {
		t.Errorf("home built %d times, want exactly 1", *built)
	}
}

func TestSplashHasNoHeaderTitle(t *testing.T) {
	w, _ := newSplash()
	if w.Title() != "" {
		t.Errorf("title = %q, want empty", w.Title())
	}
}
