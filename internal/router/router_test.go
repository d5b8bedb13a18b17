package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/carpick/carpick/internal/screen"
)

// fakeScreen stands in for the real screens (home, quiz, history). It
// records whether Init ran and which messages it saw.
type fakeScreen struct {
	name    string
	initRan bool
	seen    []tea.Msg
}

func (f *fakeScreen) Init() tea.Cmd {
	f.initRan = true
	return nil
}

func (f *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	f.seen = append(f.seen, msg)
	return f, nil
}

func (f *fakeScreen) View(int, int) string { return f.name }
func (f *fakeScreen) Title() string        { return f.name }

// homeQuizStack is the common fixture: home at the bottom, quiz pushed
// on top.
func homeQuizStack() (*Router, *fakeScreen, *fakeScreen) {
	home := &fakeScreen{name: "home"}
	quiz := &fakeScreen{name: "quiz"}
	r := New(home)
	r.Push(quiz)
	return r, home, quiz
}

func TestPushActivatesAndInits(t *testing.T) {
	r, _, quiz := homeQuizStack()

	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "quiz" {
		t.Fatalf("active = %q, want quiz", r.Active().Title())
	}
	if !quiz.initRan {
		t.Fatal("pushed screen's Init should run")
	}
}

func TestPopReturnsToPrevious(t *testing.T) {
	r, _, _ := homeQuizStack()

	r.Pop()

	if r.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Fatalf("active = %q, want home", r.Active().Title())
	}
}

func TestPopKeepsBottomScreen(t *testing.T) {
	r := New(&fakeScreen{name: "home"})

	r.Pop()

	if r.Depth() != 1 {
		t.Fatalf("depth = %d after bottom pop, want 1", r.Depth())
	}
}

func TestReplaceSwapsInPlace(t *testing.T) {
	r, _, _ := homeQuizStack()

	summary := &fakeScreen{name: "summary"}
	r.Replace(summary)

	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want 2 (replace must not grow the stack)", r.Depth())
	}
	if r.Active().Title() != "summary" {
		t.Fatalf("active = %q, want summary", r.Active().Title())
	}
	if !summary.initRan {
		t.Fatal("replacement screen's Init should run")
	}
}

func TestNavigationMessages(t *testing.T) {
	home := &fakeScreen{name: "home"}
	r := New(home)

	quiz := &fakeScreen{name: "quiz"}
	r.Update(PushScreenMsg{Screen: quiz})
	if r.Active().Title() != "quiz" || !quiz.initRan {
		t.Fatal("PushScreenMsg should push and init the screen")
	}

	summary := &fakeScreen{name: "summary"}
	r.Update(ReplaceScreenMsg{Screen: summary})
	if r.Active().Title() != "summary" || r.Depth() != 2 {
		t.Fatalf("ReplaceScreenMsg: active = %q depth = %d", r.Active().Title(), r.Depth())
	}

	r.Update(PopScreenMsg{})
	if r.Active().Title() != "home" {
		t.Fatalf("PopScreenMsg: active = %q, want home", r.Active().Title())
	}
}

func TestUpdateReachesOnlyActiveScreen(t *testing.T) {
	r, home, quiz := homeQuizStack()

	r.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if len(quiz.seen) != 1 {
		t.Fatalf("active screen saw %d messages, want 1", len(quiz.seen))
	}
	if len(home.seen) != 0 {
		t.Fatalf("covered screen saw %d messages, want 0", len(home.seen))
	}
}
