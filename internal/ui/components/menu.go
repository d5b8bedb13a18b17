package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry on the home cabinet. Disabled entries (e.g.
// START QUIZ with too few cars indexed) stay visible but can't be
// selected or activated.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu tracks selection over a list of items and dispatches the chosen
// action. It does not render itself; the home screen draws the arcade
// buttons and reads Selected.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu builds a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Update moves the selection with up/k and down/j, skipping disabled
// items, and fires the selected action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if i, ok := m.nextEnabled(-1); ok {
			m.Selected = i
		}
	case "down", "j":
		if i, ok := m.nextEnabled(1); ok {
			m.Selected = i
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			if item := m.Items[m.Selected]; item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// nextEnabled finds the nearest enabled item in the given direction.
func (m Menu) nextEnabled(step int) (int, bool) {
	for i := m.Selected + step; i >= 0 && i < len(m.Items); i += step {
		if !m.Items[i].Disabled {
			return i, true
		}
	}
	return 0, false
}
