package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Period is a part of the fiscal year to narrow a transaction list to.
type Period int

const (
	PeriodAll    Period = 0
	PeriodQ1     Period = 1
	PeriodQ2     Period = 2
	PeriodQ3     Period = 3
	PeriodQ4     Period = 4
	PeriodCustom Period = 5
)

func (p Period) String() string {
	switch p {
	case PeriodAll:
		return "Whole Year"
	case PeriodQ1, PeriodQ2, PeriodQ3, PeriodQ4:
		return fmt.Sprintf("Q%d", int(p))
	case PeriodCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// quarterRange returns the first and last day of a calendar quarter.
func quarterRange(year int, p Period) (time.Time, time.Time) {
	start := time.Date(year, time.Month(3*(int(p)-1)+1), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 3, -1)
}

func normalizeDateRange(start, end time.Time) (time.Time, time.Time) {
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
}

// PeriodSelectedMsg is emitted when the user has selected a valid range.
// Start and End are zero values when All is true.
type PeriodSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

// Contains reports whether t falls into the selected range.
func (m PeriodSelectedMsg) Contains(t time.Time) bool {
	return m.All || !t.Before(m.Start) && !t.After(m.End)
}

type periodState int

const (
	periodStateSelect periodState = iota
	periodStateCustom
)

// PeriodPicker selects a quarter of the fiscal year or a custom range.
type PeriodPicker struct {
	state    periodState
	selected Period
	year     int

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewPeriodPicker(year int) PeriodPicker {
	si := textinput.New()
	si.Placeholder = "TT.MM.JJJJ"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Start Date: "

	ei := textinput.New()
	ei.Placeholder = "TT.MM.JJJJ"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "End Date:   "

	return PeriodPicker{
		state:      periodStateSelect,
		selected:   PeriodAll,
		year:       year,
		startInput: si,
		endInput:   ei,
	}
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case periodStateSelect:
			return m.updateSelect(msg)
		case periodStateCustom:
			return m.updateCustom(msg)
		}
	}

	if m.state == periodStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m PeriodPicker) updateSelect(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > PeriodAll {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < PeriodCustom {
			m.selected++
		}
	case tea.KeyEnter:
		switch m.selected {
		case PeriodCustom:
			m.state = periodStateCustom
			m.startInput.Focus()
			m.focusIndex = 0

			return m, textinput.Blink
		case PeriodAll:
			return m, func() tea.Msg {
				return PeriodSelectedMsg{All: true}
			}
		}

		start, end := normalizeDateRange(quarterRange(m.year, m.selected))

		return m, func() tea.Msg {
			return PeriodSelectedMsg{Start: start, End: end}
		}
	}

	return m, nil
}

func (m PeriodPicker) updateCustom(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
			return m, textinput.Blink
		}

		m.endInput.Focus()

		return m, textinput.Blink

	case "enter":
		start, err := time.Parse("02.01.2006", m.startInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid start date (TT.MM.JJJJ)")
			return m, nil
		}

		end, err := time.Parse("02.01.2006", m.endInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid end date (TT.MM.JJJJ)")
			return m, nil
		}

		if end.Before(start) {
			m.err = fmt.Errorf("end date before start date")
			return m, nil
		}

		m.err = nil
		start, end = normalizeDateRange(start, end)

		return m, func() tea.Msg {
			return PeriodSelectedMsg{Start: start, End: end}
		}

	case "esc":
		m.state = periodStateSelect
		m.err = nil

		return m, nil
	}

	return m.updateInputs(msg)
}

func (m PeriodPicker) updateInputs(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	var cmds []tea.Cmd

	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m PeriodPicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == periodStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := fmt.Sprintf("Select Period (%d):\n\n", m.year)
	for p := PeriodAll; p <= PeriodCustom; p++ {
		cursor := " "
		if m.selected == p {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, p.String())
	}

	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting returns true if the picker is in the selection state (not custom input).
func (m PeriodPicker) IsSelecting() bool {
	return m.state == periodStateSelect
}
