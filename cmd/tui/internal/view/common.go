package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// BatchSelectedMsg makes a batch the one the other screens work on.
type BatchSelectedMsg struct {
	ID uuid.UUID
}

func selectBatch(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		return BatchSelectedMsg{ID: id}
	}
}
