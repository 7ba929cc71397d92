package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

type ReviewModel struct {
	CommonModel
	txService *transaction.Service
	charts    *category.Registry
	batchID   uuid.UUID

	state reviewState

	table     *category.Table
	batch     *transaction.Batch
	queue     []transaction.Transaction
	currentTx *transaction.Transaction
	form      *huh.Form

	status     string
	totalCount int
	changed    int
}

type reviewState int

const (
	reviewStateLoading reviewState = iota
	reviewStateReviewing
	reviewStateDone
)

func NewReviewModel(txSvc *transaction.Service, charts *category.Registry, batchID uuid.UUID) ReviewModel {
	return ReviewModel{
		txService: txSvc,
		charts:    charts,
		batchID:   batchID,
		state:     reviewStateLoading,
	}
}

func (m ReviewModel) Title() string { return "Review Categories" }

func (m ReviewModel) ShortHelp() string {
	if m.state == reviewStateReviewing {
		return "Enter: keep or change & next | Esc: back"
	}

	return "Esc: back"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case loadReviewMsg:
		if msg.err != nil {
			m.state = reviewStateDone
			m.status = fmt.Sprintf("Error loading batch: %v", msg.err)

			return m, nil
		}

		m.batch = msg.batch
		m.table = msg.table
		m.queue = msg.batch.Transactions
		m.totalCount = len(m.queue)

		return m.nextTx()

	case saveResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m.restartForm()
		}

		if msg.batch != nil {
			m.batch = msg.batch
			m.changed++
		}

		return m.nextTx()
	}

	if m.state != reviewStateReviewing || m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveAndNextCmd(m.form.GetString("category"))
}

func (m ReviewModel) nextTx() (tea.Model, tea.Cmd) {
	if len(m.queue) == 0 {
		m.state = reviewStateDone
		m.currentTx = nil
		m.form = nil
		m.status = fmt.Sprintf("All done! %d categories changed.", m.changed)

		return m, nil
	}

	tx := m.queue[0]
	m.queue = m.queue[1:]
	m.currentTx = &tx
	m.state = reviewStateReviewing
	m.status = fmt.Sprintf("Reviewing %d/%d", m.totalCount-len(m.queue), m.totalCount)

	return m.restartForm()
}

func (m ReviewModel) restartForm() (tea.Model, tea.Cmd) {
	choice := m.batch.EffectiveCategory(*m.currentTx)
	m.form = categoryForm(m.table, &choice)

	return m, m.form.Init()
}

// categoryForm asks for a category of the given chart, preselecting *value.
func categoryForm(table *category.Table, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions(table)...).
				Height(12).
				Value(value),
		),
	).WithWidth(70).WithShowHelp(false)
}

func categoryOptions(table *category.Table) []huh.Option[string] {
	infos := table.All()

	opts := make([]huh.Option[string], 0, len(infos))
	for _, info := range infos {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%-8s %s (%s)", info.Type, info.Name, info.Code), info.Key))
	}

	return opts
}

func (m ReviewModel) View() string {
	switch m.state {
	case reviewStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading batch...")
	case reviewStateDone:
		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	tx := m.currentTx

	info := fmt.Sprintf(
		"Date:         %s\nAmount:       %s €\nCounterparty: %s\nPurpose:      %s\nSuggested:    %s",
		FormatDate(tx.Date),
		FormatAmount(tx.Amount),
		tx.Counterparty,
		tx.Purpose,
		tx.Category,
	)

	if override, ok := m.batch.Overrides[tx.ID]; ok {
		info += fmt.Sprintf("\nOverride:     %s", override)
	}

	return lipgloss.NewStyle().Padding(2).Render(
		fmt.Sprintf("%s\n\n%s\n\n%s", m.status, info, m.form.View()),
	)
}

// Messages

type loadReviewMsg struct {
	batch *transaction.Batch
	table *category.Table
	err   error
}

func (m ReviewModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ServiceCtx()
		defer cancel()

		b, err := m.txService.Get(ctx, m.batchID)
		if err != nil {
			return loadReviewMsg{err: err}
		}

		table, err := m.charts.Table(ctx, b.Variant)
		if err != nil {
			return loadReviewMsg{err: err}
		}

		return loadReviewMsg{batch: b, table: table}
	}
}

// saveResultMsg carries the updated batch, or nil when nothing changed.
type saveResultMsg struct {
	batch *transaction.Batch
	err   error
}

func (m ReviewModel) saveAndNextCmd(key string) tea.Cmd {
	tx := *m.currentTx
	current := m.batch.EffectiveCategory(tx)

	return func() tea.Msg {
		if key == "" || key == current {
			return saveResultMsg{}
		}

		ctx, cancel := ServiceCtx()
		defer cancel()

		b, err := m.txService.Assign(ctx, m.batchID, tx.ID, key)

		return saveResultMsg{batch: b, err: err}
	}
}
