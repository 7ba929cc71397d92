package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

// batchItem wraps a batch to implement list.Item.
type batchItem struct {
	b       *transaction.Batch
	current bool
}

func (i batchItem) Title() string {
	mode := "standard"
	if i.b.FlatRate {
		mode = "small business"
	}

	marker := ""
	if i.current {
		marker = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(" (active)")
	}

	return fmt.Sprintf("%s  %s  %d transactions  %s  %s%s",
		i.b.CreatedAt.Format("02.01.2006 15:04"), i.b.Bank, len(i.b.Transactions), i.b.Variant, mode, marker)
}

func (i batchItem) Description() string {
	if i.b.Profile == nil {
		return "no profile"
	}

	return fmt.Sprintf("%s %s, %s - %s", i.b.Profile.FirstName, i.b.Profile.LastName,
		FormatDate(i.b.Profile.FiscalYearStart), FormatDate(i.b.Profile.FiscalYearEnd))
}

func (i batchItem) FilterValue() string { return i.b.Bank }

type BatchesModel struct {
	CommonModel
	txService *transaction.Service

	list    list.Model
	current uuid.UUID
	loading bool
	status  string
}

func NewBatchesModel(txSvc *transaction.Service, current uuid.UUID) BatchesModel {
	l := list.New([]list.Item{}, batchItemDelegate{}, 80, 20)
	l.Title = "Batches"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return BatchesModel{
		txService: txSvc,
		list:      l,
		current:   current,
		loading:   true,
	}
}

func (m BatchesModel) Title() string { return "Batches" }

func (m BatchesModel) ShortHelp() string {
	return "Esc: back | Enter: work on batch | d: delete"
}

func (m BatchesModel) Init() tea.Cmd {
	return m.loadBatchesCmd()
}

func (m BatchesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBatchesMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.setItems(msg.batches)

		if len(msg.batches) == 0 {
			m.status = "No batches yet. Import a bank export first."
		}

		return m, nil

	case deleteBatchMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = "Deleted."

		if msg.id != m.current {
			return m, m.loadBatchesCmd()
		}

		m.current = uuid.Nil

		return m, tea.Batch(selectBatch(uuid.Nil), m.loadBatchesCmd())

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		selected, ok := m.list.SelectedItem().(batchItem)

		switch msg.String() {
		case "esc":
			return m, Back
		case "enter":
			if !ok {
				return m, nil
			}

			m.current = selected.b.ID
			m.status = "Active batch changed."

			return m, tea.Batch(selectBatch(selected.b.ID), m.loadBatchesCmd())
		case "d":
			if !ok {
				return m, nil
			}

			return m, m.deleteCmd(selected.b.ID)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m *BatchesModel) setItems(batches []*transaction.Batch) {
	items := make([]list.Item, len(batches))
	for i, b := range batches {
		items[i] = batchItem{b: b, current: b.ID == m.current}
	}

	m.list.SetItems(items)
}

func (m BatchesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading batches...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

// Messages

type loadBatchesMsg struct {
	batches []*transaction.Batch
	err     error
}

func (m BatchesModel) loadBatchesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ServiceCtx()
		defer cancel()

		batches, err := m.txService.List(ctx)

		return loadBatchesMsg{batches: batches, err: err}
	}
}

type deleteBatchMsg struct {
	id  uuid.UUID
	err error
}

func (m BatchesModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ServiceCtx()
		defer cancel()

		return deleteBatchMsg{id: id, err: m.txService.Delete(ctx, id)}
	}
}

// batchItemDelegate renders items in the list.
type batchItemDelegate struct{}

func (d batchItemDelegate) Height() int                             { return 2 }
func (d batchItemDelegate) Spacing() int                            { return 0 }
func (d batchItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d batchItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(batchItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
