package view

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

type txState int

const (
	txStateLoading txState = iota
	txStatePeriod
	txStateList
	txStateEditing
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx       transaction.Transaction
	category string
	override bool
	known    bool
}

func (i txItem) Title() string {
	cat := i.category
	if i.override {
		cat += " *"
	}

	style := lipgloss.NewStyle().Faint(true)
	if !i.known {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	}

	return fmt.Sprintf("%s  %12s  %s  %s",
		FormatDate(i.tx.Date), FormatAmount(i.tx.Amount), style.Render("["+cat+"]"), i.tx.Counterparty)
}

func (i txItem) Description() string {
	return i.tx.Purpose
}

func (i txItem) FilterValue() string {
	return i.tx.Counterparty + " " + i.tx.Purpose + " " + i.category
}

type TransactionsModel struct {
	CommonModel
	txService *transaction.Service
	charts    *category.Registry
	batchID   uuid.UUID

	state        txState
	periodPicker PeriodPicker
	period       PeriodSelectedMsg
	list         list.Model
	form         *huh.Form
	batch        *transaction.Batch
	table        *category.Table
	selectedTx   *transaction.Transaction

	loading bool
	status  string
}

func NewTransactionsModel(txSvc *transaction.Service, charts *category.Registry, batchID uuid.UUID) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 80, 20)
	l.Title = "Transactions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return TransactionsModel{
		txService: txSvc,
		charts:    charts,
		batchID:   batchID,
		list:      l,
		period:    PeriodSelectedMsg{All: true},
		loading:   true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStatePeriod:
		return "Esc: back | Enter: select"
	case txStateList:
		return "Esc: back | Enter: change category | x: reset to suggestion | p: period | /: filter"
	case txStateEditing:
		return "Esc: cancel | Enter: save"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		m.period = msg
		m.state = txStateList
		m.refreshListItems()

		return m, nil

	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = txStateList

			return m, nil
		}

		m.batch = msg.batch
		m.table = msg.table

		if m.state == txStateLoading {
			m.periodPicker = NewPeriodPicker(batchYear(msg.batch))
			m.state = txStatePeriod
		}

		m.refreshListItems()

		return m, nil

	case saveTxResultMsg:
		m.state = txStateList
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = "Saved."
		m.batch = msg.batch
		m.refreshListItems()

		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case txStatePeriod:
		return m.updatePeriod(msg)
	case txStateList:
		return m.updateList(msg)
	case txStateEditing:
		return m.updateEditing(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	return m, nil
}

func (m TransactionsModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.periodPicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.periodPicker, cmd = m.periodPicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break
			}

			return m, Back
		case "enter":
			return m.startEditing()
		case "p":
			if m.batch != nil {
				m.periodPicker = NewPeriodPicker(batchYear(m.batch))
				m.state = txStatePeriod
			}

			return m, nil
		case "x":
			selected, ok := m.list.SelectedItem().(txItem)
			if !ok || !selected.override {
				return m, nil
			}

			return m, m.clearCmd(selected.tx.ID)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) startEditing() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(txItem)
	if !ok || m.table == nil {
		return m, nil
	}

	m.selectedTx = &selected.tx

	choice := selected.category
	m.form = categoryForm(m.table, &choice)
	m.state = txStateEditing

	return m, m.form.Init()
}

func (m TransactionsModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateList
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.assignCmd(m.selectedTx.ID, m.form.GetString("category"))
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")

	case txStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(m.periodPicker.View())

	case txStateList:
		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case txStateEditing:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(
			m.txInfoView() + "\n" + m.form.View(),
		)
	}

	return ""
}

func (m TransactionsModel) txInfoView() string {
	if m.selectedTx == nil {
		return ""
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"Date: %s  |  Amount: %s €  |  Suggested: %s\n%s\n%s",
			FormatDate(m.selectedTx.Date),
			FormatAmount(m.selectedTx.Amount),
			m.selectedTx.Category,
			m.selectedTx.Counterparty,
			m.selectedTx.Purpose,
		))
}

func (m *TransactionsModel) refreshListItems() {
	if m.batch == nil {
		return
	}

	var items []list.Item

	for _, tx := range m.batch.Transactions {
		if !m.period.Contains(tx.Date) {
			continue
		}

		key := m.batch.EffectiveCategory(tx)
		_, override := m.batch.Overrides[tx.ID]

		known := false
		if m.table != nil {
			_, known = m.table.Lookup(key)
		}

		items = append(items, txItem{tx: tx, category: key, override: override, known: known})
	}

	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("Transactions (%d)", len(items))
}

// batchYear is the fiscal year of a batch: the profile's when set,
// otherwise the year of its first transaction.
func batchYear(b *transaction.Batch) int {
	if b.Profile != nil && !b.Profile.FiscalYearStart.IsZero() {
		return b.Profile.FiscalYearStart.Year()
	}

	for _, tx := range b.Transactions {
		if !tx.Date.IsZero() {
			return tx.Date.Year()
		}
	}

	return time.Now().Year()
}

// Messages

type loadTxsMsg struct {
	batch *transaction.Batch
	table *category.Table
	err   error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ServiceCtx()
		defer cancel()

		b, err := m.txService.Get(ctx, m.batchID)
		if err != nil {
			return loadTxsMsg{err: err}
		}

		table, err := m.charts.Table(ctx, b.Variant)

		return loadTxsMsg{batch: b, table: table, err: err}
	}
}

type saveTxResultMsg struct {
	batch *transaction.Batch
	err   error
}

func (m TransactionsModel) assignCmd(txID int, key string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ServiceCtx()
		defer cancel()

		b, err := m.txService.Assign(ctx, m.batchID, txID, key)

		return saveTxResultMsg{batch: b, err: err}
	}
}

func (m TransactionsModel) clearCmd(txID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ServiceCtx()
		defer cancel()

		b, err := m.txService.ClearCategory(ctx, m.batchID, txID)

		return saveTxResultMsg{batch: b, err: err}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	if i.Description() == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
