package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/elster"
	"github.com/MrJamesThe3rd/euer/internal/filing"
)

const maxContributions = 12

type FieldsModel struct {
	CommonModel
	reports *filing.Service
	batchID uuid.UUID

	table  table.Model
	report *filing.Report

	breakdown *elster.Breakdown
	panelErr  error

	loading bool
	err     error
}

func NewFieldsModel(reports *filing.Service, batchID uuid.UUID) FieldsModel {
	columns := []table.Column{
		{Title: "Zeile", Width: 6},
		{Title: "Bezeichnung", Width: 50},
		{Title: "Wert", Width: 14},
		{Title: "Quelle", Width: 12},
		{Title: "Pflicht", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return FieldsModel{
		reports: reports,
		batchID: batchID,
		table:   t,
		loading: true,
	}
}

func (m FieldsModel) Title() string { return "Anlage EÜR" }

func (m FieldsModel) ShortHelp() string {
	if m.breakdown != nil || m.panelErr != nil {
		return "Esc: close breakdown"
	}

	return "Esc: back | Enter: breakdown | r: recalculate"
}

func (m FieldsModel) Init() tea.Cmd {
	return m.loadReportCmd()
}

func (m FieldsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReportMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.report = msg.report
		m.refreshTable()

		return m, nil

	case breakdownMsg:
		m.breakdown = msg.breakdown
		m.panelErr = msg.err

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 14)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.breakdown != nil || m.panelErr != nil {
				m.breakdown = nil
				m.panelErr = nil

				return m, nil
			}

			return m, Back
		case "r":
			m.loading = true
			m.breakdown = nil
			m.panelErr = nil

			return m, m.loadReportCmd()
		case "enter":
			idx := m.table.Cursor()
			if m.report == nil || idx < 0 || idx >= len(m.report.Fields) {
				return m, nil
			}

			return m, m.breakdownCmd(m.report.Fields[idx].Number)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *FieldsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.report.Fields))
	for _, f := range m.report.Fields {
		value := f.Value.Text
		if !f.Value.IsText {
			value = FormatAmount(f.Value.Amount)
		}

		req := ""
		if f.Required {
			req = "ja"
		}

		rows = append(rows, table.Row{f.Number, f.Label, value, string(f.Source), req})
	}

	m.table.SetRows(rows)
}

func (m FieldsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Calculating...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	calc := m.report.Calculation

	header := fmt.Sprintf("%s | Einnahmen %s € | Ausgaben %s € | Gewinn %s € | USt-Saldo %s €",
		strings.ToUpper(string(m.report.Chart)),
		FormatAmount(calc.TotalIncome),
		FormatAmount(calc.TotalExpenses),
		activeStyle(FormatAmount(calc.Profit)),
		FormatAmount(calc.VATBalance),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		validationLine(m.report),
		"",
		tableView,
	)

	if panel := m.breakdownPanel(); panel != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func validationLine(r *filing.Report) string {
	var lines []string

	if r.Validation.Valid {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("Complete, ready to export."))
	} else {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(
			"Missing: "+strings.Join(r.Validation.Missing, ", ")))
	}

	for _, w := range r.Warnings {
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render("! "+w))
	}

	return strings.Join(lines, "\n")
}

func (m FieldsModel) breakdownPanel() string {
	var body string

	switch {
	case m.panelErr != nil && errors.Is(m.panelErr, elster.ErrUnknownField):
		body = "Personal data has no breakdown."
	case m.panelErr != nil && errors.Is(m.panelErr, elster.ErrNotReported):
		body = "Not reported for small businesses."
	case m.panelErr != nil:
		body = fmt.Sprintf("Error: %v", m.panelErr)
	case m.breakdown != nil:
		body = renderBreakdown(m.breakdown)
	default:
		return ""
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(60).
		Render(body)
}

func renderBreakdown(bd *elster.Breakdown) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Zeile %s: %s\n%s €\n\n", bd.Number, bd.Label, FormatAmount(bd.Value))

	for _, st := range bd.Subtotals {
		fmt.Fprintf(&sb, "%-36s %14s\n", st.Name, FormatAmount(st.Amount))
	}

	if len(bd.Contributions) > 0 {
		sb.WriteString("\n")
	}

	for i, c := range bd.Contributions {
		if i == maxContributions {
			fmt.Fprintf(&sb, "... %d more\n", len(bd.Contributions)-maxContributions)
			break
		}

		fmt.Fprintf(&sb, "%s %-24.24s %12s\n", FormatDate(c.Date), c.Counterparty, FormatAmount(c.Amount))
	}

	return sb.String()
}

// Messages

type loadReportMsg struct {
	report *filing.Report
	err    error
}

func (m FieldsModel) loadReportCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ServiceCtx()
		defer cancel()

		r, err := m.reports.Build(ctx, m.batchID)

		return loadReportMsg{report: r, err: err}
	}
}

type breakdownMsg struct {
	breakdown *elster.Breakdown
	err       error
}

func (m FieldsModel) breakdownCmd(number string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ServiceCtx()
		defer cancel()

		bd, err := m.reports.Breakdown(ctx, m.batchID, number)

		return breakdownMsg{breakdown: bd, err: err}
	}
}
