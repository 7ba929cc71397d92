package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/profile"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

type settingsState int

const (
	settingsStateLoading settingsState = iota
	settingsStateEditing
	settingsStateResult
)

// settingsValues are the form bindings. They live on the heap so the form
// keeps pointing at them while the model is copied around.
type settingsValues struct {
	variant  string
	flatRate bool

	lastName, firstName string
	street, houseNumber string
	postalCode, city    string
	taxNumber, taxID    string
	spouseTaxID         string
	yearStart, yearEnd  string
	profession          string

	smallBusiness, commercial, propertySold bool
}

type SettingsModel struct {
	CommonModel
	txService *transaction.Service
	batchID   uuid.UUID

	state  settingsState
	form   *huh.Form
	values *settingsValues
	status string
	err    error
}

func NewSettingsModel(txSvc *transaction.Service, batchID uuid.UUID) SettingsModel {
	return SettingsModel{
		txService: txSvc,
		batchID:   batchID,
		state:     settingsStateLoading,
	}
}

func (m SettingsModel) Title() string { return "Batch Settings" }

func (m SettingsModel) ShortHelp() string {
	if m.state == settingsStateEditing {
		return "Esc: cancel | Enter/Tab: next field"
	}

	return "Esc: back"
}

func (m SettingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case loadSettingsMsg:
		if msg.err != nil {
			m.state = settingsStateResult
			m.err = msg.err

			return m, nil
		}

		m.values = valuesFrom(msg.batch)
		m.form = m.buildForm()
		m.state = settingsStateEditing

		return m, m.form.Init()

	case settingsSavedMsg:
		m.state = settingsStateResult
		m.err = msg.err
		m.status = "Settings saved."

		return m, nil
	}

	if m.state != settingsStateEditing {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func valuesFrom(b *transaction.Batch) *settingsValues {
	p := b.Profile
	if p == nil {
		p = new(profile.CalendarYear(batchYear(b)))
	}

	return &settingsValues{
		variant:       string(b.Variant),
		flatRate:      b.FlatRate,
		lastName:      p.LastName,
		firstName:     p.FirstName,
		street:        p.Street,
		houseNumber:   p.HouseNumber,
		postalCode:    p.PostalCode,
		city:          p.City,
		taxNumber:     p.TaxNumber,
		taxID:         p.TaxID,
		spouseTaxID:   p.SpouseTaxID,
		yearStart:     FormatDate(p.FiscalYearStart),
		yearEnd:       FormatDate(p.FiscalYearEnd),
		profession:    p.Profession,
		smallBusiness: p.SmallBusiness,
		commercial:    p.Commercial,
		propertySold:  p.PropertySold,
	}
}

func validateDate(s string) error {
	if _, err := time.Parse("02.01.2006", s); err != nil {
		return fmt.Errorf("use TT.MM.JJJJ")
	}

	return nil
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}

		return nil
	}
}

func (m SettingsModel) buildForm() *huh.Form {
	v := m.values

	variants := make([]huh.Option[string], 0, len(category.Variants()))
	for _, vr := range category.Variants() {
		variants = append(variants, huh.NewOption(strings.ToUpper(string(vr)), string(vr)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Chart of accounts").Options(variants...).Value(&v.variant),
			huh.NewConfirm().Title("Small business (§ 19 UStG, no VAT)?").Affirmative("Yes").Negative("No").Value(&v.flatRate),
		),
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.lastName).Validate(required("name")),
			huh.NewInput().Title("Vorname").Value(&v.firstName).Validate(required("first name")),
			huh.NewInput().Title("Straße").Value(&v.street),
			huh.NewInput().Title("Hausnummer").Value(&v.houseNumber),
			huh.NewInput().Title("PLZ").Value(&v.postalCode),
			huh.NewInput().Title("Ort").Value(&v.city),
		),
		huh.NewGroup(
			huh.NewInput().Title("Steuernummer").Value(&v.taxNumber).Validate(required("tax number")),
			huh.NewInput().Title("Steuer-ID").Value(&v.taxID),
			huh.NewInput().Title("Steuer-ID Ehegatte (optional)").Value(&v.spouseTaxID),
			huh.NewInput().Title("Wirtschaftsjahr von").Value(&v.yearStart).Validate(validateDate),
			huh.NewInput().Title("Wirtschaftsjahr bis").Value(&v.yearEnd).Validate(validateDate),
			huh.NewInput().Title("Art des Betriebs").Value(&v.profession).Validate(required("profession")),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Kleinunternehmer?").Value(&v.smallBusiness),
			huh.NewConfirm().Title("Gewerbebetrieb?").Value(&v.commercial),
			huh.NewConfirm().Title("Grundstück veräußert?").Value(&v.propertySold),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (v *settingsValues) profile() (*profile.Profile, error) {
	start, err := time.Parse("02.01.2006", v.yearStart)
	if err != nil {
		return nil, fmt.Errorf("fiscal year start: %w", err)
	}

	end, err := time.Parse("02.01.2006", v.yearEnd)
	if err != nil {
		return nil, fmt.Errorf("fiscal year end: %w", err)
	}

	if end.Before(start) {
		return nil, fmt.Errorf("fiscal year ends before it starts")
	}

	return &profile.Profile{
		LastName:        strings.TrimSpace(v.lastName),
		FirstName:       strings.TrimSpace(v.firstName),
		Street:          strings.TrimSpace(v.street),
		HouseNumber:     strings.TrimSpace(v.houseNumber),
		PostalCode:      strings.TrimSpace(v.postalCode),
		City:            strings.TrimSpace(v.city),
		TaxNumber:       strings.TrimSpace(v.taxNumber),
		TaxID:           strings.TrimSpace(v.taxID),
		SpouseTaxID:     strings.TrimSpace(v.spouseTaxID),
		FiscalYearStart: start,
		FiscalYearEnd:   end,
		Profession:      strings.TrimSpace(v.profession),
		SmallBusiness:   v.smallBusiness,
		Commercial:      v.commercial,
		PropertySold:    v.propertySold,
	}, nil
}

func (m SettingsModel) View() string {
	switch m.state {
	case settingsStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading batch...")
	case settingsStateEditing:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)) +
				"\n\n(Esc to go back)",
		)
	}

	return lipgloss.NewStyle().Padding(2).Render(
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status) + "\n\n(Esc to go back)",
	)
}

// Messages

type loadSettingsMsg struct {
	batch *transaction.Batch
	err   error
}

func (m SettingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ServiceCtx()
		defer cancel()

		b, err := m.txService.Get(ctx, m.batchID)

		return loadSettingsMsg{batch: b, err: err}
	}
}

type settingsSavedMsg struct {
	err error
}

func (m SettingsModel) saveCmd() tea.Cmd {
	v := m.values

	return func() tea.Msg {
		p, err := v.profile()
		if err != nil {
			return settingsSavedMsg{err: err}
		}

		ctx, cancel := ServiceCtx()
		defer cancel()

		_, err = m.txService.UpdateSettings(ctx, m.batchID, transaction.SettingsParams{
			Variant:  new(category.NormalizeVariant(v.variant)),
			FlatRate: &v.flatRate,
			Profile:  p,
		})

		return settingsSavedMsg{err: err}
	}
}
