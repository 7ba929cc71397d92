package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/euer/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/classify"
	"github.com/MrJamesThe3rd/euer/internal/config"
	"github.com/MrJamesThe3rd/euer/internal/elster"
	"github.com/MrJamesThe3rd/euer/internal/export"
	"github.com/MrJamesThe3rd/euer/internal/filing"
	"github.com/MrJamesThe3rd/euer/internal/importer"
	"github.com/MrJamesThe3rd/euer/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/euer/internal/matching/store"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
	txStore "github.com/MrJamesThe3rd/euer/internal/transaction/store"
)

type model struct {
	appName        string
	txService      *transaction.Service
	charts         *category.Registry
	importService  *importer.Service
	filingService  *filing.Service
	exportService  *export.Service
	importDefaults view.ImportDefaults

	batchID     uuid.UUID
	currentView View
	screen      view.View
	notice      string
}

type View int

const (
	ViewMenu     View = 0
	ViewImport   View = 1
	ViewBatches  View = 2
	ViewReview   View = 3
	ViewTxs      View = 4
	ViewSettings View = 5
	ViewFields   View = 6
	ViewExport   View = 7
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	registry := cfg.Registry()
	if err := registry.Preload(context.Background(), cfg.DefaultVariant()); err != nil {
		slog.Error("failed to load chart of accounts", "error", err)
		os.Exit(1)
	}

	defs, err := elster.LoadDefinitions()
	if err != nil {
		slog.Error("failed to load field definitions", "error", err)
		os.Exit(1)
	}

	matchSvc := matching.NewService(matchingStore.New())
	txSvc := transaction.NewService(txStore.New(), classify.New(), registry, matchSvc)
	filingSvc := filing.NewService(txSvc, registry, defs)

	return model{
		appName:       cfg.App.Name,
		txService:     txSvc,
		charts:        registry,
		importService: importer.NewService(),
		filingService: filingSvc,
		exportService: export.NewService(filingSvc),
		importDefaults: view.ImportDefaults{
			Variant:  cfg.DefaultVariant(),
			FlatRate: cfg.EUER.FlatRate,
		},
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// open builds the screen for v. Screens working on a batch need one to be
// selected first.
func (m model) open(v View) (model, tea.Cmd) {
	if v > ViewBatches && m.batchID == uuid.Nil {
		m.notice = "Import or select a batch first."
		return m, nil
	}

	switch v {
	case ViewImport:
		m.screen = view.NewImportModel(m.txService, m.importService, m.importDefaults)
	case ViewBatches:
		m.screen = view.NewBatchesModel(m.txService, m.batchID)
	case ViewReview:
		m.screen = view.NewReviewModel(m.txService, m.charts, m.batchID)
	case ViewTxs:
		m.screen = view.NewTransactionsModel(m.txService, m.charts, m.batchID)
	case ViewSettings:
		m.screen = view.NewSettingsModel(m.txService, m.batchID)
	case ViewFields:
		m.screen = view.NewFieldsModel(m.filingService, m.batchID)
	case ViewExport:
		m.screen = view.NewExportModel(m.exportService, m.batchID)
	default:
		return m, nil
	}

	m.currentView = v
	m.notice = ""

	return m, m.screen.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1", "2", "3", "4", "5", "6", "7":
				return m.open(View(msg.String()[0] - '0'))
			}

			return m, nil
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.screen = nil

		return m, nil
	case view.BatchSelectedMsg:
		m.batchID = msg.ID
	}

	if m.screen == nil {
		return m, nil
	}

	newModel, cmd := m.screen.Update(msg)
	m.screen = newModel.(view.View)

	return m, cmd
}

func (m model) View() string {
	if m.currentView != ViewMenu && m.screen != nil {
		help := lipgloss.NewStyle().Faint(true).Render(m.screen.Title() + "  ·  " + m.screen.ShortHelp())
		return m.screen.View() + "\n" + help
	}

	active := "none"
	if m.batchID != uuid.Nil {
		active = m.batchID.String()[:8]
	}

	menu := m.appName + "\n\n" +
		"Active batch: " + active + "\n\n" +
		"1. Import Bank Export\n" +
		"2. Select Batch\n" +
		"3. Review Categories\n" +
		"4. Transactions\n" +
		"5. Settings & Profile\n" +
		"6. Anlage EÜR\n" +
		"7. Export\n\n" +
		"q. Quit"

	if m.notice != "" {
		menu += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.notice)
	}

	return lipgloss.NewStyle().Padding(2).Render(menu)
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
