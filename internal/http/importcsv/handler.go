package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/importer"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

// Defaults apply to form fields the client leaves out.
type Defaults struct {
	Variant  category.Variant
	FlatRate bool
}

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
	defaults  Defaults
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service, defaults Defaults) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
		defaults:  defaults,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	BatchID      uuid.UUID        `json:"batch_id"`
	Bank         string           `json:"bank"`
	Profile      string           `json:"profile"`
	Variant      category.Variant `json:"variant"`
	FlatRate     bool             `json:"flat_rate"`
	Imported     int              `json:"imported"`
	Unclassified int              `json:"unclassified"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	variant := h.defaults.Variant
	if v := r.FormValue("variant"); v != "" {
		variant = category.NormalizeVariant(v)
	}

	flatRate := h.defaults.FlatRate
	if v := r.FormValue("flat_rate"); v != "" {
		if flatRate, err = strconv.ParseBool(v); err != nil {
			http.Error(w, "invalid flat_rate", http.StatusBadRequest)
			return
		}
	}

	res, err := h.importSvc.Import(importer.Bank(r.FormValue("bank")), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.txSvc.Import(r.Context(), transaction.ImportParams{
		Bank:         res.Bank,
		Variant:      variant,
		FlatRate:     flatRate,
		Transactions: res.Transactions,
	})
	if err != nil {
		if errors.Is(err, category.ErrUnknownVariant) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	unresolved, err := h.txSvc.Unresolved(r.Context(), b)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{
		BatchID:      b.ID,
		Bank:         b.Bank,
		Profile:      res.Profile,
		Variant:      b.Variant,
		FlatRate:     b.FlatRate,
		Imported:     len(b.Transactions),
		Unclassified: len(unresolved),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
