package category

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/euer/internal/category"
)

type Handler struct {
	registry *category.Registry
}

func NewHandler(registry *category.Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.variants)
	r.Get("/{variant}", h.list)
}

type variantsResponse struct {
	Variants []category.Variant `json:"variants"`
	Default  category.Variant   `json:"default"`
}

type tableResponse struct {
	Variant    category.Variant `json:"variant"`
	Name       string           `json:"name"`
	Categories []category.Info  `json:"categories"`
}

func (h *Handler) variants(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(variantsResponse{
		Variants: category.Variants(),
		Default:  h.registry.Fallback(),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// list returns the categories of a variant, optionally filtered by ?type=.
// Unknown variants are answered with the default chart, as for batches.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	variant := category.NormalizeVariant(chi.URLParam(r, "variant"))

	table, err := h.registry.Table(r.Context(), variant)
	if err != nil {
		if errors.Is(err, category.ErrUnknownVariant) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	infos := table.All()
	if t := r.URL.Query().Get("type"); t != "" {
		infos = table.OfType(category.Type(t))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(tableResponse{
		Variant:    table.Variant,
		Name:       table.Name,
		Categories: infos,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
