package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/export"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes expects to be mounted below a route carrying the {id} batch param.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

type incompleteResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing"`
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer

	err = h.svc.Export(r.Context(), id, format, &buf)

	var incomplete *export.IncompleteError

	switch {
	case err == nil:
	case errors.As(err, &incomplete):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)

		if err := json.NewEncoder(w).Encode(incompleteResponse{
			Error:   "export blocked by missing mandatory fields",
			Missing: incomplete.Missing,
		}); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	default:
		slog.Error("export failed", "batch", id, "format", format, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(id, format)))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
