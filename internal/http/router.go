package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/euer/internal/http/batch"
	"github.com/MrJamesThe3rd/euer/internal/http/category"
	"github.com/MrJamesThe3rd/euer/internal/http/export"
	"github.com/MrJamesThe3rd/euer/internal/http/importcsv"
	"github.com/MrJamesThe3rd/euer/internal/http/matching"
)

func New(
	allowedOrigins []string,
	categoriesV1 *category.Handler,
	importV1 *importcsv.Handler,
	batchesV1 *batch.Handler,
	exportV1 *export.Handler,
	matchingV1 *matching.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", categoriesV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/batches", func(r chi.Router) {
			r.Route("/{id}/export", exportV1.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				batchesV1.Routes(r)
			})
		})

		r.Route("/matching", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			matchingV1.Routes(r)
		})
	})

	return router
}
