package goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/assign", h.Assign)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Post("/accept", h.Accept)
		r.Put("/progress", h.Progress)
		r.Post("/submit", h.Submit)
		r.Post("/archive", h.Archive)
		r.Post("/approve", h.Approve)
		r.Post("/reject", h.Reject)
		r.Post("/review", h.ReissueReview)
	})

	return r
}
