package selfassessment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Submit)
	r.Get("/me", h.Mine)
	r.Get("/{ownerId}/{cycleId}", h.Get)

	return r
}
