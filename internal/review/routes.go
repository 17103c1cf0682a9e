package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/me", h.Mine)
	r.Get("/goal/{goalId}", h.ForGoal)

	return r
}
