package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeError(w http.ResponseWriter, err error) {
	config.Error(w, apperror.HTTPStatus(err), string(apperror.KindOf(err)), err.Error())
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	a, err := actor.FromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	reviews, err := h.service.MyReviews(r.Context(), a)
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]*ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		responses = append(responses, ToResponse(rv))
	}
	config.JSON(w, http.StatusOK, responses)
}

func (h *Handler) ForGoal(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	a, err := actor.FromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	goalID, err := uuid.Parse(chi.URLParam(r, "goalId"))
	if err != nil {
		http.Error(w, "invalid goal id", http.StatusBadRequest)
		return
	}

	rv, err := h.service.GetForGoal(r.Context(), a, goalID)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, ToResponse(rv))
}
