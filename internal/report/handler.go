package report

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

func (h *Handler) CycleSummary(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	a, err := actor.FromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	cycleID, err := uuid.Parse(chi.URLParam(r, "cycleId"))
	if err != nil {
		http.Error(w, "invalid cycle id", http.StatusBadRequest)
		return
	}

	summary, err := h.service.CycleSummary(r.Context(), a, cycleID)
	if err != nil {
		config.Error(w, apperror.HTTPStatus(err), string(apperror.KindOf(err)), err.Error())
		return
	}

	config.JSON(w, http.StatusOK, toResponse(summary))
}
