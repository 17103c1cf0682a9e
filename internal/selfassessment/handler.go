package selfassessment

import (
	"encoding/json"
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

func caller(w http.ResponseWriter, r *http.Request) (actor.Actor, bool) {
	a, err := actor.FromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return actor.Actor{}, false
	}
	return a, true
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}

	var dto SubmitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sa, err := h.service.Submit(r.Context(), a, SubmitInput{
		CycleID:  dto.CycleID,
		Comments: dto.Comments,
		Rating:   dto.Rating,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, toResponse(sa))
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}

	list, err := h.service.ListMine(r.Context(), a)
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]*SelfAssessmentResponse, 0, len(list))
	for _, sa := range list {
		responses = append(responses, toResponse(sa))
	}
	config.JSON(w, http.StatusOK, responses)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}

	ownerID, err := uuid.Parse(chi.URLParam(r, "ownerId"))
	if err != nil {
		http.Error(w, "invalid owner id", http.StatusBadRequest)
		return
	}
	cycleID, err := uuid.Parse(chi.URLParam(r, "cycleId"))
	if err != nil {
		http.Error(w, "invalid cycle id", http.StatusBadRequest)
		return
	}

	sa, err := h.service.Get(r.Context(), a, ownerID, cycleID)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, toResponse(sa))
}
