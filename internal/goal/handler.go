package goal

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/config"
	"github.com/saulo-duarte/pms-lambda/internal/review"
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

// caller resolves the actor; it writes the 401 itself and returns false on failure.
func caller(w http.ResponseWriter, r *http.Request) (actor.Actor, bool) {
	a, err := actor.FromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return actor.Actor{}, false
	}
	return a, true
}

func goalID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// decodeOptional accepts an empty body.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, status int, g *Goal, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, status, toResponse(g))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}
	var dto CreateGoalDTO
	if !decode(w, r, &dto) {
		return
	}

	g, err := h.service.CreateGoal(r.Context(), a, dto.input())
	h.respond(w, http.StatusCreated, g, err)
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}
	var dto AssignGoalDTO
	if !decode(w, r, &dto) {
		return
	}

	g, err := h.service.AssignGoal(r.Context(), a, AssignGoalInput{
		CreateGoalInput: dto.input(),
		AssigneeID:      dto.AssigneeID,
	})
	h.respond(w, http.StatusCreated, g, err)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	f := ListFilter{
		View:   View(q.Get("view")),
		Status: Status(q.Get("status")),
	}
	if v := q.Get("cycle_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			http.Error(w, "invalid cycle_id", http.StatusBadRequest)
			return
		}
		f.CycleID = &id
	}
	if v := q.Get("owner_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			http.Error(w, "invalid owner_id", http.StatusBadRequest)
			return
		}
		f.OwnerID = &id
	}

	goals, err := h.service.ListGoals(r.Context(), a, f)
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]*GoalResponse, 0, len(goals))
	for _, g := range goals {
		responses = append(responses, toResponse(g))
	}
	config.JSON(w, http.StatusOK, responses)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	g, err := h.service.GetGoal(r.Context(), a, id)
	h.respond(w, http.StatusOK, g, err)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}
	var dto UpdateGoalDTO
	if !decode(w, r, &dto) {
		return
	}

	g, err := h.service.UpdateDetails(r.Context(), a, id, DetailsPatch{
		Title:       dto.Title,
		Description: dto.Description,
		Timeline:    dto.Timeline,
	})
	h.respond(w, http.StatusOK, g, err)
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	g, err := h.service.AcceptGoal(r.Context(), a, id)
	h.respond(w, http.StatusOK, g, err)
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}
	var dto ProgressDTO
	if !decode(w, r, &dto) {
		return
	}
	if dto.Progress == nil {
		http.Error(w, "progress required", http.StatusBadRequest)
		return
	}

	g, err := h.service.UpdateProgress(r.Context(), a, id, *dto.Progress)
	h.respond(w, http.StatusOK, g, err)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}
	var dto SubmitGoalDTO
	if !decodeOptional(w, r, &dto) {
		return
	}

	g, err := h.service.SubmitGoal(r.Context(), a, id, dto.Comments)
	h.respond(w, http.StatusOK, g, err)
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	g, err := h.service.ArchiveGoal(r.Context(), a, id)
	h.respond(w, http.StatusOK, g, err)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}
	var dto ApproveGoalDTO
	if !decode(w, r, &dto) {
		return
	}

	approval, err := h.service.ApproveGoal(r.Context(), a, id, dto.Rating, dto.Comments)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, ApprovalResponse{
		Goal:   toResponse(approval.Goal),
		Review: review.ToResponse(approval.Review),
	})
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}
	var dto RejectGoalDTO
	if !decodeOptional(w, r, &dto) {
		return
	}

	g, err := h.service.RejectGoal(r.Context(), a, id, dto.Comments)
	h.respond(w, http.StatusOK, g, err)
}

func (h *Handler) ReissueReview(w http.ResponseWriter, r *http.Request) {
	a, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	rv, err := h.service.ReissueReview(r.Context(), a, id)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, review.ToResponse(rv))
}
