package goal_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/auth"
	"github.com/saulo-duarte/pms-lambda/internal/config"
	"github.com/saulo-duarte/pms-lambda/internal/goal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t       *testing.T
	handler http.Handler
}

func (c client) do(a *actor.Actor, method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if a != nil {
		req = req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{
			UserID: a.ID.String(),
			Role:   string(a.Role),
		}))
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func TestHandler_AssignedGoalFlow(t *testing.T) {
	f := newFixture(t)
	c := client{t: t, handler: goal.Routes(goal.NewHandler(f.svc))}

	rec := c.do(&f.mgr, http.MethodPost, "/assign", goal.AssignGoalDTO{
		CreateGoalDTO: goal.CreateGoalDTO{CycleID: f.cycleID, Title: "Cut build time in half"},
		AssigneeID:    f.emp.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created goal.GoalResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, goal.StatusManagerAssigned, created.Status)
	base := "/" + created.ID.String()

	rec = c.do(&f.peer, http.MethodPost, base+"/accept", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	var errResp config.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "UNAUTHORIZED", errResp.Code)

	rec = c.do(&f.emp, http.MethodPost, base+"/accept", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(&f.emp, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(&f.emp, http.MethodPut, base+"/progress", goal.ProgressDTO{Progress: ptr(100)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(&f.emp, http.MethodPost, base+"/submit", goal.SubmitGoalDTO{Comments: ptr("shipped")})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(&f.mgr, http.MethodPost, base+"/approve", goal.ApproveGoalDTO{Rating: 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(&f.mgr, http.MethodPost, base+"/approve", goal.ApproveGoalDTO{Rating: 5, Comments: "excellent"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var approval goal.ApprovalResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&approval))
	assert.Equal(t, goal.StatusManagerApproved, approval.Goal.Status)
	require.NotNil(t, approval.Review)
	assert.Equal(t, 5, approval.Review.Rating)

	rec = c.do(&f.mgr, http.MethodPost, base+"/review", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHandler_ListAndGet(t *testing.T) {
	f := newFixture(t)
	c := client{t: t, handler: goal.Routes(goal.NewHandler(f.svc))}

	rec := c.do(&f.emp, http.MethodPost, "/", goal.CreateGoalDTO{CycleID: f.cycleID, Title: "Mentor a new hire"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created goal.GoalResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = c.do(&f.emp, http.MethodGet, "/?view=mine&cycle_id="+f.cycleID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []goal.GoalResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	rec = c.do(&f.emp, http.MethodGet, "/?view=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(&f.emp, http.MethodGet, "/?cycle_id=nope", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(&f.peer, http.MethodGet, "/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.do(&f.emp, http.MethodGet, "/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(&f.emp, http.MethodPut, "/"+created.ID.String(), goal.UpdateGoalDTO{Title: ptr("Mentor two new hires")})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(&f.emp, http.MethodPost, "/"+created.ID.String()+"/archive", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHandler_Unauthenticated(t *testing.T) {
	f := newFixture(t)
	c := client{t: t, handler: goal.Routes(goal.NewHandler(f.svc))}

	rec := c.do(nil, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
