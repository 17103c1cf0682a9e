package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	err := apperror.Conflict("goal %s changed", "abc")

	assert.True(t, errors.Is(err, apperror.ErrConflict))
	assert.False(t, errors.Is(err, apperror.ErrNotFound))
	assert.Equal(t, "goal abc changed", err.Error())
}

func TestIsSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("approve: %w", apperror.InvalidTransition("goal is hr_approved"))

	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
	assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("txn conflict")
	err := apperror.Wrap(apperror.KindConflict, cause, "update goal")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, "update goal: txn conflict", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[error]int{
		apperror.Unauthorized("x"):      http.StatusForbidden,
		apperror.InvalidTransition("x"): http.StatusConflict,
		apperror.Conflict("x"):          http.StatusConflict,
		apperror.NotFound("x"):          http.StatusNotFound,
		apperror.Validation("x"):        http.StatusBadRequest,
		errors.New("boom"):              http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, apperror.HTTPStatus(err), err.Error())
	}
}
