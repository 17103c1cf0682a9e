package cycle_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/cycle"
	"github.com/stretchr/testify/assert"
)

func TestOpaque(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, cycle.Opaque{}.Exists(ctx, uuid.New()))
	assert.ErrorIs(t, cycle.Opaque{}.Exists(ctx, uuid.Nil), apperror.ErrValidation)
}

func TestSet(t *testing.T) {
	ctx := context.Background()
	known := uuid.New()
	s := cycle.NewSet(known)

	assert.NoError(t, s.Exists(ctx, known))
	assert.ErrorIs(t, s.Exists(ctx, uuid.New()), apperror.ErrNotFound)
}
