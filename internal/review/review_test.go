package review_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/review"
	"github.com/saulo-duarte/pms-lambda/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) review.Repository {
	t.Helper()
	db, err := storage.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return review.NewBadgerRepository(db)
}

func newSubject() review.Subject {
	return review.Subject{
		GoalID:     uuid.New(),
		EmployeeID: uuid.New(),
		ReviewerID: uuid.New(),
		CycleID:    uuid.New(),
	}
}

func TestValidateRating(t *testing.T) {
	for r := review.MinRating; r <= review.MaxRating; r++ {
		assert.NoError(t, review.ValidateRating(r))
	}
	assert.ErrorIs(t, review.ValidateRating(0), apperror.ErrValidation)
	assert.ErrorIs(t, review.ValidateRating(6), apperror.ErrValidation)
}

func TestIDForGoalIsStable(t *testing.T) {
	goalID := uuid.New()
	assert.Equal(t, review.IDForGoal(goalID), review.IDForGoal(goalID))
	assert.NotEqual(t, review.IDForGoal(goalID), review.IDForGoal(uuid.New()))
}

func TestEmit(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesFinalReview", func(t *testing.T) {
		repo := newRepo(t)
		e := review.NewEmitter(repo)
		subj := newSubject()

		rv, err := e.Emit(ctx, subj, 4, "solid quarter")
		require.NoError(t, err)
		assert.Equal(t, review.StatusFinal, rv.Status)
		assert.Equal(t, 4, rv.Rating)
		assert.Equal(t, subj.GoalID, rv.GoalID)
		assert.Equal(t, review.IDForGoal(subj.GoalID), rv.ID)

		stored, err := repo.FindByGoalID(ctx, subj.GoalID)
		require.NoError(t, err)
		assert.Equal(t, "solid quarter", stored.Comments)
	})

	t.Run("RejectsOutOfRangeRating", func(t *testing.T) {
		repo := newRepo(t)
		e := review.NewEmitter(repo)
		subj := newSubject()

		_, err := e.Emit(ctx, subj, 9, "")
		assert.ErrorIs(t, err, apperror.ErrValidation)

		_, err = repo.FindByGoalID(ctx, subj.GoalID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("RetryReturnsExisting", func(t *testing.T) {
		repo := newRepo(t)
		e := review.NewEmitter(repo)
		subj := newSubject()

		first, err := e.Emit(ctx, subj, 3, "first")
		require.NoError(t, err)
		second, err := e.Emit(ctx, subj, 5, "second")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 3, second.Rating)

		all, err := repo.ListByEmployee(ctx, subj.EmployeeID)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestBadgerRepository(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	e := review.NewEmitter(repo)

	employee := uuid.New()
	cycleA, cycleB := uuid.New(), uuid.New()

	for i, c := range []uuid.UUID{cycleA, cycleA, cycleB} {
		subj := newSubject()
		subj.EmployeeID = employee
		subj.CycleID = c
		_, err := e.Emit(ctx, subj, i+1, "")
		require.NoError(t, err)
	}

	byEmployee, err := repo.ListByEmployee(ctx, employee)
	require.NoError(t, err)
	assert.Len(t, byEmployee, 3)

	byCycle, err := repo.ListByCycle(ctx, cycleA)
	require.NoError(t, err)
	assert.Len(t, byCycle, 2)

	t.Run("DuplicateCreateConflicts", func(t *testing.T) {
		dup := *byCycle[0]
		err := repo.Create(ctx, &dup)
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}

func TestServiceGetForGoal(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	subj := newSubject()
	_, err := review.NewEmitter(repo).Emit(ctx, subj, 2, "needs focus")
	require.NoError(t, err)

	svc := review.NewService(repo)

	employee := actor.Actor{ID: subj.EmployeeID, Role: actor.RoleEmployee}
	reviewer := actor.Actor{ID: subj.ReviewerID, Role: actor.RoleManager}
	hr := actor.Actor{ID: uuid.New(), Role: actor.RoleHR}
	stranger := actor.Actor{ID: uuid.New(), Role: actor.RoleManager}

	for _, a := range []actor.Actor{employee, reviewer, hr} {
		rv, err := svc.GetForGoal(ctx, a, subj.GoalID)
		require.NoError(t, err, a.String())
		assert.Equal(t, 2, rv.Rating)
	}

	_, err = svc.GetForGoal(ctx, stranger, subj.GoalID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	mine, err := svc.MyReviews(ctx, employee)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
