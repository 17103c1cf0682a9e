package goal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/goal"
	"github.com/saulo-duarte/pms-lambda/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBadgerRepo(t *testing.T) goal.Repository {
	t.Helper()
	db, err := storage.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return goal.NewBadgerRepository(db)
}

func draftGoal(owner uuid.UUID, created time.Time) *goal.Goal {
	return &goal.Goal{
		ID:            uuid.New(),
		CycleID:       uuid.New(),
		OwnerID:       owner,
		CreatedByID:   owner,
		CreatedByRole: actor.RoleEmployee,
		Origin:        goal.OriginSelf,
		Title:         "t",
		Timeline:      goal.TimelineQuarterly,
		Status:        goal.StatusDraft,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

func TestBadgerRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := newBadgerRepo(t)
	g := draftGoal(uuid.New(), time.Now())

	require.NoError(t, repo.Create(ctx, g))
	assert.ErrorIs(t, repo.Create(ctx, g), apperror.ErrConflict)

	got, err := repo.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Title, got.Title)
	assert.Equal(t, g.Status, got.Status)

	_, err = repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestBadgerRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := newBadgerRepo(t)
	g := draftGoal(uuid.New(), time.Now())
	require.NoError(t, repo.Create(ctx, g))

	t.Run("UnknownID", func(t *testing.T) {
		_, err := repo.Update(ctx, uuid.New(), goal.StatusDraft, func(*goal.Goal) error { return nil })
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("StatusMismatch", func(t *testing.T) {
		called := false
		_, err := repo.Update(ctx, g.ID, goal.StatusSubmitted, func(*goal.Goal) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, apperror.ErrConflict)
		assert.False(t, called)
	})

	t.Run("MutationErrorAborts", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := repo.Update(ctx, g.ID, goal.StatusDraft, func(x *goal.Goal) error {
			x.Status = goal.StatusSubmitted
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := repo.Get(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, goal.StatusDraft, got.Status)
	})

	t.Run("ImmutableFieldsKept", func(t *testing.T) {
		owner := g.OwnerID
		updated, err := repo.Update(ctx, g.ID, goal.StatusDraft, func(x *goal.Goal) error {
			x.Status = goal.StatusSubmitted
			x.OwnerID = uuid.New()
			x.Origin = goal.OriginAssigned
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, goal.StatusSubmitted, updated.Status)
		assert.Equal(t, owner, updated.OwnerID)
		assert.Equal(t, goal.OriginSelf, updated.Origin)

		got, err := repo.Get(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, goal.StatusSubmitted, got.Status)
	})
}

func TestBadgerRepository_Query(t *testing.T) {
	ctx := context.Background()
	repo := newBadgerRepo(t)

	alice, bob := uuid.New(), uuid.New()
	base := time.Now()
	older := draftGoal(alice, base.Add(-time.Hour))
	newer := draftGoal(alice, base)
	newer.CycleID = older.CycleID
	other := draftGoal(bob, base)
	other.Status = goal.StatusSubmitted
	other.ApproverID = &alice

	for _, g := range []*goal.Goal{older, newer, other} {
		require.NoError(t, repo.Create(ctx, g))
	}

	got, err := repo.Query(ctx, goal.Filter{OwnerID: &alice})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)

	got, err = repo.Query(ctx, goal.Filter{ApproverID: &alice, Statuses: []goal.Status{goal.StatusSubmitted}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, other.ID, got[0].ID)

	got, err = repo.Query(ctx, goal.Filter{CycleID: &older.CycleID})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.Query(ctx, goal.Filter{Origin: goal.OriginAssigned})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.Query(ctx, goal.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
