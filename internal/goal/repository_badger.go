package goal

import (
	"context"
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
)

const keyPrefix = "goal:"

func goalKey(id uuid.UUID) []byte {
	return []byte(keyPrefix + id.String())
}

type badgerRepository struct {
	db *badger.DB
}

func NewBadgerRepository(db *badger.DB) Repository {
	return &badgerRepository{db: db}
}

func readGoal(txn *badger.Txn, id uuid.UUID) (*Goal, error) {
	item, err := txn.Get(goalKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, apperror.NotFound("goal %s not found", id)
		}
		return nil, err
	}
	var g Goal
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &g)
	}); err != nil {
		return nil, err
	}
	return &g, nil
}

func writeGoal(txn *badger.Txn, g *Goal) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return txn.Set(goalKey(g.ID), data)
}

func (r *badgerRepository) Create(_ context.Context, g *Goal) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(goalKey(g.ID)); err == nil {
			return apperror.Conflict("goal %s already exists", g.ID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return writeGoal(txn, g)
	})
	return translateConflict(err)
}

func (r *badgerRepository) Get(_ context.Context, id uuid.UUID) (*Goal, error) {
	var g *Goal
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		g, err = readGoal(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *badgerRepository) Update(_ context.Context, id uuid.UUID, expected Status, mutate Mutation) (*Goal, error) {
	var out *Goal

	err := r.db.Update(func(txn *badger.Txn) error {
		g, err := readGoal(txn, id)
		if err != nil {
			return err
		}
		if g.Status != expected {
			return apperror.Conflict("goal %s is %s, expected %s", id, g.Status, expected)
		}

		before := g.clone()
		if err := mutate(g); err != nil {
			return err
		}
		preserveImmutable(before, g)

		if err := writeGoal(txn, g); err != nil {
			return err
		}
		out = g
		return nil
	})
	if err != nil {
		return nil, translateConflict(err)
	}
	return out, nil
}

func (r *badgerRepository) Query(_ context.Context, f Filter) ([]*Goal, error) {
	var goals []*Goal

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var g Goal
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &g)
			}); err != nil {
				return err
			}
			if f.matches(&g) {
				goals = append(goals, &g)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	newestFirst(goals)
	return goals, nil
}

// translateConflict maps Badger's optimistic transaction failure onto the
// workflow's Conflict kind.
func translateConflict(err error) error {
	if errors.Is(err, badger.ErrConflict) {
		return apperror.Wrap(apperror.KindConflict, err, "concurrent update")
	}
	return err
}
