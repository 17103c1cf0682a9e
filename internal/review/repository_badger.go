package review

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
)

// Reviews are keyed by goal id, which makes one-review-per-goal a key
// uniqueness check.
const keyPrefix = "review:"

func reviewKey(goalID uuid.UUID) []byte {
	return []byte(keyPrefix + goalID.String())
}

type badgerRepository struct {
	db *badger.DB
}

func NewBadgerRepository(db *badger.DB) Repository {
	return &badgerRepository{db: db}
}

func (r *badgerRepository) Create(_ context.Context, rv *Review) error {
	data, err := json.Marshal(rv)
	if err != nil {
		return err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(reviewKey(rv.GoalID)); err == nil {
			return apperror.Conflict("goal %s already has a review", rv.GoalID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(reviewKey(rv.GoalID), data)
	})
	if errors.Is(err, badger.ErrConflict) {
		return apperror.Wrap(apperror.KindConflict, err, "concurrent review creation")
	}
	return err
}

func (r *badgerRepository) FindByGoalID(_ context.Context, goalID uuid.UUID) (*Review, error) {
	var rv Review
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(reviewKey(goalID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return apperror.NotFound("no review for goal %s", goalID)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rv)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *badgerRepository) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]*Review, error) {
	return r.scan(func(rv *Review) bool { return rv.EmployeeID == employeeID })
}

func (r *badgerRepository) ListByCycle(_ context.Context, cycleID uuid.UUID) ([]*Review, error) {
	return r.scan(func(rv *Review) bool { return rv.CycleID == cycleID })
}

func (r *badgerRepository) scan(keep func(*Review) bool) ([]*Review, error) {
	var reviews []*Review
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rv Review
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rv)
			}); err != nil {
				return err
			}
			if keep(&rv) {
				reviews = append(reviews, &rv)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].ReviewedAt.After(reviews[j].ReviewedAt)
	})
	return reviews, nil
}
