package selfassessment

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
)

const keyPrefix = "selfassessment:"

func ownerPrefix(ownerID uuid.UUID) []byte {
	return []byte(keyPrefix + ownerID.String() + ":")
}

func recordKey(ownerID, cycleID uuid.UUID) []byte {
	return append(ownerPrefix(ownerID), cycleID.String()...)
}

type badgerRepository struct {
	db *badger.DB
}

func NewBadgerRepository(db *badger.DB) Repository {
	return &badgerRepository{db: db}
}

func (r *badgerRepository) Upsert(_ context.Context, sa *SelfAssessment) error {
	key := recordKey(sa.OwnerID, sa.CycleID)
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case err == nil:
			var existing SelfAssessment
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			}); err != nil {
				return err
			}
			sa.ID = existing.ID
			sa.CreatedAt = existing.CreatedAt
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		data, err := json.Marshal(sa)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if errors.Is(err, badger.ErrConflict) {
		return apperror.Wrap(apperror.KindConflict, err, "concurrent self assessment update")
	}
	return err
}

func (r *badgerRepository) Find(_ context.Context, ownerID, cycleID uuid.UUID) (*SelfAssessment, error) {
	var sa SelfAssessment
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(ownerID, cycleID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return apperror.NotFound("no self assessment for %s in cycle %s", ownerID, cycleID)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sa)
		})
	})
	if err != nil {
		return nil, err
	}
	return &sa, nil
}

func (r *badgerRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*SelfAssessment, error) {
	var out []*SelfAssessment
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := ownerPrefix(ownerID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var sa SelfAssessment
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &sa)
			}); err != nil {
				return err
			}
			out = append(out, &sa)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}
