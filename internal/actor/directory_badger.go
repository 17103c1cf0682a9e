package actor

import (
	"context"
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
)

const personKeyPrefix = "person:"

func personKey(id uuid.UUID) []byte {
	return []byte(personKeyPrefix + id.String())
}

// BadgerDirectory keeps the directory in the embedded store, seeded through Save.
type BadgerDirectory struct {
	db *badger.DB
}

func NewBadgerDirectory(db *badger.DB) *BadgerDirectory {
	return &BadgerDirectory{db: db}
}

func (d *BadgerDirectory) Lookup(_ context.Context, id uuid.UUID) (*Person, error) {
	var p Person
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(personKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return apperror.NotFound("person %s not found", id)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		})
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *BadgerDirectory) Save(_ context.Context, p Person) error {
	if err := validatePerson(p); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(personKey(p.ID), data)
	})
}
