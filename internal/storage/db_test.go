package storage_test

import (
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/saulo-duarte/pms-lambda/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInMemory(t *testing.T) {
	db, err := storage.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("k"), []byte("v"))
	}))

	var got []byte
	require.NoError(t, db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("k"))
		if err != nil {
			return err
		}
		got, err = item.ValueCopy(nil)
		return err
	}))
	assert.Equal(t, "v", string(got))
}

func TestOpenOnDisk(t *testing.T) {
	db, err := storage.Open(storage.Options{Path: t.TempDir()})
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}
