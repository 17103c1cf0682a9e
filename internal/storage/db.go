// Package storage opens the embedded Badger database used when the service
// runs without PostgreSQL, and by tests.
package storage

import (
	"os"

	badger "github.com/dgraph-io/badger/v4"
)

type Options struct {
	// Path is the database directory. Empty means in-memory.
	Path string
}

func Open(opts Options) (*badger.DB, error) {
	var badgerOpts badger.Options
	if opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(opts.Path)
	}

	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	return badger.Open(badgerOpts)
}

// OpenInMemory is a convenience for tests.
func OpenInMemory() (*badger.DB, error) {
	return Open(Options{})
}
