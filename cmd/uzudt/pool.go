package main

import (
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/uzudt/storage/sqlite/zombiezen"
)

// Pool holds the SQLite metadata database of one command run.
type Pool struct {
	p *sqlitex.Pool
}

// Open opens the metadata database at path on the first call. Later calls
// return the same pool, a command works on a single metadata store.
func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p != nil {
		return p.p, nil
	}
	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, err
	}
	p.p = pool
	return p.p, nil
}

// Close closes the database if it was opened.
func (p *Pool) Close() error {
	if p.p != nil {
		return p.p.Close()
	}
	return nil
}
