package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/uzudt/storage"
	"github.com/revelaction/uzudt/storage/filesystem"
	"github.com/revelaction/uzudt/storage/sqlite/zombiezen"
)

var sqliteExts = []string{".db", ".sqlite", ".sqlite3"}

func isSQLite(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range sqliteExts {
		if ext == e {
			return true
		}
	}
	return false
}

// NewMetadataRepository opens the metadata store at path: a SQLite file for
// the .db, .sqlite and .sqlite3 extensions, a directory otherwise. Unless
// create is true the store must already exist.
func NewMetadataRepository(p *Pool, path string, create bool) (storage.MetadataRepository, error) {
	if !create {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("repository not found: %s, run uzudt metadata first", path)
		}
	}

	if !isSQLite(path) {
		return filesystem.NewMetadataStore(path), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}

	if err := zombiezen.CreateSchemas(pool, zombiezen.MetadataSchema); err != nil {
		return nil, err
	}

	return zombiezen.NewMetadataStore(pool), nil
}
